// Package types defines the descriptors for the types of values flowing
// through a pipeline.
//
// A type is either a primitive (Num, Str, Bool or the internal Nil), a
// Table or TableRow with an ordered list of typed columns, or a named
// record with an ordered list of typed fields. The wildcard input
// constraint used by definitions that accept any input is represented by a
// nil *Type.
package types

import "strings"

// Kind enumerates the kinds of types.
type Kind int

// Possible values for Kind.
const (
	NilKind Kind = iota
	NumKind
	StrKind
	BoolKind
	TableKind
	TableRowKind
	RecordKind
)

// Field is a named, typed field of a record, or a column of a table.
type Field struct {
	Name string
	Type *Type
}

// Type is a structural type descriptor. Types are immutable once created.
type Type struct {
	kind   Kind
	name   string  // record name; empty otherwise
	fields []Field // record fields or table/row columns
	// For Table and TableRow, distinguishes a bare Table/TableRow
	// annotation (accepting any columns) from a concrete column list.
	anyColumns bool
}

// Primitive types and the column-wildcard table types.
var (
	Nil  = &Type{kind: NilKind}
	Num  = &Type{kind: NumKind}
	Str  = &Type{kind: StrKind}
	Bool = &Type{kind: BoolKind}
	// AnyTable and AnyTableRow are the types denoted by bare Table and
	// TableRow annotations. They accept tables and rows with any columns.
	AnyTable    = &Type{kind: TableKind, anyColumns: true}
	AnyTableRow = &Type{kind: TableRowKind, anyColumns: true}
)

// MakeTable returns a Table type with the given columns.
func MakeTable(columns []Field) *Type {
	return &Type{kind: TableKind, fields: columns}
}

// MakeTableRow returns a TableRow type with the given columns.
func MakeTableRow(columns []Field) *Type {
	return &Type{kind: TableRowKind, fields: columns}
}

// MakeRecord returns a named record type with the given fields.
func MakeRecord(name string, fields []Field) *Type {
	return &Type{kind: RecordKind, name: name, fields: fields}
}

// Kind returns the kind of t.
func (t *Type) Kind() Kind { return t.kind }

// Name returns the name of a record type, and the empty string for any
// other kind.
func (t *Type) Name() string { return t.name }

// AnyColumns reports whether t is a bare Table or TableRow annotation,
// whose columns are not statically known.
func (t *Type) AnyColumns() bool { return t.anyColumns }

// Fields returns the fields of a record or the columns of a table or row.
// The returned slice must not be mutated.
func (t *Type) Fields() []Field { return t.fields }

// Field returns the type and position of the named field or column. The
// second return value is -1 if there is no such field.
func (t *Type) Field(name string) (*Type, int) {
	for i, f := range t.fields {
		if f.Name == name {
			return f.Type, i
		}
	}
	return nil, -1
}

// RowOf returns the TableRow type for rows of the given table type.
func RowOf(table *Type) *Type {
	if table.anyColumns {
		return AnyTableRow
	}
	return MakeTableRow(table.fields)
}

// WithColumn returns a table type with one more column appended after the
// existing ones. It does not check for duplicate names; that is the
// caller's responsibility.
func WithColumn(table *Type, name string, t *Type) *Type {
	columns := make([]Field, len(table.fields)+1)
	copy(columns, table.fields)
	columns[len(table.fields)] = Field{name, t}
	return MakeTable(columns)
}

// Equal reports whether a and b are structurally equal. Records are equal
// when their names and field lists are equal. A nil *Type (the wildcard
// constraint) is only equal to another nil.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.name != b.name || a.anyColumns != b.anyColumns {
		return false
	}
	if len(a.fields) != len(b.fields) {
		return false
	}
	for i, f := range a.fields {
		if f.Name != b.fields[i].Name || !Equal(f.Type, b.fields[i].Type) {
			return false
		}
	}
	return true
}

// Accepts reports whether a value of type t satisfies the input constraint.
// A nil constraint is the wildcard and accepts everything. The bare Table
// and TableRow annotations accept tables and rows with any columns.
// Otherwise the constraint must be structurally equal to t.
func Accepts(constraint, t *Type) bool {
	if constraint == nil {
		return true
	}
	if constraint.anyColumns {
		return constraint.kind == t.kind
	}
	return Equal(constraint, t)
}

// String renders the type. Primitives render as their name, records as the
// record name, and tables and rows with their column list.
func (t *Type) String() string {
	switch t.kind {
	case NilKind:
		return "Nil"
	case NumKind:
		return "Num"
	case StrKind:
		return "Str"
	case BoolKind:
		return "Bool"
	case TableKind, TableRowKind:
		head := "Table"
		if t.kind == TableRowKind {
			head = "TableRow"
		}
		if t.anyColumns {
			return head
		}
		var sb strings.Builder
		sb.WriteString(head)
		sb.WriteByte('<')
		for i, f := range t.fields {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(f.Name)
			sb.WriteByte(':')
			sb.WriteString(f.Type.String())
		}
		sb.WriteByte('>')
		return sb.String()
	case RecordKind:
		return t.name
	}
	return "<bad type>"
}
