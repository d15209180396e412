package vals

import (
	"fmt"

	"github.com/kianmeng/ogma/pkg/types"
)

// Column is a named, homogeneously typed column of a table.
type Column struct {
	Name  string
	Type  *types.Type
	cells []Value
}

// MakeColumn creates a column. The cells must all have the given type;
// the caller is responsible for having checked them.
func MakeColumn(name string, ty *types.Type, cells []Value) Column {
	return Column{name, ty, cells}
}

// Cell returns the cell at row i.
func (c Column) Cell(i int) Value { return c.cells[i] }

// Table is an immutable column-major table. Derived tables share column
// backing with the table they were derived from, so appending a column
// to a large table only allocates the new column.
type Table struct {
	cols []Column
	rows int
	ty   *types.Type
}

// NewTable creates a table from the given columns, which must all have
// the same number of cells.
func NewTable(cols []Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0].cells)
	}
	for _, c := range cols {
		if len(c.cells) != rows {
			return nil, fmt.Errorf(
				"column %s has %d cells, want %d", c.Name, len(c.cells), rows)
		}
	}
	return &Table{cols, rows, tableType(cols)}, nil
}

func tableType(cols []Column) *types.Type {
	fields := make([]types.Field, len(cols))
	for i, c := range cols {
		fields[i] = types.Field{Name: c.Name, Type: c.Type}
	}
	return types.MakeTable(fields)
}

// Type returns the table's type descriptor.
func (t *Table) Type() *types.Type { return t.ty }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Col returns the i-th column.
func (t *Table) Col(i int) Column { return t.cols[i] }

// ColByName returns the named column and its position. The position is -1
// if there is no such column.
func (t *Table) ColByName(name string) (Column, int) {
	for i, c := range t.cols {
		if c.Name == name {
			return c, i
		}
	}
	return Column{}, -1
}

// Row returns a view of the i-th row.
func (t *Table) Row(i int) TableRow { return TableRow{t, i} }

// WithColumn returns a table with one more column appended after the
// existing ones. The existing columns are shared, not copied. The new
// column must have exactly one cell per row.
func (t *Table) WithColumn(name string, ty *types.Type, cells []Value) (*Table, error) {
	if len(cells) != t.rows {
		return nil, fmt.Errorf(
			"column %s has %d cells, want %d", name, len(cells), t.rows)
	}
	cols := make([]Column, len(t.cols)+1)
	copy(cols, t.cols)
	cols[len(t.cols)] = Column{name, ty, cells}
	return &Table{cols, t.rows, tableType(cols)}, nil
}

// TableRow is a view of a single row of a table. It keeps the table alive
// but does not copy any cells.
type TableRow struct {
	table *Table
	idx   int
}

// Type returns the row's type descriptor.
func (r TableRow) Type() *types.Type { return types.RowOf(r.table.ty) }

// Cell returns the cell in the i-th column.
func (r TableRow) Cell(i int) Value { return r.table.cols[i].cells[r.idx] }

// Index returns the position of the row within its table.
func (r TableRow) Index() int { return r.idx }
