// Package vals contains basic facilities for manipulating values flowing
// through a pipeline.
//
// A value is one of the following, and nothing else:
//
//   - nil, the empty value a pipeline starts with;
//   - float64, a number;
//   - string;
//   - bool;
//   - *Struct, an instance of a user-declared record type;
//   - *Table, an immutable column-major table;
//   - TableRow, a view of a single row of a table.
//
// The type of a value, in the sense of the static checker, is obtained
// with TypeOf.
package vals

import (
	"github.com/kianmeng/ogma/pkg/types"
)

// Value is one of the value types listed in the package doc. Using "any"
// directly makes the zero value of the type valid.
type Value = any

// TypeOf returns the type descriptor of v. It panics if v is not a valid
// value.
func TypeOf(v Value) *types.Type {
	switch v := v.(type) {
	case nil:
		return types.Nil
	case float64:
		return types.Num
	case string:
		return types.Str
	case bool:
		return types.Bool
	case *Struct:
		return v.Type()
	case *Table:
		return v.Type()
	case TableRow:
		return v.Type()
	default:
		panic("bad value type")
	}
}

// Equal reports whether two values are deeply equal. Values of different
// types are never equal.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case float64:
		bf, ok := b.(float64)
		return ok && a == bf
	case string:
		bs, ok := b.(string)
		return ok && a == bs
	case bool:
		bb, ok := b.(bool)
		return ok && a == bb
	case *Struct:
		bs, ok := b.(*Struct)
		return ok && equalStruct(a, bs)
	case *Table:
		bt, ok := b.(*Table)
		return ok && equalTable(a, bt)
	case TableRow:
		br, ok := b.(TableRow)
		return ok && equalRow(a, br)
	default:
		return false
	}
}

func equalStruct(a, b *Struct) bool {
	if !types.Equal(a.ty, b.ty) {
		return false
	}
	for i, f := range a.fields {
		if !Equal(f, b.fields[i]) {
			return false
		}
	}
	return true
}

func equalTable(a, b *Table) bool {
	if !types.Equal(a.Type(), b.Type()) || a.rows != b.rows {
		return false
	}
	for c := range a.cols {
		for r := 0; r < a.rows; r++ {
			if !Equal(a.cols[c].cells[r], b.cols[c].cells[r]) {
				return false
			}
		}
	}
	return true
}

func equalRow(a, b TableRow) bool {
	if !types.Equal(a.Type(), b.Type()) {
		return false
	}
	for i := range a.table.cols {
		if !Equal(a.Cell(i), b.Cell(i)) {
			return false
		}
	}
	return true
}
