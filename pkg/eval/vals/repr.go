package vals

import (
	"strconv"
	"strings"
)

// ReprNum renders a number the way the language prints it: integral
// values without a decimal point, others in the shortest form that
// round-trips.
func ReprNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Repr renders a value as text. Numbers render per ReprNum, booleans as
// "true" and "false", strings as themselves, structs with their field
// values, and tables as an aligned grid with a header row. The empty
// value renders as the empty string.
func Repr(v Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		return ReprNum(v)
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case *Struct:
		var sb strings.Builder
		sb.WriteString(v.ty.Name())
		sb.WriteString(" {")
		for i, f := range v.ty.Fields() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(f.Name)
			sb.WriteByte(':')
			sb.WriteString(Repr(v.fields[i]))
		}
		sb.WriteByte('}')
		return sb.String()
	case *Table:
		return reprTable(v)
	case TableRow:
		return reprTable(rowAsTable(v))
	default:
		panic("bad value type")
	}
}

func rowAsTable(r TableRow) *Table {
	cols := make([]Column, len(r.table.cols))
	for i, c := range r.table.cols {
		cols[i] = Column{c.Name, c.Type, []Value{c.cells[r.idx]}}
	}
	t, _ := NewTable(cols)
	return t
}

func reprTable(t *Table) string {
	if len(t.cols) == 0 {
		return "(empty table)"
	}
	widths := make([]int, len(t.cols))
	cells := make([][]string, t.rows+1)
	cells[0] = make([]string, len(t.cols))
	for i, c := range t.cols {
		cells[0][i] = c.Name
		widths[i] = len(c.Name)
	}
	for r := 0; r < t.rows; r++ {
		cells[r+1] = make([]string, len(t.cols))
		for i, c := range t.cols {
			s := Repr(c.cells[r])
			cells[r+1][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}
	var sb strings.Builder
	for r, row := range cells {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for i, s := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if i == len(row)-1 {
				sb.WriteString(s)
			} else {
				sb.WriteString(s)
				sb.WriteString(strings.Repeat(" ", widths[i]-len(s)))
			}
		}
	}
	return sb.String()
}
