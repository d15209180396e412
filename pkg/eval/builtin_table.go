// The table engine: Table, range, append, fold, nth, len, and the get
// command shared by tables, rows and structs.

package eval

import (
	"math"

	"github.com/kianmeng/ogma/pkg/eval/errs"
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

func init() {
	addBuiltin("Table", anyInput, compileTable)
	addBuiltin("range", anyInput, compileRange)
	addBuiltin("append", kindIs(types.TableKind), compileAppend)
	addBuiltin("fold", kindIs(types.TableKind), compileFold)
	addBuiltin("nth", kindIs(types.TableKind), compileNthTable)
	addBuiltin("nth", typeIs(types.Str), compileNthStr)
	addBuiltin("len", kindIs(types.TableKind), compileLenTable)
	addBuiltin("len", typeIs(types.Str), compileLenStr)
	addBuiltin("get", func(t *types.Type) bool {
		switch t.Kind() {
		case types.RecordKind, types.TableRowKind, types.TableKind:
			return true
		}
		return false
	}, compileGet)
}

// Table builds an empty table with the given column names.
func compileTable(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "Table")
	names := make([]string, len(fn.Args))
	seen := make(map[string]bool)
	for i, a := range fn.Args {
		names[i] = cp.constStrArg(a, "Table")
		if seen[names[i]] {
			cp.errorpf(a, TypeErrorType, "duplicate column name `%s`", names[i])
		}
		seen[names[i]] = true
	}
	fields := make([]types.Field, len(names))
	for i, n := range names {
		fields[i] = types.Field{Name: n, Type: types.Nil}
	}
	out := types.MakeTable(fields)
	return formOp{fn.Range(), out, func(*Frame, vals.Value) (vals.Value, error) {
		cols := make([]vals.Column, len(names))
		for i, n := range names {
			cols[i] = vals.MakeColumn(n, types.Nil, nil)
		}
		return vals.NewTable(cols)
	}}
}

var rangeType = types.MakeTable([]types.Field{{Name: "i", Type: types.Num}})

// range builds a table with a single column `i` of the integers in
// [start, end). With one argument the current input is the start.
func compileRange(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "range")
	cp.nArgs(fn, "range", 1, 2)
	args := make([]argOp, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = cp.typedArg(a, in, types.Num, "range")
	}
	if len(args) == 1 && !types.Equal(in, types.Num) {
		cp.errorpf(fn, TypeErrorType,
			"`range` with one argument needs Num input, got %s", in)
	}
	return formOp{fn.Range(), rangeType, func(fm *Frame, in vals.Value) (vals.Value, error) {
		bounds := make([]float64, len(args))
		for i, a := range args {
			v, err := a.get(fm, in)
			if err != nil {
				return nil, err
			}
			bounds[i] = v.(float64)
		}
		var start, end float64
		if len(bounds) == 1 {
			start, end = in.(float64), bounds[0]
		} else {
			start, end = bounds[0], bounds[1]
		}
		if start != math.Trunc(start) || end != math.Trunc(end) {
			return nil, errs.BadValue{
				What: "range bound", Valid: "an integer",
				Actual: vals.ReprNum(start) + " to " + vals.ReprNum(end)}
		}
		n := 0
		if end > start {
			n = int(end - start)
		}
		cells := make([]vals.Value, n)
		for i := range cells {
			cells[i] = start + float64(i)
		}
		return vals.NewTable([]vals.Column{vals.MakeColumn("i", types.Num, cells)})
	}}
}

// append adds one column per --name {block} flag. Each block is evaluated
// once per row, in row order, with that row as input; the blocks of all
// new columns see the original row, without the columns being added.
func compileAppend(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	if in.AnyColumns() {
		cp.errorpf(fn, TypeErrorType, "the columns of the input table are not known")
	}
	if len(fn.Flags) == 0 {
		cp.errorpf(fn, TypeErrorType, "`append` needs at least one --name {block} flag")
	}
	rowTy := types.RowOf(in)
	out := in
	type newCol struct {
		name  string
		block blockOp
	}
	args := fn.Args
	cols := make([]newCol, len(fn.Flags))
	for i, fl := range fn.Flags {
		if _, exists := out.Field(fl.Name); exists >= 0 {
			cp.errorpf(fl, TypeErrorType, "duplicate column name `%s`", fl.Name)
		}
		// The block may follow the flag (--name {block}) or be its value
		// (--name={block}).
		bn := fl.Value
		if bn == nil && len(args) > 0 {
			bn = args[0]
			args = args[1:]
		}
		if bn == nil || bn.Type != parse.Block {
			cp.errorpf(fl, TypeErrorType, "column `%s` needs a {block} value", fl.Name)
		}
		block := cp.blockOp(bn, rowTy, nil)
		cols[i] = newCol{fl.Name, block}
		out = types.WithColumn(out, fl.Name, block.out)
	}
	if len(args) > 0 {
		cp.errorpf(args[0], TypeErrorType, "`append` takes one {block} per --name flag")
	}
	return formOp{fn.Range(), out, func(fm *Frame, in vals.Value) (vals.Value, error) {
		t := in.(*vals.Table)
		result := t
		for _, c := range cols {
			cells := make([]vals.Value, t.NumRows())
			for r := 0; r < t.NumRows(); r++ {
				v, err := c.block.run(fm, t.Row(r), nil)
				if err != nil {
					return nil, err
				}
				cells[r] = v
			}
			var err error
			result, err = result.WithColumn(c.name, c.block.out, cells)
			if err != nil {
				return nil, err
			}
		}
		return result, nil
	}}
}

// fold init {block} accumulates the rows of the input table: the block is
// evaluated once per row with the running accumulator as input and the row
// bound to $row, starting from init. With zero rows the result is init.
func compileFold(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "fold")
	cp.nArgs(fn, "fold", 2, 2)
	init := cp.argOp(fn.Args[0], in)
	bn := fn.Args[1]
	if bn.Type != parse.Block {
		cp.errorpf(bn, TypeErrorType, "`fold` needs a {block} as its second argument")
	}
	rowTy := types.RowOf(in)
	block := cp.blockOp(bn, init.ty, map[string]*types.Type{"row": rowTy})
	if !types.Equal(block.out, init.ty) {
		cp.errorpf(bn, TypeErrorType,
			"`fold` block must return the accumulator type %s, got %s",
			init.ty, block.out)
	}
	return formOp{fn.Range(), init.ty, func(fm *Frame, in vals.Value) (vals.Value, error) {
		t := in.(*vals.Table)
		acc, err := init.get(fm, in)
		if err != nil {
			return nil, err
		}
		for r := 0; r < t.NumRows(); r++ {
			acc, err = block.run(fm, acc, map[string]vals.Value{"row": t.Row(r)})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}}
}

// nth on a table returns the n-th row, or with a {block} second argument,
// the result of evaluating the block with that row as input.
func compileNthTable(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "nth")
	cp.nArgs(fn, "nth", 1, 2)
	idx := cp.typedArg(fn.Args[0], in, types.Num, "nth")
	rowTy := types.RowOf(in)
	var block *blockOp
	out := rowTy
	if len(fn.Args) == 2 {
		bn := fn.Args[1]
		if bn.Type != parse.Block {
			cp.errorpf(bn, TypeErrorType, "`nth` needs a {block} as its second argument")
		}
		b := cp.blockOp(bn, rowTy, nil)
		block = &b
		out = b.out
	}
	return formOp{fn.Range(), out, func(fm *Frame, in vals.Value) (vals.Value, error) {
		t := in.(*vals.Table)
		v, err := idx.get(fm, in)
		if err != nil {
			return nil, err
		}
		i, err := rowIndex(v.(float64), t.NumRows())
		if err != nil {
			return nil, err
		}
		row := t.Row(i)
		if block == nil {
			return row, nil
		}
		return block.run(fm, row, nil)
	}}
}

func rowIndex(f float64, rows int) (int, error) {
	if f != math.Trunc(f) || f < 0 || int(f) >= rows {
		return 0, errs.OutOfRange{
			What: "row index", ValidLow: 0, ValidHigh: rows - 1,
			Actual: vals.ReprNum(f)}
	}
	return int(f), nil
}

// nth on a string returns the n-th character.
func compileNthStr(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "nth")
	cp.nArgs(fn, "nth", 1, 1)
	idx := cp.typedArg(fn.Args[0], in, types.Num, "nth")
	return formOp{fn.Range(), types.Str, func(fm *Frame, in vals.Value) (vals.Value, error) {
		v, err := idx.get(fm, in)
		if err != nil {
			return nil, err
		}
		runes := []rune(in.(string))
		i, err := rowIndex(v.(float64), len(runes))
		if err != nil {
			return nil, err
		}
		return string(runes[i]), nil
	}}
}

// len on a table counts rows, or columns with the --cols flag.
func compileLenTable(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.nArgs(fn, "len", 0, 0)
	cols := false
	for _, fl := range fn.Flags {
		if fl.Name != "cols" || fl.Value != nil {
			cp.errorpf(fl, TypeErrorType, "`len` takes only the --cols flag")
		}
		cols = true
	}
	return formOp{fn.Range(), types.Num, func(_ *Frame, in vals.Value) (vals.Value, error) {
		t := in.(*vals.Table)
		if cols {
			return float64(t.NumCols()), nil
		}
		return float64(t.NumRows()), nil
	}}
}

// len on a string counts characters.
func compileLenStr(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "len")
	cp.nArgs(fn, "len", 0, 0)
	return formOp{fn.Range(), types.Num, func(_ *Frame, in vals.Value) (vals.Value, error) {
		return float64(len([]rune(in.(string)))), nil
	}}
}

// get reads a field of a struct or row, or a column of a table as a
// single-column table. A flag like --Num asserts the type of the field.
func compileGet(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.nArgs(fn, "get", 1, 1)
	name := cp.constStrArg(fn.Args[0], "get")
	if in.AnyColumns() {
		what := "table"
		if in.Kind() == types.TableRowKind {
			what = "row"
		}
		cp.errorpf(fn, TypeErrorType, "the columns of the input %s are not known", what)
	}
	ft, idx := in.Field(name)
	if idx < 0 {
		cp.errorpf(fn.Args[0], FieldErrorType, "`%s` has no field `%s`", in, name)
	}
	if len(fn.Flags) > 1 {
		cp.errorpf(fn.Flags[1], TypeErrorType, "`get` takes at most one type flag")
	}
	for _, fl := range fn.Flags {
		if fl.Value != nil {
			cp.errorpf(fl, TypeErrorType, "the type flag of `get` takes no value")
		}
		declared := cp.typeByName(fl.Name, fl, TypeErrorType)
		if !types.Equal(declared, ft) {
			cp.errorpf(fl, TypeErrorType,
				"field `%s` has type %s, not %s", name, ft, declared)
		}
	}
	switch in.Kind() {
	case types.RecordKind:
		return formOp{fn.Range(), ft, func(_ *Frame, in vals.Value) (vals.Value, error) {
			return in.(*vals.Struct).Field(idx), nil
		}}
	case types.TableRowKind:
		return formOp{fn.Range(), ft, func(_ *Frame, in vals.Value) (vals.Value, error) {
			return in.(vals.TableRow).Cell(idx), nil
		}}
	default:
		out := types.MakeTable([]types.Field{{Name: name, Type: ft}})
		return formOp{fn.Range(), out, func(_ *Frame, in vals.Value) (vals.Value, error) {
			col, _ := in.(*vals.Table).ColByName(name)
			return vals.NewTable([]vals.Column{col})
		}}
	}
}
