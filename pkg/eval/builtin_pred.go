// Predicates: eq neq < <= > >= and or not.

package eval

import (
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

func init() {
	addBuiltin("eq", anyInput, compileEq(false))
	addBuiltin("neq", anyInput, compileEq(true))
	addBuiltin("<", typeIs(types.Num), compileNumCmp(func(a, b float64) bool { return a < b }))
	addBuiltin("<=", typeIs(types.Num), compileNumCmp(func(a, b float64) bool { return a <= b }))
	addBuiltin(">", typeIs(types.Num), compileNumCmp(func(a, b float64) bool { return a > b }))
	addBuiltin(">=", typeIs(types.Num), compileNumCmp(func(a, b float64) bool { return a >= b }))
	addBuiltin("<", typeIs(types.Str), compileStrCmp(func(a, b string) bool { return a < b }))
	addBuiltin("<=", typeIs(types.Str), compileStrCmp(func(a, b string) bool { return a <= b }))
	addBuiltin(">", typeIs(types.Str), compileStrCmp(func(a, b string) bool { return a > b }))
	addBuiltin(">=", typeIs(types.Str), compileStrCmp(func(a, b string) bool { return a >= b }))
	addBuiltin("and", typeIs(types.Bool), compileAndOr(true))
	addBuiltin("or", typeIs(types.Bool), compileAndOr(false))
	addBuiltin("not", typeIs(types.Bool), compileNot)
}

// eq and neq compare the input against one argument of the same type.
func compileEq(negate bool) func(*compiler, *parse.Form, *types.Type) formOp {
	return func(cp *compiler, fn *parse.Form, in *types.Type) formOp {
		name := fn.Head.Value
		cp.noFlags(fn, name)
		cp.nArgs(fn, name, 1, 1)
		a := cp.typedArg(fn.Args[0], in, in, name)
		return formOp{fn.Range(), types.Bool, func(fm *Frame, in vals.Value) (vals.Value, error) {
			v, err := a.get(fm, in)
			if err != nil {
				return nil, err
			}
			return vals.Equal(in, v) != negate, nil
		}}
	}
}

func compileNumCmp(f func(a, b float64) bool) func(*compiler, *parse.Form, *types.Type) formOp {
	return func(cp *compiler, fn *parse.Form, in *types.Type) formOp {
		name := fn.Head.Value
		cp.noFlags(fn, name)
		cp.nArgs(fn, name, 1, 1)
		a := cp.typedArg(fn.Args[0], in, types.Num, name)
		return formOp{fn.Range(), types.Bool, func(fm *Frame, in vals.Value) (vals.Value, error) {
			v, err := a.get(fm, in)
			if err != nil {
				return nil, err
			}
			return f(in.(float64), v.(float64)), nil
		}}
	}
}

func compileStrCmp(f func(a, b string) bool) func(*compiler, *parse.Form, *types.Type) formOp {
	return func(cp *compiler, fn *parse.Form, in *types.Type) formOp {
		name := fn.Head.Value
		cp.noFlags(fn, name)
		cp.nArgs(fn, name, 1, 1)
		a := cp.typedArg(fn.Args[0], in, types.Str, name)
		return formOp{fn.Range(), types.Bool, func(fm *Frame, in vals.Value) (vals.Value, error) {
			v, err := a.get(fm, in)
			if err != nil {
				return nil, err
			}
			return f(in.(string), v.(string)), nil
		}}
	}
}

// and and or take boolean arguments and short-circuit, so block arguments
// after the deciding one are not evaluated.
func compileAndOr(isAnd bool) func(*compiler, *parse.Form, *types.Type) formOp {
	return func(cp *compiler, fn *parse.Form, in *types.Type) formOp {
		name := fn.Head.Value
		cp.noFlags(fn, name)
		cp.nArgs(fn, name, 1, -1)
		args := make([]argOp, len(fn.Args))
		for i, a := range fn.Args {
			args[i] = cp.typedArg(a, in, types.Bool, name)
		}
		return formOp{fn.Range(), types.Bool, func(fm *Frame, in vals.Value) (vals.Value, error) {
			acc := in.(bool)
			for _, a := range args {
				if acc != isAnd {
					break
				}
				v, err := a.get(fm, in)
				if err != nil {
					return nil, err
				}
				acc = v.(bool)
			}
			return acc, nil
		}}
	}
}

func compileNot(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "not")
	cp.nArgs(fn, "not", 0, 0)
	return formOp{fn.Range(), types.Bool, func(_ *Frame, in vals.Value) (vals.Value, error) {
		return !in.(bool), nil
	}}
}
