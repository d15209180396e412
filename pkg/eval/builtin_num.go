// Numeric commands: + - * / root sq floor ceil rand.

package eval

import (
	"math"
	"math/rand"

	"github.com/kianmeng/ogma/pkg/eval/errs"
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

func init() {
	addBuiltin("+", typeIs(types.Num), compileArith(func(a, b float64) (float64, error) {
		return a + b, nil
	}))
	addBuiltin("-", typeIs(types.Num), compileArith(func(a, b float64) (float64, error) {
		return a - b, nil
	}))
	addBuiltin("*", typeIs(types.Num), compileArith(func(a, b float64) (float64, error) {
		return a * b, nil
	}))
	addBuiltin("/", typeIs(types.Num), compileArith(divide))
	addBuiltin("root", typeIs(types.Num), compileRoot)
	addBuiltin("sq", typeIs(types.Num), compileNumUnary("sq", func(f float64) float64 {
		return f * f
	}))
	addBuiltin("floor", typeIs(types.Num), compileNumUnary("floor", math.Floor))
	addBuiltin("ceil", typeIs(types.Num), compileNumUnary("ceil", math.Ceil))
	addBuiltin("rand", anyInput, compileRand)
}

// compileArith builds the compile function of a binary numeric command
// that folds the input through its arguments, like `\ 10 | - 1 2` giving 7.
func compileArith(f func(a, b float64) (float64, error)) func(*compiler, *parse.Form, *types.Type) formOp {
	return func(cp *compiler, fn *parse.Form, in *types.Type) formOp {
		name := fn.Head.Value
		cp.noFlags(fn, name)
		cp.nArgs(fn, name, 1, -1)
		args := make([]argOp, len(fn.Args))
		for i, a := range fn.Args {
			args[i] = cp.typedArg(a, in, types.Num, name)
		}
		return formOp{fn.Range(), types.Num, func(fm *Frame, in vals.Value) (vals.Value, error) {
			acc := in.(float64)
			for _, a := range args {
				v, err := a.get(fm, in)
				if err != nil {
					return nil, err
				}
				acc, err = f(acc, v.(float64))
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		}}
	}
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errs.Arithmetic{What: "division by zero"}
	}
	return a / b, nil
}

func compileNumUnary(name string, f func(float64) float64) func(*compiler, *parse.Form, *types.Type) formOp {
	return func(cp *compiler, fn *parse.Form, in *types.Type) formOp {
		cp.noFlags(fn, name)
		cp.nArgs(fn, name, 0, 0)
		return formOp{fn.Range(), types.Num, func(_ *Frame, in vals.Value) (vals.Value, error) {
			return f(in.(float64)), nil
		}}
	}
}

// root n takes the n-th root of the input. Odd integer roots of negative
// numbers are defined; other roots of negative numbers are errors.
func compileRoot(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "root")
	cp.nArgs(fn, "root", 1, 1)
	arg := cp.typedArg(fn.Args[0], in, types.Num, "root")
	return formOp{fn.Range(), types.Num, func(fm *Frame, in vals.Value) (vals.Value, error) {
		v, err := arg.get(fm, in)
		if err != nil {
			return nil, err
		}
		x, n := in.(float64), v.(float64)
		switch {
		case n == 0:
			return nil, errs.Arithmetic{What: "zeroth root"}
		case x < 0:
			if n == math.Trunc(n) && math.Mod(n, 2) != 0 {
				return -nthRoot(-x, n), nil
			}
			return nil, errs.Arithmetic{What: "even root of a negative number"}
		default:
			return nthRoot(x, n), nil
		}
	}}
}

func nthRoot(x, n float64) float64 {
	switch n {
	case 2:
		return math.Sqrt(x)
	case 3:
		return math.Cbrt(x)
	}
	r := math.Pow(x, 1/n)
	// Pow(x, 1/n) is off by an ulp for many exact integer roots; snap
	// when the rounded value reproduces x.
	if rr := math.Round(r); rr != r && math.Pow(rr, n) == x {
		return rr
	}
	return r
}

// rand draws uniformly distributed numbers: with no arguments from [0,1),
// with one argument hi from [0,hi), with two arguments lo hi from [lo,hi),
// and with a third argument n it returns a table with a `rand` column of n
// draws from [lo,hi).
func compileRand(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "rand")
	cp.nArgs(fn, "rand", 0, 3)
	args := make([]argOp, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = cp.typedArg(a, in, types.Num, "rand")
	}
	out := types.Num
	if len(args) == 3 {
		out = types.MakeTable([]types.Field{{Name: "rand", Type: types.Num}})
	}
	return formOp{fn.Range(), out, func(fm *Frame, in vals.Value) (vals.Value, error) {
		bounds := make([]float64, len(args))
		for i, a := range args {
			v, err := a.get(fm, in)
			if err != nil {
				return nil, err
			}
			bounds[i] = v.(float64)
		}
		lo, hi := 0.0, 1.0
		switch len(bounds) {
		case 1:
			hi = bounds[0]
		case 2, 3:
			lo, hi = bounds[0], bounds[1]
		}
		if lo >= hi {
			return nil, errs.BadValue{
				What: "rand lower bound", Valid: "less than the upper bound",
				Actual: vals.ReprNum(lo)}
		}
		draw := func() float64 { return lo + rand.Float64()*(hi-lo) }
		if len(bounds) < 3 {
			return draw(), nil
		}
		n := bounds[2]
		if n < 0 || n != math.Trunc(n) {
			return nil, errs.BadValue{
				What: "rand draw count", Valid: "a non-negative integer",
				Actual: vals.ReprNum(n)}
		}
		cells := make([]vals.Value, int(n))
		for i := range cells {
			cells[i] = draw()
		}
		return vals.NewTable([]vals.Column{vals.MakeColumn("rand", types.Num, cells)})
	}}
}
