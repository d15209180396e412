// Flow control and binding: \, let, if.

package eval

import (
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

func init() {
	addBuiltin(`\`, anyInput, compileIn)
	addBuiltin("let", anyInput, compileLet)
	addBuiltin("if", anyInput, compileIf)
}

// \ discards the current input and continues with its argument. It is how
// a statement seeds its own input, as in `\ 5 | + 1`.
func compileIn(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, `\`)
	cp.nArgs(fn, `\`, 1, 1)
	a := cp.argOp(fn.Args[0], in)
	return formOp{fn.Range(), a.ty, a.get}
}

// let $x captures the current input in x and passes it through unchanged.
// The binding lives until the end of the enclosing pipeline.
func compileLet(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "let")
	cp.nArgs(fn, "let", 1, 1)
	v := fn.Args[0]
	if v.Type != parse.Variable {
		cp.errorpf(v, TypeErrorType, "`let` needs a variable to bind")
	}
	cp.thisScope()[v.Value] = in
	name := v.Value
	return formOp{fn.Range(), in, func(fm *Frame, in vals.Value) (vals.Value, error) {
		fm.local.vars[name] = in
		return in, nil
	}}
}

// if cond then else evaluates cond against the current input, requires a
// boolean, and then evaluates exactly one of the branches with the same
// input. Both branches must have the same type.
func compileIf(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "if")
	cp.nArgs(fn, "if", 3, 3)
	cond := cp.typedArg(fn.Args[0], in, types.Bool, "if")
	then := cp.argOp(fn.Args[1], in)
	els := cp.argOp(fn.Args[2], in)
	if !types.Equal(then.ty, els.ty) {
		cp.errorpf(fn, TypeErrorType,
			"branches of `if` have different types: %s and %s", then.ty, els.ty)
	}
	return formOp{fn.Range(), then.ty, func(fm *Frame, in vals.Value) (vals.Value, error) {
		c, err := cond.get(fm, in)
		if err != nil {
			return nil, err
		}
		if c.(bool) {
			return then.get(fm, in)
		}
		return els.get(fm, in)
	}}
}
