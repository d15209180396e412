// String conversion: to-str.

package eval

import (
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

func init() {
	addBuiltin("to-str", func(t *types.Type) bool {
		switch t.Kind() {
		case types.NumKind, types.StrKind, types.BoolKind:
			return true
		}
		return false
	}, compileToStr)
}

// to-str renders a number, string or boolean as a string.
func compileToStr(cp *compiler, fn *parse.Form, in *types.Type) formOp {
	cp.noFlags(fn, "to-str")
	cp.nArgs(fn, "to-str", 0, 0)
	return formOp{fn.Range(), types.Str, func(_ *Frame, in vals.Value) (vals.Value, error) {
		return vals.Repr(in), nil
	}}
}
