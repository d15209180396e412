// Package eval handles compilation and evaluation of pipelines.
//
// A parsed statement is first compiled against a registry and the type of
// the initial input. Compilation resolves every command by (name, input
// type), checks all argument and block types, and produces a tree of ops;
// it fails with a *diag.Error carrying one of the error type constants
// below. Evaluating the compiled ops can only fail with an *Exception,
// raised by effectful commands like division or row indexing.
package eval

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kianmeng/ogma/pkg/diag"
	"github.com/kianmeng/ogma/pkg/eval/errs"
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

// Compilation error types, used in the Type field of *diag.Error.
const (
	// NameErrorType is for references to commands or variables that are
	// not defined at all.
	NameErrorType = "name error"
	// TypeErrorType is for commands that do not accept the current input
	// type, and for arguments, flags and blocks of the wrong type.
	TypeErrorType = "type error"
	// FieldErrorType is for references to fields or columns that do not
	// exist on the input type.
	FieldErrorType = "field error"
	// AmbiguityErrorType is for command references that several
	// definitions match equally well.
	AmbiguityErrorType = "ambiguity error"
	// DefinitionErrorType is for malformed def and def-ty declarations,
	// and for recursive definitions.
	DefinitionErrorType = "definition error"
)

// compiler maintains the state of the compilation of one pipeline: the
// static types of variables in the enclosing scopes, and the chain of
// definitions whose bodies are being compiled, for recursion detection.
type compiler struct {
	registry *Registry
	src      parse.Source
	scopes   []map[string]*types.Type
	defStack []uuid.UUID
}

func compilePipeline(reg *Registry, src parse.Source, pn *parse.Pipeline, in *types.Type) (op pipelineOp, err error) {
	cp := &compiler{registry: reg, src: src}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*diag.Error); ok {
				err = e
			} else {
				panic(r)
			}
		}
	}()
	op = cp.pipelineOp(pn, in)
	return op, nil
}

func (cp *compiler) errorpf(r diag.Ranger, errType string, format string, args ...any) {
	panic(&diag.Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(cp.src.Name, cp.src.Code, r),
	})
}

func (cp *compiler) pushScope() {
	cp.scopes = append(cp.scopes, make(map[string]*types.Type))
}

func (cp *compiler) popScope() {
	cp.scopes = cp.scopes[:len(cp.scopes)-1]
}

func (cp *compiler) thisScope() map[string]*types.Type {
	return cp.scopes[len(cp.scopes)-1]
}

func (cp *compiler) lookupVar(name string) (*types.Type, bool) {
	for i := len(cp.scopes) - 1; i >= 0; i-- {
		if t, ok := cp.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// typeByName resolves a type annotation: a primitive name, a bare Table or
// TableRow, or a user-declared record name. Failures are reported with the
// given error type.
func (cp *compiler) typeByName(name string, r diag.Ranger, errType string) *types.Type {
	if t := lookupType(cp.registry, name); t != nil {
		return t
	}
	cp.errorpf(r, errType, "type `%s` is not defined", name)
	panic("unreachable")
}

// pipelineOp is a compiled pipeline: a sequence of stage ops threading a
// value from left to right.
type pipelineOp struct {
	diag.Ranging
	forms []formOp
	out   *types.Type
}

func (op pipelineOp) exec(fm *Frame, in vals.Value) (vals.Value, error) {
	fm = fm.fork()
	if fm.depth > maxFrameDepth {
		return nil, fm.errorp(op, errDepthExceeded)
	}
	for _, f := range op.forms {
		out, err := f.body(fm, in)
		if err != nil {
			return nil, fm.errorp(f, err)
		}
		in = out
	}
	return in, nil
}

func (cp *compiler) pipelineOp(pn *parse.Pipeline, in *types.Type) pipelineOp {
	cp.pushScope()
	defer cp.popScope()
	forms := make([]formOp, len(pn.Forms))
	t := in
	for i, fn := range pn.Forms {
		forms[i] = cp.formOp(fn, t)
		t = forms[i].out
	}
	return pipelineOp{pn.Range(), forms, t}
}

// formOp is a compiled pipeline stage.
type formOp struct {
	diag.Ranging
	out  *types.Type
	body func(fm *Frame, in vals.Value) (vals.Value, error)
}

func (cp *compiler) formOp(fn *parse.Form, in *types.Type) formOp {
	head := fn.Head
	switch head.Type {
	case parse.Bareword:
		return cp.commandForm(fn, in)
	case parse.Number:
		return literalForm(fn, types.Num, head.Num)
	case parse.SingleQuoted, parse.DoubleQuoted:
		return literalForm(fn, types.Str, head.Value)
	case parse.Bool:
		return literalForm(fn, types.Bool, head.BoolVal)
	case parse.Variable:
		t, ok := cp.lookupVar(head.Value)
		if !ok {
			cp.errorpf(head, NameErrorType, "variable `$%s` is not defined", head.Value)
		}
		name := head.Value
		return formOp{fn.Range(), t, func(fm *Frame, _ vals.Value) (vals.Value, error) {
			v, ok := fm.local.lookup(name)
			if !ok {
				return nil, fmt.Errorf("variable $%s not found", name)
			}
			return v, nil
		}}
	case parse.ImplicitInput:
		return formOp{fn.Range(), in, func(_ *Frame, in vals.Value) (vals.Value, error) {
			return in, nil
		}}
	case parse.Block:
		op := cp.pipelineOp(head.Pipeline, in)
		return formOp{fn.Range(), op.out, op.exec}
	default:
		cp.errorpf(fn, TypeErrorType, "bad pipeline stage")
		panic("unreachable")
	}
}

func literalForm(fn *parse.Form, t *types.Type, v vals.Value) formOp {
	return formOp{fn.Range(), t, func(*Frame, vals.Value) (vals.Value, error) {
		return v, nil
	}}
}

// commandForm compiles a stage whose head is a command name. User
// definitions are tried first, then built-ins, then record constructors.
func (cp *compiler) commandForm(fn *parse.Form, in *types.Type) formOp {
	name := fn.Head.Value
	def, ambiguous := cp.registry.resolve(name, in)
	if def != nil {
		return cp.defCallForm(fn, def, in)
	}
	if len(ambiguous) > 1 {
		cp.errorpf(fn.Head, AmbiguityErrorType,
			"`%s` matches %d definitions equally well for input type %s",
			name, len(ambiguous), in)
	}
	if b := resolveBuiltin(name, in); b != nil {
		return b.compile(cp, fn, in)
	}
	if ty := cp.registry.RecordType(name); ty != nil {
		return cp.structForm(fn, ty, in)
	}
	if cp.registry.HasName(name) || builtinNamed(name) {
		cp.errorpf(fn, TypeErrorType,
			"`%s` does not accept input of type %s", name, in)
	}
	cp.errorpf(fn.Head, NameErrorType, "`%s` is not defined", name)
	panic("unreachable")
}

// defCallForm compiles a call to a user definition. The body is compiled
// here, at the call site, against the concrete input type and the types of
// the arguments, so a definition with a wildcard input constraint is
// checked anew for every input type it is used with.
func (cp *compiler) defCallForm(fn *parse.Form, def *Def, in *types.Type) formOp {
	cp.noFlags(fn, def.Name)
	if len(fn.Args) != len(def.Params) {
		cp.errorpf(fn, TypeErrorType, "%s", errs.ArityMismatch{
			What:     fmt.Sprintf("arguments to `%s`", def.Name),
			ValidLow: len(def.Params), ValidHigh: len(def.Params),
			Actual: len(fn.Args)})
	}
	for _, id := range cp.defStack {
		if id == def.ID {
			cp.errorpf(fn.Head, DefinitionErrorType,
				"recursion detected: `%s` calls itself", def.Name)
		}
	}
	args := make([]argOp, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = cp.argOp(a, in)
	}

	bcp := &compiler{
		registry: cp.registry,
		src:      def.Src,
		defStack: append(append([]uuid.UUID{}, cp.defStack...), def.ID),
	}
	bcp.pushScope()
	for i, p := range def.Params {
		bcp.thisScope()[p] = args[i].ty
	}
	body := bcp.pipelineOp(def.Body, in)

	params := def.Params
	src := def.Src
	site := fn.Range()
	return formOp{site, body.out, func(fm *Frame, in vals.Value) (vals.Value, error) {
		vars := make(map[string]vals.Value, len(args))
		for i, a := range args {
			v, err := a.get(fm, in)
			if err != nil {
				return nil, err
			}
			vars[params[i]] = v
		}
		return body.exec(fm.callFrame(src, vars, site), in)
	}}
}

// structForm compiles a record constructor: the record name applied to one
// value per field, either positionally in declaration order, or named with
// one --field=value flag per field in any order.
func (cp *compiler) structForm(fn *parse.Form, ty *types.Type, in *types.Type) formOp {
	fields := ty.Fields()
	args := make([]argOp, len(fields))
	if len(fn.Flags) > 0 {
		if len(fn.Args) > 0 {
			cp.errorpf(fn, TypeErrorType,
				"`%s` takes field flags or positional values, not both", ty.Name())
		}
		seen := make(map[string]bool)
		for _, fl := range fn.Flags {
			ft, i := ty.Field(fl.Name)
			if i < 0 {
				cp.errorpf(fl, FieldErrorType,
					"`%s` has no field `%s`", ty.Name(), fl.Name)
			}
			if seen[fl.Name] {
				cp.errorpf(fl, TypeErrorType,
					"duplicate field `%s` in `%s` construction", fl.Name, ty.Name())
			}
			seen[fl.Name] = true
			if fl.Value == nil {
				cp.errorpf(fl, TypeErrorType,
					"field flag `%s` needs a value", fl.Name)
			}
			a := cp.argOp(fl.Value, in)
			if !types.Equal(a.ty, ft) {
				cp.errorpf(fl.Value, TypeErrorType,
					"field `%s` of `%s` needs %s, got %s", fl.Name, ty.Name(), ft, a.ty)
			}
			args[i] = a
		}
		for _, f := range fields {
			if !seen[f.Name] {
				cp.errorpf(fn, TypeErrorType,
					"missing field `%s` in `%s` construction", f.Name, ty.Name())
			}
		}
	} else {
		if len(fn.Args) != len(fields) {
			cp.errorpf(fn, TypeErrorType, "%s", errs.ArityMismatch{
				What:     fmt.Sprintf("field values for `%s`", ty.Name()),
				ValidLow: len(fields), ValidHigh: len(fields),
				Actual: len(fn.Args)})
		}
		for i, a := range fn.Args {
			args[i] = cp.argOp(a, in)
			if !types.Equal(args[i].ty, fields[i].Type) {
				cp.errorpf(a, TypeErrorType,
					"field `%s` of `%s` needs %s, got %s",
					fields[i].Name, ty.Name(), fields[i].Type, args[i].ty)
			}
		}
	}
	return formOp{fn.Range(), ty, func(fm *Frame, in vals.Value) (vals.Value, error) {
		fieldVals := make([]vals.Value, len(args))
		for i, a := range args {
			v, err := a.get(fm, in)
			if err != nil {
				return nil, err
			}
			fieldVals[i] = v
		}
		return vals.NewStruct(ty, fieldVals), nil
	}}
}

// argOp is a compiled argument. Literal arguments are constants; variable
// and implicit-input arguments read from the frame; block arguments
// evaluate their pipeline when the value is requested, so commands control
// whether and how often a block runs.
type argOp struct {
	diag.Ranging
	ty  *types.Type
	get func(fm *Frame, in vals.Value) (vals.Value, error)
}

func constArg(pn *parse.Primary, t *types.Type, v vals.Value) argOp {
	return argOp{pn.Range(), t, func(*Frame, vals.Value) (vals.Value, error) {
		return v, nil
	}}
}

// argOp compiles an argument. A block argument is compiled against the
// stage's own input type and evaluates with the stage's input; commands
// that feed their blocks something else use blockOp directly.
func (cp *compiler) argOp(pn *parse.Primary, in *types.Type) argOp {
	switch pn.Type {
	case parse.Number:
		return constArg(pn, types.Num, pn.Num)
	case parse.Bareword, parse.SingleQuoted, parse.DoubleQuoted:
		return constArg(pn, types.Str, pn.Value)
	case parse.Bool:
		return constArg(pn, types.Bool, pn.BoolVal)
	case parse.Variable:
		t, ok := cp.lookupVar(pn.Value)
		if !ok {
			cp.errorpf(pn, NameErrorType, "variable `$%s` is not defined", pn.Value)
		}
		name := pn.Value
		return argOp{pn.Range(), t, func(fm *Frame, _ vals.Value) (vals.Value, error) {
			v, ok := fm.local.lookup(name)
			if !ok {
				return nil, fmt.Errorf("variable $%s not found", name)
			}
			return v, nil
		}}
	case parse.ImplicitInput:
		return argOp{pn.Range(), in, func(_ *Frame, in vals.Value) (vals.Value, error) {
			return in, nil
		}}
	case parse.Block:
		op := cp.blockOp(pn, in, nil)
		return argOp{pn.Range(), op.out, func(fm *Frame, in vals.Value) (vals.Value, error) {
			return op.run(fm, in, nil)
		}}
	default:
		cp.errorpf(pn, TypeErrorType, "bad argument")
		panic("unreachable")
	}
}

// blockOp is a compiled block argument, evaluated with an input chosen by
// the enclosing command and optional extra variable bindings (like $row
// in fold).
type blockOp struct {
	diag.Ranging
	out *types.Type
	run func(fm *Frame, in vals.Value, vars map[string]vals.Value) (vals.Value, error)
}

func (cp *compiler) blockOp(pn *parse.Primary, in *types.Type, extra map[string]*types.Type) blockOp {
	cp.pushScope()
	for name, t := range extra {
		cp.thisScope()[name] = t
	}
	op := cp.pipelineOp(pn.Pipeline, in)
	cp.popScope()
	return blockOp{pn.Range(), op.out, func(fm *Frame, in vals.Value, vars map[string]vals.Value) (vals.Value, error) {
		bfm := fm.fork()
		for k, v := range vars {
			bfm.local.vars[k] = v
		}
		return op.exec(bfm, in)
	}}
}

// Helpers shared by built-in compile functions.

func (cp *compiler) noFlags(fn *parse.Form, name string) {
	if len(fn.Flags) > 0 {
		cp.errorpf(fn.Flags[0], TypeErrorType, "`%s` takes no flags", name)
	}
}

func (cp *compiler) nArgs(fn *parse.Form, name string, low, high int) {
	n := len(fn.Args)
	if n < low || (high != -1 && n > high) {
		cp.errorpf(fn, TypeErrorType, "%s", errs.ArityMismatch{
			What:     fmt.Sprintf("arguments to `%s`", name),
			ValidLow: low, ValidHigh: high, Actual: n})
	}
}

// typedArg compiles an argument and requires it to have the given type.
func (cp *compiler) typedArg(pn *parse.Primary, in, want *types.Type, name string) argOp {
	a := cp.argOp(pn, in)
	if !types.Equal(a.ty, want) {
		cp.errorpf(pn, TypeErrorType,
			"argument to `%s` needs %s, got %s", name, want, a.ty)
	}
	return a
}

// constStrArg requires an argument to be a literal string, like the field
// names of get.
func (cp *compiler) constStrArg(pn *parse.Primary, name string) string {
	switch pn.Type {
	case parse.Bareword, parse.SingleQuoted, parse.DoubleQuoted:
		return pn.Value
	}
	cp.errorpf(pn, TypeErrorType, "argument to `%s` needs a literal name", name)
	panic("unreachable")
}
