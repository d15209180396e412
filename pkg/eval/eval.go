package eval

import (
	"fmt"

	"github.com/kianmeng/ogma/pkg/diag"
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

// Evaler provides a common API for compiling and evaluating statements
// against a registry of definitions.
type Evaler struct {
	registry *Registry
}

// NewEvaler creates a new Evaler with an empty registry.
func NewEvaler() *Evaler {
	return &Evaler{NewRegistry()}
}

// Registry returns the definition registry.
func (ev *Evaler) Registry() *Registry { return ev.registry }

// Eval parses and evaluates src. Pipeline statements are evaluated with
// the given input; def and def-ty statements register their definition
// and produce the empty value. The result is that of the last statement.
//
// The returned error is a *diag.Error for parse and compilation errors
// and an *Exception for runtime errors.
func (ev *Evaler) Eval(src parse.Source, input vals.Value) (vals.Value, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	var out vals.Value
	for _, st := range tree.Root.Statements {
		var err error
		out, err = ev.EvalStatement(src, st, input)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EvalStatement evaluates a single parsed statement with the given input.
// A def or def-ty statement registers its definition and produces the
// empty value.
func (ev *Evaler) EvalStatement(src parse.Source, st *parse.Statement, input vals.Value) (vals.Value, error) {
	switch {
	case st.DefTy != nil:
		return nil, ev.registerDefTy(src, st.DefTy)
	case st.Def != nil:
		return nil, ev.registerDef(src, st.Def)
	default:
		op, err := compilePipeline(ev.registry, src, st.Pipeline, vals.TypeOf(input))
		if err != nil {
			return nil, err
		}
		fm := &Frame{src: src}
		return op.exec(fm, input)
	}
}

// Check parses and compiles src without evaluating anything or changing
// the registry. Pipeline statements are checked against the given input
// type; a nil input type stands for the empty input. It returns the first
// error found, or nil.
func (ev *Evaler) Check(src parse.Source, in *types.Type) error {
	tree, err := parse.Parse(src)
	if err != nil {
		return err
	}
	if in == nil {
		in = types.Nil
	}
	scratch := &Evaler{ev.registry.clone()}
	for _, st := range tree.Root.Statements {
		switch {
		case st.DefTy != nil:
			if err := scratch.registerDefTy(src, st.DefTy); err != nil {
				return err
			}
		case st.Def != nil:
			if err := scratch.registerDef(src, st.Def); err != nil {
				return err
			}
		default:
			if _, err := compilePipeline(scratch.registry, src, st.Pipeline, in); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadDefs parses a definition source and registers everything it
// declares. Statements other than def and def-ty are rejected.
func (ev *Evaler) LoadDefs(src parse.Source) error {
	tree, err := parse.Parse(src)
	if err != nil {
		return err
	}
	for _, st := range tree.Root.Statements {
		switch {
		case st.DefTy != nil:
			if err := ev.registerDefTy(src, st.DefTy); err != nil {
				return err
			}
		case st.Def != nil:
			if err := ev.registerDef(src, st.Def); err != nil {
				return err
			}
		default:
			return defError(src, st,
				"only definitions are allowed in a definition source")
		}
	}
	return nil
}

func (ev *Evaler) registerDef(src parse.Source, dn *parse.Def) error {
	var inType *types.Type
	if dn.InType != nil {
		t := lookupType(ev.registry, dn.InType.Name)
		if t == nil {
			return defError(src, dn.InType,
				"type `%s` is not defined", dn.InType.Name)
		}
		inType = t
	}
	params := make([]string, len(dn.Params))
	seen := make(map[string]bool)
	for i, p := range dn.Params {
		if seen[p.Name] {
			return defError(src, p, "duplicate parameter `%s`", p.Name)
		}
		seen[p.Name] = true
		params[i] = p.Name
	}
	ev.registry.RegisterDef(dn.Name.Name, inType, params, dn.Body, src)
	return nil
}

func (ev *Evaler) registerDefTy(src parse.Source, dn *parse.DefTy) error {
	name := dn.Name.Name
	if lookupPrimitive(name) != nil {
		return defError(src, dn.Name, "cannot redefine type `%s`", name)
	}
	if len(dn.Fields) == 0 {
		return defError(src, dn, "a type needs at least one field")
	}
	fields := make([]types.Field, len(dn.Fields))
	seen := make(map[string]bool)
	for i, f := range dn.Fields {
		if seen[f.Name.Name] {
			return defError(src, f.Name, "duplicate field `%s`", f.Name.Name)
		}
		seen[f.Name.Name] = true
		ft := lookupType(ev.registry, f.Type.Name)
		if ft == nil {
			return defError(src, f.Type, "type `%s` is not defined", f.Type.Name)
		}
		fields[i] = types.Field{Name: f.Name.Name, Type: ft}
	}
	ev.registry.RegisterRecord(types.MakeRecord(name, fields))
	return nil
}

func defError(src parse.Source, r diag.Ranger, format string, args ...any) *diag.Error {
	return &diag.Error{
		Type:    DefinitionErrorType,
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(src.Name, src.Code, r),
	}
}

func lookupPrimitive(name string) *types.Type {
	switch name {
	case "Num":
		return types.Num
	case "Str":
		return types.Str
	case "Bool":
		return types.Bool
	case "Table":
		return types.AnyTable
	case "TableRow":
		return types.AnyTableRow
	}
	return nil
}

// lookupType resolves a type annotation against the primitives and the
// registered record types, returning nil when there is no such type.
func lookupType(reg *Registry, name string) *types.Type {
	if t := lookupPrimitive(name); t != nil {
		return t
	}
	return reg.RecordType(name)
}
