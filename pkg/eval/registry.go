package eval

import (
	"sort"

	"github.com/google/uuid"

	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

// Def is a user definition: a named function with an input-type constraint
// and a pipeline body. The ID identifies the binding; redefining a name
// creates a new Def with a new ID, so pipelines compiled against the old
// binding are unaffected.
type Def struct {
	ID     uuid.UUID
	Name   string
	InType *types.Type // nil accepts any input
	Params []string
	Body   *parse.Pipeline
	Src    parse.Source
}

// Registry holds user definitions and user-declared record types.
// Built-in commands are not stored here; they form a fixed table that
// user definitions shadow.
//
// The registry is mutated only between evaluations, never during one.
type Registry struct {
	defs    map[string][]*Def
	records map[string]*types.Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:    make(map[string][]*Def),
		records: make(map[string]*types.Type),
	}
}

// RegisterDef inserts a definition. A definition with the same name and an
// equal input-type constraint replaces the existing binding; a different
// constraint adds an overload after the existing ones.
func (r *Registry) RegisterDef(name string, inType *types.Type, params []string, body *parse.Pipeline, src parse.Source) *Def {
	def := &Def{uuid.New(), name, inType, params, body, src}
	for i, old := range r.defs[name] {
		if types.Equal(old.InType, inType) {
			r.defs[name][i] = def
			return def
		}
	}
	r.defs[name] = append(r.defs[name], def)
	return def
}

// RegisterRecord inserts a record type, replacing any previous type of the
// same name.
func (r *Registry) RegisterRecord(ty *types.Type) {
	r.records[ty.Name()] = ty
}

// RecordType returns the named record type, or nil if there is none.
func (r *Registry) RecordType(name string) *types.Type {
	return r.records[name]
}

// clone returns a copy of the registry that can be mutated without
// affecting the original. The Defs themselves are shared; they are
// immutable once created.
func (r *Registry) clone() *Registry {
	defs := make(map[string][]*Def, len(r.defs))
	for name, list := range r.defs {
		defs[name] = append([]*Def(nil), list...)
	}
	records := make(map[string]*types.Type, len(r.records))
	for name, ty := range r.records {
		records[name] = ty
	}
	return &Registry{defs, records}
}

// HasName reports whether any definition with the given name exists, under
// any input-type constraint.
func (r *Registry) HasName(name string) bool {
	return len(r.defs[name]) > 0
}

// Names returns the names of all definitions and record types, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs)+len(r.records))
	for name := range r.defs {
		names = append(names, name)
	}
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Specificity ranks of an input-type constraint against a concrete type.
// A structurally equal constraint is more specific than a column wildcard
// (bare Table or TableRow), which is more specific than the full wildcard.
const (
	rankExact = iota
	rankKind
	rankAny
	rankNoMatch
)

func rank(constraint, t *types.Type) int {
	switch {
	case constraint == nil:
		return rankAny
	case types.Equal(constraint, t):
		return rankExact
	case types.Accepts(constraint, t):
		return rankKind
	default:
		return rankNoMatch
	}
}

// resolve returns the definition of the given name that best matches the
// input type. If several definitions match equally well, it returns them
// all in the second return value; the caller reports the ambiguity.
func (r *Registry) resolve(name string, in *types.Type) (*Def, []*Def) {
	best := rankNoMatch
	var matches []*Def
	for _, def := range r.defs[name] {
		switch rk := rank(def.InType, in); {
		case rk < best:
			best = rk
			matches = []*Def{def}
		case rk == best && rk != rankNoMatch:
			matches = append(matches, def)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return nil, matches
}
