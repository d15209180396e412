package eval

import (
	"github.com/kianmeng/ogma/pkg/parse"
	"github.com/kianmeng/ogma/pkg/types"
)

// builtin is a built-in command under one input-type constraint. Built-ins
// with several constraints (like len on tables and on strings) register
// one builtin per constraint; resolution picks the first registered one
// that accepts the input type.
type builtin struct {
	name    string
	accepts func(*types.Type) bool
	compile func(cp *compiler, fn *parse.Form, in *types.Type) formOp
}

var builtins []*builtin

func addBuiltin(name string, accepts func(*types.Type) bool, compile func(*compiler, *parse.Form, *types.Type) formOp) {
	builtins = append(builtins, &builtin{name, accepts, compile})
}

func resolveBuiltin(name string, in *types.Type) *builtin {
	for _, b := range builtins {
		if b.name == name && b.accepts(in) {
			return b
		}
	}
	return nil
}

func builtinNamed(name string) bool {
	for _, b := range builtins {
		if b.name == name {
			return true
		}
	}
	return false
}

// BuiltinNames returns the names of all built-in commands, without
// duplicates, in registration order.
func BuiltinNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, b := range builtins {
		if !seen[b.name] {
			seen[b.name] = true
			names = append(names, b.name)
		}
	}
	return names
}

// Input-type constraints for built-ins.

func anyInput(*types.Type) bool { return true }

func kindIs(k types.Kind) func(*types.Type) bool {
	return func(t *types.Type) bool { return t.Kind() == k }
}

func typeIs(want *types.Type) func(*types.Type) bool {
	return func(t *types.Type) bool { return types.Equal(want, t) }
}
