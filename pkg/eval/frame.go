package eval

import (
	"errors"

	"github.com/kianmeng/ogma/pkg/diag"
	"github.com/kianmeng/ogma/pkg/eval/vals"
	"github.com/kianmeng/ogma/pkg/parse"
)

// maxFrameDepth bounds the nesting of active scopes, so that pathologically
// deep pipelines fail with an exception instead of exhausting the stack.
const maxFrameDepth = 1000

var errDepthExceeded = errors.New("maximum nesting depth exceeded")

// Frame is an evaluation frame. It holds the variable scope chain of the
// pipeline being evaluated, the source it was compiled from, and the call
// sites of the enclosing definition calls for stack traces.
type Frame struct {
	src   parse.Source
	local *scope
	depth int
	stack *StackTrace
}

// fork returns a copy of fm with a fresh innermost scope.
func (fm *Frame) fork() *Frame {
	newFm := *fm
	newFm.local = &scope{up: fm.local, vars: make(map[string]vals.Value)}
	return &newFm
}

// callFrame returns a frame for evaluating the body of a definition called
// at the given site: a fresh scope chain holding only the parameter
// bindings, with the call site recorded for stack traces.
func (fm *Frame) callFrame(src parse.Source, params map[string]vals.Value, site diag.Ranger) *Frame {
	return &Frame{
		src:   src,
		local: &scope{vars: params},
		depth: fm.depth + 1,
		stack: &StackTrace{
			Head: diag.NewContext(fm.src.Name, fm.src.Code, site),
			Next: fm.stack,
		},
	}
}

// errorp wraps err into an Exception with the source context of r, unless
// it already is one.
func (fm *Frame) errorp(r diag.Ranger, err error) error {
	if err == nil {
		return nil
	}
	if exc, ok := err.(*Exception); ok {
		return exc
	}
	return &Exception{err, &StackTrace{
		Head: diag.NewContext(fm.src.Name, fm.src.Code, r),
		Next: fm.stack,
	}}
}

// scope is a link in the chain of variable scopes.
type scope struct {
	up   *scope
	vars map[string]vals.Value
}

func (s *scope) lookup(name string) (vals.Value, bool) {
	for ; s != nil; s = s.up {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
