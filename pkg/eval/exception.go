package eval

import (
	"strings"

	"github.com/kianmeng/ogma/pkg/diag"
)

// Exception represents a runtime error. It carries the underlying reason
// and the stack of pipeline stages that were active when the error
// occurred.
type Exception struct {
	reason error
	stack  *StackTrace
}

// StackTrace is a linked list of the source contexts of active stages,
// innermost first.
type StackTrace struct {
	Head *diag.Context
	Next *StackTrace
}

// NewException creates a new Exception.
func NewException(reason error, stack *StackTrace) *Exception {
	return &Exception{reason, stack}
}

// Reason returns the underlying reason of the exception.
func (exc *Exception) Reason() error { return exc.reason }

// StackTrace returns the stack trace of the exception.
func (exc *Exception) StackTrace() *StackTrace { return exc.stack }

// Error returns the message of the underlying reason.
func (exc *Exception) Error() string { return exc.reason.Error() }

// Unwrap returns the underlying reason, so that errors.Is and errors.As
// see through the exception.
func (exc *Exception) Unwrap() error { return exc.reason }

// Show shows the exception with the source context of each active stage.
func (exc *Exception) Show(indent string) string {
	var sb strings.Builder
	sb.WriteString("Exception: ")
	sb.WriteString(exc.reason.Error())
	for tb := exc.stack; tb != nil; tb = tb.Next {
		sb.WriteString("\n" + indent + "  ")
		if tb == exc.stack {
			sb.WriteString(tb.Head.Show(indent + "  "))
		} else {
			sb.WriteString(tb.Head.ShowCompact(indent + "  "))
		}
	}
	return sb.String()
}
