// Package errutil contains common error utilities.
package errutil

import "strings"

// Multi combines multiple errors into one. Nil arguments are discarded; if
// no error remains, Multi returns nil, and if exactly one remains, it is
// returned as is. Errors returned from earlier Multi calls are flattened.
func Multi(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case multiError:
			nonNil = append(nonNil, err...)
		default:
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

type multiError []error

// Unwrap returns the constituent errors, for use with the errors package.
func (me multiError) Unwrap() []error { return me }

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}
