// Package errs declares error types used as exception reasons.
package errs

import "fmt"

// OutOfRange encodes an error where a value is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    string
}

// Error implements the error interface.
func (e OutOfRange) Error() string {
	if e.ValidHigh < e.ValidLow {
		return fmt.Sprintf("out of range: %s has no valid value, but is %s",
			e.What, e.Actual)
	}
	return fmt.Sprintf("out of range: %s must be from %d to %d, but is %s",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// ArityMismatch encodes an error where the expected number of values is out
// of the valid range.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func valuesStr(n int) string {
	if n == 1 {
		return "value"
	}
	return "values"
}

// Error implements the error interface.
func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %s must be %d %s, but is %d %s",
			e.What, e.ValidLow, valuesStr(e.ValidLow), e.Actual, valuesStr(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %s must be %d or more %s, but is %d %s",
			e.What, e.ValidLow, valuesStr(e.ValidLow), e.Actual, valuesStr(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %s must be %d to %d values, but is %d %s",
			e.What, e.ValidLow, e.ValidHigh, e.Actual, valuesStr(e.Actual))
	}
}

// BadValue encodes an error where the value does not fit its role.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

// Error implements the error interface.
func (e BadValue) Error() string {
	return fmt.Sprintf(
		"bad value: %s must be %s, but is %s", e.What, e.Valid, e.Actual)
}

// Arithmetic encodes an error in a numeric operation, like dividing by
// zero or taking an even root of a negative number.
type Arithmetic struct {
	What string
}

// Error implements the error interface.
func (e Arithmetic) Error() string {
	return "arithmetic error: " + e.What
}
