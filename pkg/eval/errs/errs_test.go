package errs

import (
	"testing"
)

var errorMessageTests = []struct {
	err     error
	wantMsg string
}{
	{
		OutOfRange{What: "row index", ValidLow: 0, ValidHigh: 2, Actual: "3"},
		"out of range: row index must be from 0 to 2, but is 3",
	},
	{
		OutOfRange{What: "row index", ValidLow: 1, ValidHigh: 0, Actual: "0"},
		"out of range: row index has no valid value, but is 0",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: 2, Actual: 3},
		"arity mismatch: arguments must be 2 values, but is 3 values",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: -1, Actual: 1},
		"arity mismatch: arguments must be 2 or more values, but is 1 value",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: 3, Actual: 1},
		"arity mismatch: arguments must be 2 to 3 values, but is 1 value",
	},
	{
		BadValue{What: "range bound", Valid: "less than the upper bound", Actual: "5"},
		"bad value: range bound must be less than the upper bound, but is 5",
	},
	{
		Arithmetic{What: "division by zero"},
		"arithmetic error: division by zero",
	},
}

func TestErrorMessages(t *testing.T) {
	for _, test := range errorMessageTests {
		if gotMsg := test.err.Error(); gotMsg != test.wantMsg {
			t.Errorf("got message %v, want %v", gotMsg, test.wantMsg)
		}
	}
}
