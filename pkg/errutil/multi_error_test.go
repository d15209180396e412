package errutil

import (
	"errors"
	"testing"
)

func TestMulti(t *testing.T) {
	err1 := errors.New("1")
	err2 := errors.New("2")
	err3 := errors.New("3")

	if err := Multi(); err != nil {
		t.Errorf("Multi() = %v, want nil", err)
	}
	if err := Multi(nil, nil); err != nil {
		t.Errorf("Multi(nil, nil) = %v, want nil", err)
	}
	if err := Multi(nil, err1); err != err1 {
		t.Errorf("Multi(nil, err1) = %v, want err1", err)
	}
	wantMsg := "multiple errors: 1; 2"
	if err := Multi(err1, err2); err.Error() != wantMsg {
		t.Errorf("Multi(err1, err2) = %q, want %q", err.Error(), wantMsg)
	}
	wantMsg = "multiple errors: 1; 2; 3"
	if err := Multi(Multi(err1, err2), err3); err.Error() != wantMsg {
		t.Errorf("flattened error = %q, want %q", err.Error(), wantMsg)
	}
}
