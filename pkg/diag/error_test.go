package diag

import (
	"strings"
	"testing"
)

func TestError(t *testing.T) {
	err := &Error{
		Type:    "some error",
		Message: "bad list",
		Context: *NewContext("[test]", "echo [x]", Ranging{From: 5, To: 8}),
	}

	wantErrorString := "some error: 5-8 in [test]: bad list"
	if s := err.Error(); s != wantErrorString {
		t.Errorf("Error() = %q, want %q", s, wantErrorString)
	}

	wantRanging := Ranging{From: 5, To: 8}
	if r := err.Range(); r != wantRanging {
		t.Errorf("Range() = %v, want %v", r, wantRanging)
	}

	show := err.Show("")
	if !strings.HasPrefix(show, "Some error:") {
		t.Errorf("Show() does not title-case the error type: %q", show)
	}
	if !strings.Contains(show, "bad list") {
		t.Errorf("Show() does not contain the message: %q", show)
	}
	if !strings.Contains(show, "line 1:") {
		t.Errorf("Show() does not contain the line range: %q", show)
	}
}
