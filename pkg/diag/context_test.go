package diag

import (
	"strings"
	"testing"
)

func setCulpritMarkersForTest(t *testing.T, begin, end string) {
	saveBegin, saveEnd := culpritLineBegin, culpritLineEnd
	culpritLineBegin, culpritLineEnd = begin, end
	t.Cleanup(func() { culpritLineBegin, culpritLineEnd = saveBegin, saveEnd })
}

func TestContextShow(t *testing.T) {
	setCulpritMarkersForTest(t, "<", ">")

	tests := []struct {
		name    string
		context *Context
		want    string
	}{
		{
			"single-line culprit",
			NewContext("[test]", "echo bad", Ranging{From: 5, To: 8}),
			"[test], line 1:\n  echo <bad>",
		},
		{
			"multi-line culprit",
			NewContext("[test]", "echo bad\nbad2 x", Ranging{From: 5, To: 13}),
			"[test], line 1-2:\n  echo <bad>\n  <bad2> x",
		},
		{
			"empty culprit",
			NewContext("[test]", "echo x", Ranging{From: 5, To: 5}),
			"[test], line 1:\n  echo <^>x",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.context.Show("  "); got != test.want {
				t.Errorf("Show() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestContextShowCompact(t *testing.T) {
	setCulpritMarkersForTest(t, "<", ">")

	c := NewContext("[test]", "echo bad", Ranging{From: 5, To: 8})
	got := c.ShowCompact("")
	want := "[test], line 1: echo <bad>"
	if got != want {
		t.Errorf("ShowCompact() = %q, want %q", got, want)
	}
}

func TestContextBadPosition(t *testing.T) {
	c := NewContext("[test]", "echo", Ranging{From: 10, To: 12})
	if got := c.Show(""); !strings.Contains(got, "invalid position") {
		t.Errorf("Show() with bad position = %q", got)
	}
}
