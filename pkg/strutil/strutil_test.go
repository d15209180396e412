package strutil

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"parse error", "Parse error"},
		{"", ""},
		{"T", "T"},
		{"\U0001F920 x", "\U0001F920 x"},
	}
	for _, test := range tests {
		if got := Title(test.in); got != test.want {
			t.Errorf("Title(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestFirstLineLastLine(t *testing.T) {
	if got := FirstLine("a\nb"); got != "a" {
		t.Errorf("FirstLine = %q, want a", got)
	}
	if got := FirstLine("ab"); got != "ab" {
		t.Errorf("FirstLine = %q, want ab", got)
	}
	if got := LastLine("a\nb"); got != "b" {
		t.Errorf("LastLine = %q, want b", got)
	}
	if got := LastLine("ab"); got != "ab" {
		t.Errorf("LastLine = %q, want ab", got)
	}
}
