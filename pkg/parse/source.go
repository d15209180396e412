package parse

import "fmt"

// Source describes a piece of source code.
type Source struct {
	Name   string
	Code   string
	IsFile bool
}

// SourceForTest returns a Source used for testing.
func SourceForTest(code string) Source {
	return Source{Name: "[test]", Code: code}
}

// Repr returns a representation of the source useful for debugging.
func (src Source) Repr() string {
	return fmt.Sprintf("<%s %q>", src.Name, src.Code)
}
