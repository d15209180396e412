// Package strutil contains string utilities shared by other packages.
package strutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title returns s with the first codepoint changed to title case.
func Title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}

// FirstLine returns the part of s before the first newline, or s itself if it
// contains no newline.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// LastLine returns the part of s after the last newline, or s itself if it
// contains no newline.
func LastLine(s string) string {
	return s[strings.LastIndexByte(s, '\n')+1:]
}
