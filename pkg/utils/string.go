// Package utils provides small string helpers shared across packages.
package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeWhitespace replaces every run of whitespace with a single space
// and drops leading and trailing whitespace. The ASCII file, group, record
// and unit separators (U+001C to U+001F) count as whitespace.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.FieldsFunc(str, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// CharCount returns the length of str in characters (code points), not bytes.
func CharCount(str string) int {
	return utf8.RuneCountInString(str)
}

// TruncateChars cuts str to at most maxChars characters and appends suffix.
// The suffix is always appended, even when str is already short enough.
func TruncateChars(str string, maxChars int, suffix string) string {
	if maxChars < 0 {
		maxChars = 0
	}

	n := 0
	for i := range str {
		if n == maxChars {
			return str[:i] + suffix
		}
		n++
	}

	return str + suffix
}
