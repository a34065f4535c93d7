package practice

import "strings"

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsCorrect compares a submitted translation with the expected one,
// ignoring case and surrounding whitespace.
func IsCorrect(submitted, expected string) bool {
	return Normalize(submitted) == Normalize(expected)
}
