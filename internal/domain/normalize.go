package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeHumanName trims leading/trailing whitespace and collapses internal whitespace runs.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Initials returns the upper-cased first letter of the first and last name parts,
// e.g. "Ravi Kumar" -> "RK". A single-word name yields one letter.
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	first := firstRune(parts[0])
	if len(parts) == 1 {
		return string(first)
	}
	return string(first) + string(firstRune(parts[len(parts)-1]))
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.ToUpper(r)
}
