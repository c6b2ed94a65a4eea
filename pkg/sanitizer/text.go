package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeText composes s into Unicode NFC and drops control characters
// other than tab and newline.
// Georgian and Latin input typed on different keyboards compares equal afterwards.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// CollapseSpaces replaces every run of whitespace with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Name prepares a personal name: tags stripped, NFC, single spaces, trimmed.
func Name(s string) string {
	return CollapseSpaces(NormalizeText(StripHTML(s)))
}

// Email trims and lowercases an address.
func Email(s string) string {
	return strings.ToLower(Trim(NormalizeText(s)))
}

// Phone keeps the formatting characters a user typed but drops everything else.
func Phone(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '+', r == ' ', r == '-', r == '(', r == ')':
			return r
		default:
			return -1
		}
	}, NormalizeText(s))
	return CollapseSpaces(s)
}
