package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// RequiredString fails when value is empty or whitespace only.
func RequiredString(field, value string) Rule {
	return newRule(func() bool {
		return strings.TrimSpace(value) != ""
	}, field, "is required", "validation.required", nil)
}

// MinLenString fails when value has fewer than minLen characters.
// Length is counted in runes.
func MinLenString(field, value string, minLen int) Rule {
	return newRule(func() bool {
		return utf8.RuneCountInString(value) >= minLen
	}, field, "is too short", "validation.min_length", map[string]any{"min": minLen})
}

// MaxLenString fails when value has more than maxLen characters.
func MaxLenString(field, value string, maxLen int) Rule {
	return newRule(func() bool {
		return utf8.RuneCountInString(value) <= maxLen
	}, field, "is too long", "validation.max_length", map[string]any{"max": maxLen})
}

// LenString fails unless value has exactly length characters.
func LenString(field, value string, length int) Rule {
	return newRule(func() bool {
		return utf8.RuneCountInString(value) == length
	}, field, "has invalid length", "validation.exact_length", map[string]any{"length": length})
}

// Email fails when value is not a bare address such as "user@example.com".
// Display-name forms like "Nino <nino@example.com>" are rejected.
func Email(field, value string) Rule {
	return newRule(func() bool {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}
		_, domain, ok := strings.Cut(addr.Address, "@")
		return ok && strings.Contains(domain, ".")
	}, field, "must be a valid email address", "validation.email", nil)
}

var phoneChars = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)

// Phone fails unless value is made of digits, spaces, dashes and parentheses,
// with an optional leading plus, and holds between minDigits and maxDigits digits.
func Phone(field, value string, minDigits, maxDigits int) Rule {
	return newRule(func() bool {
		if !phoneChars.MatchString(value) {
			return false
		}
		n := 0
		for _, r := range value {
			if r >= '0' && r <= '9' {
				n++
			}
		}
		return n >= minDigits && n <= maxDigits
	}, field, "must be a valid phone number", "validation.phone",
		map[string]any{"min": minDigits, "max": maxDigits})
}
