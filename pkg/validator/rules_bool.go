package validator

// Accepted fails unless value is true. Used for consent checkboxes.
func Accepted(field string, value bool) Rule {
	return newRule(func() bool {
		return value
	}, field, "must be accepted", "validation.accepted", nil)
}
