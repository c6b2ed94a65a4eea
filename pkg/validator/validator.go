package validator

// Rule pairs a check with the error reported when the check fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates rules in order and returns ValidationErrors for the failures, or nil.
// Only the first failing rule of each field is reported.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	failed := make(map[string]bool)

	for _, r := range rules {
		if failed[r.Error.Field] || r.Check == nil || r.Check() {
			continue
		}
		failed[r.Error.Field] = true
		errs = append(errs, r.Error)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func newRule(check func() bool, field, message, key string, values map[string]any) Rule {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}
