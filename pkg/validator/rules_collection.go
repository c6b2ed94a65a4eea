package validator

// RequiredSlice fails on an empty slice.
func RequiredSlice[T any](field string, value []T) Rule {
	return newRule(func() bool {
		return len(value) > 0
	}, field, "is required", "validation.required", nil)
}

// RequiredMap fails on an empty map.
func RequiredMap[K comparable, V any](field string, value map[K]V) Rule {
	return newRule(func() bool {
		return len(value) > 0
	}, field, "is required", "validation.required", nil)
}

// MinLenSlice fails when value has fewer than minLen items.
func MinLenSlice[T any](field string, value []T, minLen int) Rule {
	return newRule(func() bool {
		return len(value) >= minLen
	}, field, "has too few items", "validation.min_items", map[string]any{"min": minLen})
}

// MaxLenSlice fails when value has more than maxLen items.
func MaxLenSlice[T any](field string, value []T, maxLen int) Rule {
	return newRule(func() bool {
		return len(value) <= maxLen
	}, field, "has too many items", "validation.max_items", map[string]any{"max": maxLen})
}
