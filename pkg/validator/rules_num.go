package validator

import "cmp"

// Number is any ordered numeric type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// RequiredNum fails on the zero value.
func RequiredNum[T Number](field string, value T) Rule {
	return newRule(func() bool {
		var zero T
		return value != zero
	}, field, "is required", "validation.required", nil)
}

// MinNum fails when value is below minVal.
func MinNum[T Number](field string, value, minVal T) Rule {
	return newRule(func() bool {
		return cmp.Compare(value, minVal) >= 0
	}, field, "is too small", "validation.min", map[string]any{"min": minVal})
}

// MaxNum fails when value is above maxVal.
func MaxNum[T Number](field string, value, maxVal T) Rule {
	return newRule(func() bool {
		return cmp.Compare(value, maxVal) <= 0
	}, field, "is too large", "validation.max", map[string]any{"max": maxVal})
}
