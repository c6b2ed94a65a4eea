// Package binder copies request data into structs.
//
// Form and Query read url.Values using the "form" and "query" struct tags;
// JSON decodes the body with encoding/json and honours "json" tags.
//
//	type Submission struct {
//		Name        string `form:"name"`
//		AcceptTerms bool   `form:"acceptTerms"`
//	}
//
//	var s Submission
//	if err := binder.Form()(r, &s); err != nil {
//		// ErrMalformedBody, ErrUnsupportedMediaType, ErrInvalidValue...
//	}
//
// Checkbox values "on", "yes" and "checked" bind to true.
package binder
