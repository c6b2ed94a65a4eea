// Package sanitizer cleans user input before validation.
//
// HTML handling is delegated to bluemonday: StripHTML removes every tag, SanitizeHTML
// keeps a small formatting allowlist. Text helpers normalize Unicode to NFC with
// golang.org/x/text, collapse whitespace and shape names, emails and phone numbers.
//
// SanitizeStruct applies the same helpers through `sanitize` struct tags and is what
// Context.Bind runs after binding form data.
package sanitizer
