// Package validator provides rule-based validation with translatable error messages.
//
// Rules are plain values built by constructors such as RequiredString or Email and
// evaluated by Apply, which returns ValidationErrors when any rule fails:
//
//	err := validator.Apply(
//		validator.RequiredString("name", f.Name),
//		validator.MaxLenString("name", f.Name, 100),
//		validator.Email("email", f.Email),
//		validator.Accepted("acceptTerms", f.AcceptTerms),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		ve.Translate(translator.TranslateMessage)
//	}
//
// Every error carries a TranslationKey ("validation.required", "validation.email", ...)
// and TranslationValues including the field name, so messages can be localized.
// Only the first failing rule per field is reported.
package validator
