// Package i18n holds the translation catalogs for the form UI.
//
// Catalogs are built once at startup and are immutable afterwards, so a single
// instance is shared by every request:
//
//	catalog, err := i18n.New(
//		i18n.WithDefaultLanguage("ka"),
//		i18n.WithYAMLDir(localesFS),
//	)
//
//	catalog.T("en", "form", "placeholders.name")   // "First name"
//	catalog.T("en-GB", "form", "success")          // falls back to "en", then "ka"
//
// Files follow the {lang}/{namespace}.yaml convention; nested keys are flattened to
// dotted paths. Values may carry {{name}} placeholders filled from an M map.
//
// A Translator fixes the language and namespace for one request and is what the I18n
// middleware stores in the request context. ParseAcceptLanguage resolves the best
// supported language from an Accept-Language header using golang.org/x/text/language.
package i18n
