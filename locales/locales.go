// Package locales embeds the Form UI translations and terms documents.
//
// Layout is {lang}/{namespace}.yaml for i18n catalogs and {lang}/terms.md for
// the terms page.
package locales

import "embed"

// Namespace is the i18n namespace of the form strings.
const Namespace = "form"

// DefaultLanguage is used when nothing else matches.
const DefaultLanguage = "ka"

// FS holds every language directory.
//
//go:embed ka en
var FS embed.FS
