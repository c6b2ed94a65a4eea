package i18n

import (
	"fmt"
	"strings"
)

// ReplacePlaceholders substitutes {{name}} placeholders with values from placeholders.
// Unknown placeholders are left untouched.
//
//	ReplacePlaceholders("Field {{field}} is required", M{"field": "email"})
//	// "Field email is required"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	pairs := make([]string, 0, len(placeholders)*2)
	for key, value := range placeholders {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
