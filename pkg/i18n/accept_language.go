package i18n

import "golang.org/x/text/language"

// maxAcceptLanguageLength bounds the header before parsing.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage picks the entry of available that best matches an Accept-Language header.
// Quality values are honored and regional variants match their base language.
// Falls back to available[0] when the header is empty, malformed or matches nothing.
//
// Example: header "en-US,en;q=0.9,ka;q=0.8" with available ["ka", "en"] returns "en".
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" {
		return available[0]
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	requested, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(requested) == 0 {
		return available[0]
	}

	supported := make([]language.Tag, 0, len(available))
	for _, a := range available {
		supported = append(supported, language.Make(a))
	}

	_, idx, conf := language.NewMatcher(supported).Match(requested...)
	if conf == language.No {
		return available[0]
	}
	return available[idx]
}
