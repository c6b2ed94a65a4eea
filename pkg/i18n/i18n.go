package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "ka"

// M holds placeholder values for a translation.
type M map[string]any

// I18n is an immutable translation catalog keyed by language, namespace and dotted key.
// It is safe for concurrent use once New returns.
type I18n struct {
	// Key format: "lang:namespace:key.path"
	translations      map[string]string
	missingKeyHandler func(lang, namespace, key string)
	defaultLang       string
	languages         []string
	loaded            map[string]struct{}
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New builds a catalog from the given options.
// When WithLanguages is not used the language list is derived from the loaded catalogs,
// default language first.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		loaded:       make(map[string]struct{}),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}
	if len(i.languages) == 0 {
		i.languages = orderLanguages(i.defaultLang, slices.Collect(maps.Keys(i.loaded)))
	}

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		if len(i.languages) > 0 {
			i.languages = orderLanguages(lang, i.languages)
		}
		return nil
	}
}

// WithLanguages restricts the supported languages.
// The default language is always included and placed first; the rest are sorted.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		if len(langs) == 0 {
			return nil
		}
		i.languages = orderLanguages(i.defaultLang, langs)
		return nil
	}
}

// WithTranslations registers translations for a language and namespace.
// Nested maps are flattened to dotted keys.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		i.add(lang, namespace, translations)
		return nil
	}
}

// WithMissingKeyHandler sets a callback for keys missing in every fallback language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// T looks up key in lang, then in its base language, then in the default language.
// Returns the key itself when nothing matches.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	for _, l := range i.fallbacks(lang) {
		if tr, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return replacePlaceholdersWithMerge(tr, placeholders...)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Has reports whether key resolves in lang or one of its fallbacks.
func (i *I18n) Has(lang, namespace, key string) bool {
	for _, l := range i.fallbacks(lang) {
		if _, ok := i.translations[buildKey(l, namespace, key)]; ok {
			return true
		}
	}
	return false
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Supports reports whether lang (or its base language) is in the supported list.
func (i *I18n) Supports(lang string) bool {
	lang = strings.ToLower(lang)
	return slices.Contains(i.languages, lang) || slices.Contains(i.languages, baseLanguage(lang))
}

func (i *I18n) add(lang, namespace string, translations map[string]any) {
	if len(translations) == 0 {
		return
	}
	for key, value := range flattenTranslations(translations, "") {
		i.translations[buildKey(lang, namespace, key)] = value
	}
	i.loaded[lang] = struct{}{}
}

func (i *I18n) fallbacks(lang string) []string {
	chain := []string{lang}
	if base := baseLanguage(lang); base != lang {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, i.defaultLang) {
		chain = append(chain, i.defaultLang)
	}
	return chain
}

func orderLanguages(def string, langs []string) []string {
	set := make(map[string]struct{}, len(langs))
	for _, l := range langs {
		if l != "" && l != def {
			set[l] = struct{}{}
		}
	}
	rest := slices.Sorted(maps.Keys(set))
	return append([]string{def}, rest...)
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}

// baseLanguage strips the region from a language tag ("en-US" becomes "en").
func baseLanguage(lang string) string {
	if i := strings.IndexByte(lang, '-'); i > 0 {
		return lang[:i]
	}
	return lang
}
