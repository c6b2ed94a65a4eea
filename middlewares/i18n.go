package middlewares

import (
	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/pkg/i18n"
)

// DefaultLanguageCookie is the cookie remembering an explicit ?lang= choice.
const DefaultLanguageCookie = "lang"

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	Extractor    internal.Extractor
	Namespace    string
	CookieName   string
	CookieMaxAge int
	extractorSet bool
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nNamespace sets the namespace of the context translator.
func WithI18nNamespace(ns string) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Namespace = ns
	}
}

// WithI18nExtractor sets a custom language extractor chain.
func WithI18nExtractor(ext internal.Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithI18nRemember stores a language chosen via ?lang= in a cookie for maxAge seconds.
func WithI18nRemember(maxAge int) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.CookieMaxAge = maxAge
	}
}

// FromAcceptLanguage returns an ExtractorSource matching the Accept-Language
// header against the available languages.
func FromAcceptLanguage(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return i18n.ParseAcceptLanguage(header, available), true
	}
}

// I18n returns middleware that resolves the request language, creates a
// Translator and stores both in the request context.
// The default chain is ?lang=, the lang cookie, then Accept-Language.
// Unsupported values fall back to the default language.
func I18n(svc *i18n.I18n, opts ...I18nOption) internal.Middleware {
	cfg := &I18nConfig{CookieName: DefaultLanguageCookie}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromQuery("lang"),
			internal.FromCookie(cfg.CookieName),
			FromAcceptLanguage(svc.Languages()),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok || !svc.Supports(lang) {
				lang = svc.DefaultLanguage()
			}

			if cfg.CookieMaxAge > 0 && c.Query("lang") == lang {
				c.SetCookie(cfg.CookieName, lang, cfg.CookieMaxAge)
			}

			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(svc, lang, cfg.Namespace))
			c.Set(internal.LanguageKey{}, lang)

			return next(c)
		}
	}
}

// GetTranslator returns the Translator, or nil if the I18n middleware did not run.
func GetTranslator(c internal.Context) *i18n.Translator {
	return internal.ContextValue[*i18n.Translator](c, internal.TranslatorKey{})
}

// GetLanguage returns the resolved language, or "" if the I18n middleware did not run.
func GetLanguage(c internal.Context) string {
	return internal.ContextValue[string](c, internal.LanguageKey{})
}
