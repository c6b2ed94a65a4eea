package middlewares

import (
	"context"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/dmitrymomot/formrelay/internal"
)

// CSRFFieldName is the hidden form field and cookie carrying the token.
const CSRFFieldName = "_csrf"

type (
	csrfTokenKey struct{}
	csrfFieldKey struct{}
	csrfCallKey  struct{}
)

// csrfCall carries the framework context through gorilla/csrf's http.Handler chain.
type csrfCall struct {
	c    internal.Context
	next internal.HandlerFunc
	err  error
}

// CSRF returns middleware protecting unsafe methods with gorilla/csrf.
// The token is stored in the context for views; see GetCSRFToken and GetCSRFField.
// A failed check returns a 403 HTTPError for the app's error handler.
//
// Example:
//
//	r.Use(middlewares.CSRF(key, csrf.Secure(cfg.SecureCookies)))
func CSRF(authKey []byte, opts ...csrf.Option) internal.Middleware {
	options := append([]csrf.Option{
		csrf.FieldName(CSRFFieldName),
		csrf.CookieName(CSRFFieldName),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	}, opts...)
	options = append(options, csrf.ErrorHandler(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		call := r.Context().Value(csrfCallKey{}).(*csrfCall)
		reason := csrf.FailureReason(r)
		call.c.LogWarn("csrf check failed", "reason", reason)
		call.err = internal.ErrForbidden("Forbidden", internal.WithError(reason))
	})))

	protect := csrf.Protect(authKey, options...)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		call := r.Context().Value(csrfCallKey{}).(*csrfCall)
		call.c.Set(csrfTokenKey{}, csrf.Token(r))
		call.c.Set(csrfFieldKey{}, csrf.TemplateField(r))
		call.err = call.next(call.c)
	}))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			call := &csrfCall{c: c, next: next}
			r := c.Request()
			// gorilla/csrf reads the token from a shallow copy of r; parsing
			// here keeps the form on the request handlers bind from.
			_ = r.ParseForm()
			r = r.WithContext(context.WithValue(r.Context(), csrfCallKey{}, call))
			protect.ServeHTTP(c.Response(), r)
			return call.err
		}
	}
}

// GetCSRFToken returns the masked CSRF token, or "" without the CSRF middleware.
func GetCSRFToken(c internal.Context) string {
	return internal.ContextValue[string](c, csrfTokenKey{})
}

// GetCSRFField returns the hidden input carrying the token, or "".
func GetCSRFField(c internal.Context) template.HTML {
	return internal.ContextValue[template.HTML](c, csrfFieldKey{})
}
