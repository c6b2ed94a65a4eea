package middlewares

import (
	"github.com/crewjam/csp"

	"github.com/dmitrymomot/formrelay/internal"
)

// DefaultCSP allows same-origin resources only, plus the htmx script host.
var DefaultCSP = csp.Header{
	DefaultSrc:     []string{"'self'"},
	ScriptSrc:      []string{"'self'", "https://unpkg.com"},
	StyleSrc:       []string{"'self'"},
	ImgSrc:         []string{"'self'", "data:"},
	ConnectSrc:     []string{"'self'"},
	FormAction:     []string{"'self'"},
	FrameAncestors: []string{"'none'"},
}

// CSP returns middleware that sets the Content-Security-Policy header.
// The header value is rendered once.
func CSP(policy csp.Header) internal.Middleware {
	value := policy.String()

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.SetHeader("Content-Security-Policy", value)
			return next(c)
		}
	}
}
