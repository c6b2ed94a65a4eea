package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/formrelay/internal"
)

// DefaultCORSMaxAge is the default preflight cache duration.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig provides sensible defaults for CORS.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins:    []string{"*"},
	AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
	MaxAge:          DefaultCORSMaxAge,
	PreflightStatus: http.StatusNoContent,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOriginFunc is a dynamic origin validator.
	// When set, it overrides AllowOrigins.
	AllowOriginFunc func(origin string) bool

	// PreflightBody is written as text/plain on preflight responses when non-empty.
	PreflightBody string

	// AllowOrigins is a static list of allowed origins. "*" allows all.
	AllowOrigins []string

	// AllowMethods specifies the allowed HTTP methods.
	AllowMethods []string

	// AllowHeaders specifies the allowed request headers.
	AllowHeaders []string

	// ExposeHeaders specifies headers exposed to the client.
	ExposeHeaders []string

	// MaxAge specifies how long preflight responses can be cached.
	MaxAge time.Duration

	// PreflightStatus is the status code of preflight responses.
	PreflightStatus int

	// AllowCredentials echoes the request origin instead of "*" and sets
	// Access-Control-Allow-Credentials.
	AllowCredentials bool

	// AlwaysSend emits headers even when the request has no Origin header.
	// Only meaningful with a wildcard origin.
	AlwaysSend bool
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins sets the allowed origins.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = origins
	}
}

// WithAllowOriginFunc sets a dynamic origin validator.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOriginFunc = fn
	}
}

// WithAllowMethods sets the allowed HTTP methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the headers exposed to the client.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithAllowCredentials enables credentials support.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowCredentials = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(duration time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = duration
	}
}

// WithPreflightResponse sets the status and plain-text body of preflight responses.
//
//	middlewares.WithPreflightResponse(http.StatusOK, "ok")
func WithPreflightResponse(status int, body string) CORSOption {
	return func(cfg *CORSConfig) {
		if status > 0 {
			cfg.PreflightStatus = status
		}
		cfg.PreflightBody = body
	}
}

// WithAlwaysSend emits CORS headers on every response, with or without Origin.
func WithAlwaysSend() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AlwaysSend = true
	}
}

// CORS returns middleware that handles Cross-Origin Resource Sharing.
// Preflight (OPTIONS) requests are answered directly; other requests get
// the CORS headers and continue.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := DefaultCORSConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))
	hasWildcard := slices.Contains(cfg.AllowOrigins, "*")

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")

			var allowOrigin string
			switch {
			case origin == "" && cfg.AlwaysSend && hasWildcard:
				allowOrigin = "*"
			case origin == "":
				return next(c)
			case !isOriginAllowed(origin, &cfg, hasWildcard):
				// Browser blocks the response.
				return next(c)
			case cfg.AllowCredentials || !hasWildcard:
				allowOrigin = origin
			default:
				allowOrigin = "*"
			}

			headers := c.Response().Header()
			if origin != "" {
				headers.Add("Vary", "Origin")
			}
			headers.Set("Access-Control-Allow-Origin", allowOrigin)
			headers.Set("Access-Control-Allow-Headers", allowHeaders)
			if cfg.AllowCredentials {
				headers.Set("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				headers.Set("Access-Control-Expose-Headers", exposeHeaders)
			}

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}

			headers.Add("Vary", "Access-Control-Request-Method")
			headers.Add("Vary", "Access-Control-Request-Headers")
			headers.Set("Access-Control-Allow-Methods", allowMethods)
			if cfg.MaxAge > 0 {
				headers.Set("Access-Control-Max-Age", maxAge)
			}

			if cfg.PreflightBody != "" {
				return c.String(cfg.PreflightStatus, cfg.PreflightBody)
			}
			return c.NoContent(cfg.PreflightStatus)
		}
	}
}

func isOriginAllowed(origin string, cfg *CORSConfig, hasWildcard bool) bool {
	if cfg.AllowOriginFunc != nil {
		return cfg.AllowOriginFunc(origin)
	}
	if hasWildcard {
		return true
	}
	return slices.Contains(cfg.AllowOrigins, origin)
}
