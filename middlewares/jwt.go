package middlewares

import (
	"errors"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/pkg/jwt"
)

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	Extractor    internal.Extractor
	extractorSet bool
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTExtractor sets a custom token extractor chain.
func WithJWTExtractor(ext internal.Extractor) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// JWT returns middleware that extracts a bearer JWT, verifies it and stores
// the claims in the context. Failures return a 401 HTTPError whose Detail
// says what was wrong.
func JWT(svc *jwt.Service, opts ...JWTOption) internal.Middleware {
	cfg := &JWTConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(internal.FromBearerToken())
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.Extractor.Extract(c)
			if !ok {
				return internal.ErrUnauthorized("Unauthorized", internal.WithDetail("missing authentication token"))
			}

			claims, err := svc.Parse(token)
			if err != nil {
				detail := "invalid token"
				if errors.Is(err, jwt.ErrExpiredToken) {
					detail = "token expired"
				}
				c.LogWarn("rejected bearer token", "error", err)
				return internal.ErrUnauthorized("Unauthorized", internal.WithDetail(detail), internal.WithError(err))
			}

			c.Set(internal.JWTClaimsKey{}, claims)
			return next(c)
		}
	}
}

// GetJWTClaims returns the verified claims, or nil if the JWT middleware did not run.
func GetJWTClaims(c internal.Context) *jwt.Claims {
	return internal.ContextValue[*jwt.Claims](c, internal.JWTClaimsKey{})
}
