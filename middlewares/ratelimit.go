package middlewares

import (
	"net"
	"strconv"
	"time"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
)

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	// Key returns the bucket for a request; defaults to the client IP.
	Key func(c internal.Context) string
	// FailClosed rejects requests when the store errors. Default: let them through.
	FailClosed bool
}

// RateLimitOption configures RateLimitConfig.
type RateLimitOption func(*RateLimitConfig)

// WithRateLimitKey sets the function choosing the bucket for a request.
func WithRateLimitKey(fn func(c internal.Context) string) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		if fn != nil {
			cfg.Key = fn
		}
	}
}

// WithRateLimitFailClosed rejects requests when the store is unavailable.
func WithRateLimitFailClosed() RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.FailClosed = true
	}
}

// RateLimit returns middleware that limits requests per key with l.
// It sets X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset;
// rejected requests also get Retry-After and a 429 HTTPError.
// Put chi's RealIP in front of it when running behind a proxy.
func RateLimit(l *ratelimit.Limiter, opts ...RateLimitOption) internal.Middleware {
	cfg := &RateLimitConfig{Key: clientIP}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			res, err := l.Allow(c, cfg.Key(c))
			if err != nil {
				c.LogWarn("rate limit check failed", "error", err)
				if cfg.FailClosed {
					return internal.ErrServiceUnavailable("Service Unavailable", internal.WithError(err))
				}
				return next(c)
			}

			c.SetHeader("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.SetHeader("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			c.SetHeader("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				retry := max(int(time.Until(res.ResetAt).Round(time.Second).Seconds()), 1)
				c.SetHeader("Retry-After", strconv.Itoa(retry))
				return internal.ErrTooManyRequests("Too Many Requests", internal.WithDetail("rate limit exceeded"))
			}
			return next(c)
		}
	}
}

func clientIP(c internal.Context) string {
	addr := c.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
