package ratelimit

import (
	"context"
	"errors"
	"time"
)

var (
	ErrClosed        = errors.New("ratelimit: store closed")
	ErrInvalidWindow = errors.New("ratelimit: window must be positive")
)

// Config holds the limit, parsed with caarlos0/env. A zero Limit disables limiting.
type Config struct {
	Limit  int           `env:"RELAY_RATE_LIMIT" envDefault:"0"`
	Window time.Duration `env:"RELAY_RATE_WINDOW" envDefault:"1m"`
}

// Enabled reports whether a limit is set.
func (c Config) Enabled() bool {
	return c.Limit > 0
}

// Store counts hits per key.
type Store interface {
	// Hit increments key's counter and returns the count in the current
	// window and when that window ends. The first hit opens the window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)

	// Close releases background resources.
	Close() error
}

// Result describes one Allow decision.
type Result struct {
	ResetAt   time.Time
	Limit     int
	Remaining int
	Allowed   bool
}

// Limiter allows at most Config.Limit hits per key per Config.Window.
type Limiter struct {
	store  Store
	config Config
}

// New creates a Limiter over store.
func New(store Store, cfg Config) *Limiter {
	return &Limiter{store: store, config: cfg}
}

// Allow records a hit for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if l.config.Window <= 0 {
		return Result{}, ErrInvalidWindow
	}

	n, reset, err := l.store.Hit(ctx, key, l.config.Window)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   n <= int64(l.config.Limit),
		Limit:     l.config.Limit,
		Remaining: max(l.config.Limit-int(n), 0),
		ResetAt:   reset,
	}, nil
}

// Close closes the store.
func (l *Limiter) Close() error {
	return l.store.Close()
}
