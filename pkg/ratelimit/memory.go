package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	resetAt time.Time
	count   int64
}

// Memory is an in-process Store. Expired windows are dropped by a
// background janitor.
type Memory struct {
	now     func() time.Time
	windows map[string]*window
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// MemoryOption configures Memory.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now             func() time.Time
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired windows are removed.
// Zero disables the janitor. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.cleanupInterval = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) { o.now = now }
}

// NewMemory creates a Memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	o := &memoryOptions{now: time.Now, cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory{
		now:     o.now,
		windows: make(map[string]*window),
		done:    make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor(o.cleanupInterval)
	}
	return m
}

// Hit implements Store.
func (m *Memory) Hit(_ context.Context, key string, d time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, time.Time{}, ErrClosed
	}

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(d)}
		m.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt, nil
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// Close stops the janitor. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	m.windows = nil
	return nil
}

func (m *Memory) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.deleteExpired()
		}
	}
}

func (m *Memory) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, w := range m.windows {
		if !now.Before(w.resetAt) {
			delete(m.windows, k)
		}
	}
}
