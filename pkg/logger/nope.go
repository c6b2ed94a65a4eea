package logger

import "log/slog"

// NewNope creates a no-op logger that discards all output.
// Components constructed without a logger fall back to it.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
