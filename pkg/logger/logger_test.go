package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/logger"
)

type requestIDKey struct{}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	t.Run("injects context attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Level: "info"},
			logger.FromContextValue(requestIDKey{}, "request_id"),
		)

		ctx := context.WithValue(context.Background(), requestIDKey{}, "req-1")
		log.InfoContext(ctx, "email sent", slog.Int("status", 200))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "email sent", rec["msg"])
		assert.Equal(t, "req-1", rec["request_id"])
		assert.InDelta(t, 200, rec["status"], 0)
	})

	t.Run("skips empty context values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{},
			logger.FromContextValue(requestIDKey{}, "request_id"),
		)
		log.InfoContext(context.Background(), "no id")

		assert.NotContains(t, buf.String(), "request_id")
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Level: "warn"})
		log.Info("hidden")
		log.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Format: "text"})
		log.Info("plain")

		assert.Contains(t, buf.String(), "msg=plain")
	})

	t.Run("nil extractors are ignored", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{}, nil)
		assert.NotPanics(t, func() { log.Info("ok") })
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, logger.ParseLevel(tt.in), tt.in)
	}
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.Config{}, logger.SentryConfig{})
	require.NotNil(t, log)
	require.NoError(t, logger.FlushSentry(0)(context.Background()))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
