// Package logger builds the structured slog loggers used across the relay and the form UI.
//
// Every logger is wrapped in a LogHandlerDecorator so request-scoped values, such as the
// request ID placed in context by the RequestID middleware, are attached to each record:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "email sent")
//	// {"level":"INFO","msg":"email sent","request_id":"..."}
//
// NewWithSentry additionally forwards warnings and errors to Sentry when SENTRY_DSN is set.
// Without a DSN it behaves exactly like New, so the same wiring works locally and in production.
//
// Configuration is read from LOG_LEVEL (debug, info, warn, error) and LOG_FORMAT (json, text).
// NewNope returns a logger that discards everything; it is the default for components
// constructed without one.
package logger
