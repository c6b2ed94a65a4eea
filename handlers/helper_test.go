package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/contact"
	"github.com/dmitrymomot/formrelay/handlers"
	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/locales"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/i18n"
)

func newApp(t *testing.T, h ...internal.Handler) *internal.App {
	t.Helper()
	return newAppWith(t, nil, h...)
}

func newAppWith(t *testing.T, extra []internal.Option, h ...internal.Handler) *internal.App {
	t.Helper()

	svc, err := i18n.New(
		i18n.WithDefaultLanguage(locales.DefaultLanguage),
		i18n.WithLanguages("ka", "en"),
		i18n.WithYAMLDir(locales.FS),
	)
	require.NoError(t, err)

	opts := []internal.Option{
		internal.WithMiddleware(
			middlewares.RequestID(),
			handlers.Localize(svc, locales.Namespace),
			middlewares.Recover(middlewares.WithRecoverDisablePrintStack()),
		),
		internal.WithHandlers(h...),
		internal.WithErrorHandler(handlers.ErrorHandler),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
	}
	return internal.New(append(opts, extra...)...)
}

func do(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

// recordingSender records payloads and returns err.
type recordingSender struct {
	mu    sync.Mutex
	sent  []contact.Payload
	err   error
	panic bool
}

func (s *recordingSender) Send(_ context.Context, p contact.Payload) error {
	if s.panic {
		panic("smtp exploded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p)
	return s.err
}

func (s *recordingSender) payloads() []contact.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contact.Payload(nil), s.sent...)
}

func completeRequirements() []contact.Requirement {
	return []contact.Requirement{
		contact.Require("SMTP_USER", "user"),
		contact.Require("SMTP_PASSWORD", "secret"),
		contact.Require("SMTP_HOST", "smtp.example.com"),
		contact.Require("SMTP_FROM", "relay@example.com"),
		contact.Require("SMTP_TO", "inbox@example.com"),
	}
}
