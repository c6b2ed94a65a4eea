package main

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	gosmtp "github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/client"
	"github.com/dmitrymomot/formrelay/config"
	"github.com/dmitrymomot/formrelay/pkg/logger"
)

type inbox struct {
	mu       sync.Mutex
	messages [][]byte
}

func (b *inbox) NewSession(_ *gosmtp.Conn) (gosmtp.Session, error) {
	return &session{inbox: b}, nil
}

func (b *inbox) all() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]byte(nil), b.messages...)
}

type session struct{ inbox *inbox }

func (s *session) Mail(string, *gosmtp.MailOptions) error { return nil }
func (s *session) Rcpt(string, *gosmtp.RcptOptions) error { return nil }
func (s *session) Reset()                                 {}
func (s *session) Logout() error                          { return nil }

func (s *session) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.inbox.mu.Lock()
	s.inbox.messages = append(s.inbox.messages, data)
	s.inbox.mu.Unlock()
	return nil
}

// startSMTP runs an in-process SMTP server and returns its port.
func startSMTP(t *testing.T, be *inbox) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := gosmtp.NewServer(be)
	srv.Domain = "localhost"
	srv.ReadTimeout = 5 * time.Second
	srv.WriteTimeout = 5 * time.Second
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	return l.Addr().(*net.TCPAddr).Port
}

// startApp serves newApp on a real listener; FORM_RELAY_URL points back at it.
func startApp(t *testing.T, environ map[string]string) *httptest.Server {
	t.Helper()

	var app http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	environ["FORM_RELAY_URL"] = srv.URL
	cfg, err := config.LoadFrom(environ)
	require.NoError(t, err)

	a, _, err := newApp(context.Background(), cfg, logger.NewNope())
	require.NoError(t, err)
	app = a
	return srv
}

func smtpEnv(port int) map[string]string {
	return map[string]string{
		"SMTP_HOST":        "127.0.0.1",
		"SMTP_PORT":        strconv.Itoa(port),
		"SMTP_USER":        "relay@example.com",
		"SMTP_PASSWORD":    "secret",
		"SMTP_FROM":        "relay@example.com",
		"SMTP_TO":          "inbox@example.com",
		"SMTP_SSL":         "false",
		"SMTP_STARTTLS":    "none",
		"RELAY_JWT_SECRET": "relay-secret-for-tests",
	}
}

func TestFormSubmissionDeliversEmail(t *testing.T) {
	t.Parallel()

	be := &inbox{}
	srv := startApp(t, smtpEnv(startSMTP(t, be)))

	form := url.Values{
		"name":        {"Nino"},
		"surname":     {"Beridze"},
		"tel":         {"+995 555 12-34-56"},
		"email":       {"nino@example.com"},
		"acceptTerms": {"on"},
		"lang":        {"en"},
	}
	resp, err := http.PostForm(srv.URL+"/", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "You have registered successfully!")

	msgs := be.all()
	require.Len(t, msgs, 1)

	msg, err := mail.ReadMessage(strings.NewReader(string(msgs[0])))
	require.NoError(t, err)
	assert.Equal(t, "New Contact Form Submission", msg.Header.Get("Subject"))
	assert.Equal(t, "inbox@example.com", msg.Header.Get("To"))
	assert.Equal(t, "nino@example.com", msg.Header.Get("Reply-To"))

	text, err := io.ReadAll(msg.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), "Name: Nino")
	assert.Contains(t, string(text), "Surname: Beridze")
	assert.Contains(t, string(text), "Accepted Terms: true")
}

func TestRelayRejectsUnsignedRequests(t *testing.T) {
	t.Parallel()

	be := &inbox{}
	srv := startApp(t, smtpEnv(startSMTP(t, be)))

	resp, err := http.Post(srv.URL+client.Path, "application/json", strings.NewReader(`{"name":"Nino"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, be.all())
}

func TestRelayReportsMissingConfig(t *testing.T) {
	t.Parallel()

	srv := startApp(t, map[string]string{"APP_SERVE_FORM": "false"})

	resp, err := http.Post(srv.URL+client.Path, "application/json", strings.NewReader(`{"name":"Nino"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var got client.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, client.Response{
		Error:   "Failed to send email",
		Details: "Missing required environment variables: SMTP_USER, SMTP_PASSWORD, SMTP_HOST, SMTP_FROM, SMTP_TO",
	}, got)

	form, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer form.Body.Close()
	assert.Equal(t, http.StatusNotFound, form.StatusCode)
}

func TestReadinessChecksSMTP(t *testing.T) {
	t.Parallel()

	srv := startApp(t, smtpEnv(startSMTP(t, &inbox{})))

	resp, err := http.Get(srv.URL + "/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	static, err := http.Get(srv.URL + "/static/style.css")
	require.NoError(t, err)
	defer static.Body.Close()
	assert.Equal(t, http.StatusOK, static.StatusCode)
}

func TestRelayToken(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(map[string]string{"FORM_RELAY_TOKEN": "static"})
	require.NoError(t, err)
	token, err := relayToken(cfg)
	require.NoError(t, err)
	assert.Equal(t, "static", token)

	cfg, err = config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	token, err = relayToken(cfg)
	require.NoError(t, err)
	assert.Empty(t, token)

	cfg, err = config.LoadFrom(map[string]string{"RELAY_JWT_SECRET": "secret"})
	require.NoError(t, err)
	token, err = relayToken(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))
}

func TestRelayRateLimit(t *testing.T) {
	t.Parallel()

	srv := startApp(t, map[string]string{
		"APP_SERVE_FORM":   "false",
		"RELAY_RATE_LIMIT": "1",
	})

	post := func(ip string) int {
		req, err := http.NewRequest(http.MethodPost, srv.URL+client.Path, strings.NewReader(`{}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", ip)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusInternalServerError, post("203.0.113.1"), "counted, then rejected for missing config")
	assert.Equal(t, http.StatusTooManyRequests, post("203.0.113.1"))
	assert.Equal(t, http.StatusInternalServerError, post("203.0.113.2"))
}
