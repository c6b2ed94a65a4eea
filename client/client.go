package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/formrelay/contact"
)

// Path is where the relay accepts submissions.
const Path = "/functions/v1/send-email"

const maxResponseBytes = 1 << 20

// Config holds relay client configuration.
type Config struct {
	BaseURL string        `env:"FORM_RELAY_URL" envDefault:"http://localhost:8080"`
	Token   string        `env:"FORM_RELAY_TOKEN"`
	Timeout time.Duration `env:"FORM_RELAY_TIMEOUT" envDefault:"15s"`
}

// Response is the relay's JSON answer.
type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Client posts payloads to the relay.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Config.Timeout is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithToken overrides the bearer token from Config.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a relay client. BaseURL must be an absolute http(s) URL.
func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be absolute http(s)", ErrInvalidConfig, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimSuffix(u.String(), "/") + Path,
		token:      cfg.Token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type forwardedForKey struct{}

// WithForwardedFor returns a copy of ctx carrying the end user's address.
// Submit sends it as X-Forwarded-For so the relay limits the user, not
// the server calling it.
func WithForwardedFor(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, forwardedForKey{}, addr)
}

// Endpoint returns the full relay URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends p to the relay in one request.
func (c *Client) Submit(ctx context.Context, p contact.Payload) (*Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if addr, _ := ctx.Value(forwardedForKey{}).(string); addr != "" {
		req.Header.Set("X-Forwarded-For", addr)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", ErrDecode, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			Message:    out.Error,
			Details:    out.Details,
		}
	}
	return &out, nil
}
