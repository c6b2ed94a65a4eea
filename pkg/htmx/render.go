package htmx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Renderable is the interface for OOB components.
// Compatible with templ.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config holds HTMX render configuration.
type Config struct {
	OOBComponents []Renderable
	TriggerDetail map[string]any
	Retarget      string
	Reswap        SwapStrategy
	Triggers      []string
	Refresh       bool
}

// RenderOption configures HTMX render behavior.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders sets HTMX headers on the response. Call before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}

	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if v := c.triggerHeader(); v != "" {
		h.Set(HeaderHXTrigger, v)
	}
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// triggerHeader returns a comma list of events, or the JSON object form
// when any event carries a detail payload.
func (c *Config) triggerHeader() string {
	if len(c.TriggerDetail) == 0 {
		return strings.Join(c.Triggers, ", ")
	}

	events := make(map[string]any, len(c.Triggers)+len(c.TriggerDetail))
	for _, name := range c.Triggers {
		events[name] = nil
	}
	for name, detail := range c.TriggerDetail {
		events[name] = detail
	}
	data, err := json.Marshal(events)
	if err != nil {
		return strings.Join(c.Triggers, ", ")
	}
	return string(data)
}

// WithOOB appends out-of-band components to render after the main component.
// Components must carry id and hx-swap-oob attributes.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

// WithRetarget sets the HX-Retarget header.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) { c.Retarget = selector }
}

// WithReswap sets the HX-Reswap header.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) { c.Reswap = strategy }
}

// WithTrigger triggers client-side events after the response is received.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) { c.Triggers = append(c.Triggers, events...) }
}

// WithTriggerDetail triggers event with a JSON detail payload.
func WithTriggerDetail(event string, detail any) RenderOption {
	return func(c *Config) {
		if c.TriggerDetail == nil {
			c.TriggerDetail = map[string]any{}
		}
		c.TriggerDetail[event] = detail
	}
}

// WithRefresh forces a full page refresh.
func WithRefresh() RenderOption {
	return func(c *Config) { c.Refresh = true }
}
