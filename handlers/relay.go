package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/formrelay/client"
	"github.com/dmitrymomot/formrelay/contact"
	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/jwt"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
)

// RelayPath is the submission endpoint.
const RelayPath = client.Path

// Relay response texts.
const (
	MessageSent       = "Email sent successfully"
	ErrorFailedToSend = "Failed to send email"
)

// RelayAllowHeaders are the request headers browsers may send to the relay.
var RelayAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// EmailSender sends one email for a submission.
// *contact.Composer implements it.
type EmailSender interface {
	Send(ctx context.Context, p contact.Payload) error
}

// RelayHandler is the stateless mail relay.
type RelayHandler struct {
	sender       EmailSender
	requirements []contact.Requirement
	jwt          *jwt.Service
	limiter      *ratelimit.Limiter
	origins      []string
}

// RelayOption configures a RelayHandler.
type RelayOption func(*RelayHandler)

// WithRelayJWT requires a bearer JWT signed for svc on POST.
func WithRelayJWT(svc *jwt.Service) RelayOption {
	return func(h *RelayHandler) {
		h.jwt = svc
	}
}

// WithRelayRateLimit limits POSTs per client address, before the token check.
func WithRelayRateLimit(l *ratelimit.Limiter) RelayOption {
	return func(h *RelayHandler) {
		h.limiter = l
	}
}

// WithRelayAllowOrigins restricts CORS origins. Default is "*".
func WithRelayAllowOrigins(origins ...string) RelayOption {
	return func(h *RelayHandler) {
		if len(origins) > 0 {
			h.origins = origins
		}
	}
}

// NewRelayHandler creates the relay. requirements are checked on every
// request so missing configuration is reported to the caller.
func NewRelayHandler(sender EmailSender, requirements []contact.Requirement, opts ...RelayOption) *RelayHandler {
	h := &RelayHandler{
		sender:       sender,
		requirements: requirements,
		origins:      []string{"*"},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *RelayHandler) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.CORS(
			middlewares.WithAllowOrigins(h.origins...),
			middlewares.WithAllowMethods(http.MethodPost, http.MethodOptions),
			middlewares.WithAllowHeaders(RelayAllowHeaders...),
			middlewares.WithPreflightResponse(http.StatusOK, "ok"),
			middlewares.WithAlwaysSend(),
		))

		r.OPTIONS(RelayPath, h.preflight)

		var mw []internal.Middleware
		if h.limiter != nil {
			mw = append(mw, middlewares.RateLimit(h.limiter))
		}
		if h.jwt != nil {
			mw = append(mw, middlewares.JWT(h.jwt))
		}
		r.POST(RelayPath, h.send, mw...)
	})
}

// preflight answers OPTIONS for origins CORS did not handle.
func (h *RelayHandler) preflight(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *RelayHandler) send(c internal.Context) error {
	var p contact.Payload
	if _, err := c.BindJSON(&p); err != nil {
		c.LogError("failed to send email", "error", err)
		return h.fail(c, err.Error())
	}

	if err := contact.CheckRequirements(h.requirements...); err != nil {
		var missing *contact.MissingConfigError
		if errors.As(err, &missing) {
			c.LogError("failed to send email", "error", err, "missing", missing.Names)
		}
		return h.fail(c, err.Error())
	}

	c.LogInfo("sending email")
	if err := h.sender.Send(c, p); err != nil {
		c.LogError("failed to send email", "error", err)
		return h.fail(c, mailer.Cause(err).Error())
	}
	c.LogInfo("email sent")

	return c.JSON(http.StatusOK, client.Response{Message: MessageSent})
}

func (h *RelayHandler) fail(c internal.Context, details string) error {
	return c.JSON(http.StatusInternalServerError, client.Response{
		Error:   ErrorFailedToSend,
		Details: details,
	})
}
