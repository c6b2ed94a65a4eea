package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"

	"github.com/dmitrymomot/formrelay"
	"github.com/dmitrymomot/formrelay/client"
	"github.com/dmitrymomot/formrelay/config"
	"github.com/dmitrymomot/formrelay/contact"
	"github.com/dmitrymomot/formrelay/handlers"
	"github.com/dmitrymomot/formrelay/locales"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/cookie"
	"github.com/dmitrymomot/formrelay/pkg/i18n"
	"github.com/dmitrymomot/formrelay/pkg/jwt"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/formrelay/pkg/mailer/smtp"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
	"github.com/dmitrymomot/formrelay/pkg/redis"
	"github.com/dmitrymomot/formrelay/views"
)

// server collects what the enabled components add to the app and its runtime.
type server struct {
	cfg      *config.Config
	checks   []formrelay.HealthOption
	shutdown []formrelay.RunOption
}

// newApp wires the enabled components from cfg. The returned run options
// release what the components opened.
func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*formrelay.App, []formrelay.RunOption, error) {
	s := &server{cfg: cfg}

	svc, err := i18n.New(
		i18n.WithDefaultLanguage(cfg.Form.DefaultLanguage),
		i18n.WithYAMLDir(locales.FS),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load translations: %w", err)
	}

	opts := []formrelay.Option{
		formrelay.WithCustomLogger(log),
		formrelay.WithCookieOptions(
			cookie.WithSecret(cfg.Form.CookieSecret),
			cookie.WithSecure(cfg.Form.SecureCookies),
		),
		formrelay.WithHTTPMiddleware(middleware.RealIP, middleware.CleanPath),
		formrelay.WithMiddleware(
			middlewares.RequestID(),
			handlers.Localize(svc, locales.Namespace),
			middlewares.Recover(),
		),
		formrelay.WithErrorHandler(handlers.ErrorHandler),
		formrelay.WithNotFoundHandler(handlers.NotFound),
		formrelay.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
	}

	if cfg.App.ServeRelay {
		relay, err := s.relay(ctx)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, formrelay.WithHandlers(relay))
	}

	if cfg.App.ServeForm {
		form, err := s.form()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts,
			formrelay.WithHandlers(form),
			formrelay.WithStaticFiles("/static/", views.Static, "static"),
		)
	}

	opts = append(opts, formrelay.WithHealthChecks(s.checks...))
	return formrelay.New(opts...), s.shutdown, nil
}

// relay builds the relay handler with its sender and optional limiter.
func (s *server) relay(ctx context.Context) (*handlers.RelayHandler, error) {
	cfg := s.cfg

	var sender mailer.Sender
	switch cfg.Mail.Provider {
	case config.ProviderResend:
		rs, err := resend.New(cfg.Mail.Resend)
		if err != nil {
			return nil, err
		}
		sender = rs
	default:
		ss := smtp.New(cfg.Mail.SMTP)
		sender = ss
		if cfg.Mail.SMTP.Host != "" {
			s.checks = append(s.checks, formrelay.WithReadinessCheck("smtp", ss.Ping))
		}
	}

	composer := contact.NewComposer(sender, contact.ComposerConfig{
		To:     cfg.Mail.To,
		From:   cfg.Mail.From(),
		Mailer: cfg.Mail.Mailer,
	})

	opts := []handlers.RelayOption{
		handlers.WithRelayAllowOrigins(cfg.Relay.AllowOrigins...),
	}
	if cfg.Relay.JWT.Secret != "" {
		svc, err := jwt.New(cfg.Relay.JWT)
		if err != nil {
			return nil, err
		}
		opts = append(opts, handlers.WithRelayJWT(svc))
	}
	if cfg.Relay.RateLimit.Enabled() {
		l, err := s.limiter(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, handlers.WithRelayRateLimit(l))
	}

	return handlers.NewRelayHandler(composer, cfg.Mail.Requirements(), opts...), nil
}

// limiter counts in Redis when it is configured, in memory otherwise.
func (s *server) limiter(ctx context.Context) (*ratelimit.Limiter, error) {
	if !s.cfg.Redis.Enabled() {
		l := ratelimit.New(ratelimit.NewMemory(), s.cfg.Relay.RateLimit)
		s.shutdown = append(s.shutdown, formrelay.ShutdownHook(func(context.Context) error { return l.Close() }))
		return l, nil
	}

	client, err := redis.Open(ctx, s.cfg.Redis)
	if err != nil {
		return nil, err
	}
	s.checks = append(s.checks, formrelay.WithReadinessCheck("redis", redis.Healthcheck(client)))
	s.shutdown = append(s.shutdown, formrelay.ShutdownHook(redis.Shutdown(client)))
	return ratelimit.New(ratelimit.NewRedis(client, "formrelay:relay"), s.cfg.Relay.RateLimit), nil
}

// form builds the Form UI and its relay client.
func (s *server) form() (*handlers.FormHandler, error) {
	cfg := s.cfg
	token, err := relayToken(cfg)
	if err != nil {
		return nil, err
	}

	rc, err := client.New(cfg.Form.Client, client.WithToken(token))
	if err != nil {
		return nil, err
	}

	terms, err := handlers.LoadTerms(locales.FS)
	if err != nil {
		return nil, fmt.Errorf("load terms: %w", err)
	}

	opts := []handlers.FormOption{handlers.WithTerms(terms)}
	if cfg.Form.CSRFKey != "" {
		opts = append(opts, handlers.WithCSRF([]byte(cfg.Form.CSRFKey), csrf.Secure(cfg.Form.SecureCookies)))
	}
	if cfg.Form.CookieSecret != "" {
		opts = append(opts, handlers.WithPostRedirectGet())
	}

	return handlers.NewFormHandler(rc, opts...), nil
}

// relayToken returns FORM_RELAY_TOKEN, or a non-expiring token signed
// with the relay secret when only the secret is configured.
func relayToken(cfg *config.Config) (string, error) {
	if cfg.Form.Client.Token != "" || cfg.Relay.JWT.Secret == "" {
		return cfg.Form.Client.Token, nil
	}

	svc, err := jwt.New(cfg.Relay.JWT)
	if err != nil {
		return "", err
	}
	token, err := svc.Generate(jwt.Claims{Role: "anon"}, 0)
	if err != nil {
		return "", fmt.Errorf("mint relay token: %w", err)
	}
	return token, nil
}
