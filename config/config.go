// Package config loads the formrelay configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/formrelay/client"
	"github.com/dmitrymomot/formrelay/contact"
	"github.com/dmitrymomot/formrelay/pkg/jwt"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/formrelay/pkg/mailer/smtp"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
	"github.com/dmitrymomot/formrelay/pkg/redis"
)

// Mail providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

var (
	ErrUnknownProvider = errors.New("config: unknown mail provider")
	ErrNothingToServe  = errors.New("config: both relay and form are disabled")
	ErrBadCSRFKey      = errors.New("config: FORM_CSRF_KEY must be 32 bytes")
	ErrBadCookieSecret = errors.New("config: FORM_COOKIE_SECRET must be at least 32 bytes")
	ErrBadRateWindow   = errors.New("config: RELAY_RATE_WINDOW must be positive")
)

// Config is the whole application configuration.
type Config struct {
	Log    logger.Config
	Sentry logger.SentryConfig
	App    AppConfig
	Mail   MailConfig
	Relay  RelayConfig
	Form   FormConfig
	Redis  redis.Config
}

// AppConfig controls the server.
type AppConfig struct {
	Address         string        `env:"APP_ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	ServeRelay      bool          `env:"APP_SERVE_RELAY" envDefault:"true"`
	ServeForm       bool          `env:"APP_SERVE_FORM" envDefault:"true"`
}

// MailConfig selects and configures the sender.
// Provider settings are not required here; the relay reports what is missing.
type MailConfig struct {
	Provider string `env:"MAIL_PROVIDER" envDefault:"smtp"`
	To       string `env:"SMTP_TO"`
	SMTP     smtp.Config
	Resend   resend.Config
	Mailer   mailer.Config
}

// RelayConfig configures the relay endpoint.
// Rate limit counters live in Redis when REDIS_URL is set, in memory otherwise.
type RelayConfig struct {
	JWT          jwt.Config
	RateLimit    ratelimit.Config
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
}

// FormConfig configures the Form UI.
type FormConfig struct {
	Client          client.Config
	CSRFKey         string `env:"FORM_CSRF_KEY"`
	CookieSecret    string `env:"FORM_COOKIE_SECRET"`
	DefaultLanguage string `env:"FORM_DEFAULT_LANGUAGE" envDefault:"ka"`
	SecureCookies   bool   `env:"FORM_SECURE_COOKIES" envDefault:"false"`
}

// Load reads the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads environ instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that make startup impossible.
func (c *Config) Validate() error {
	var errs []error
	if c.Mail.Provider != ProviderSMTP && c.Mail.Provider != ProviderResend {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownProvider, c.Mail.Provider))
	}
	if !c.App.ServeRelay && !c.App.ServeForm {
		errs = append(errs, ErrNothingToServe)
	}
	if c.Form.CSRFKey != "" && len(c.Form.CSRFKey) != 32 {
		errs = append(errs, ErrBadCSRFKey)
	}
	if c.Form.CookieSecret != "" && len(c.Form.CookieSecret) < 32 {
		errs = append(errs, ErrBadCookieSecret)
	}
	if c.Relay.RateLimit.Enabled() && c.Relay.RateLimit.Window <= 0 {
		errs = append(errs, ErrBadRateWindow)
	}
	return errors.Join(errs...)
}

// Requirements are the variables the selected provider needs at send time.
func (m MailConfig) Requirements() []contact.Requirement {
	if m.Provider == ProviderResend {
		return contact.ResendRequirements(m.Resend, m.To)
	}
	return contact.SMTPRequirements(m.SMTP, m.To)
}

// From is the sender address of the selected provider.
func (m MailConfig) From() string {
	if m.Provider == ProviderResend {
		return ""
	}
	return m.SMTP.From
}
