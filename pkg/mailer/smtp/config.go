package smtp

import "time"

// Config holds SMTP connection settings, parsed with caarlos0/env.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	// StartTLS applies when SSL is false: "opportunistic", "mandatory" or "none".
	StartTLS  string        `env:"SMTP_STARTTLS" envDefault:"opportunistic"`
	LocalName string        `env:"SMTP_LOCAL_NAME"`
	Port      int           `env:"SMTP_PORT" envDefault:"465"`
	Timeout   time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	// SSL dials implicit TLS (port 465 style).
	SSL bool `env:"SMTP_SSL" envDefault:"true"`
}
