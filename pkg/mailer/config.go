package mailer

// Config holds mailer configuration.
// Embedded in the app config and parsed with caarlos0/env.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Notification"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	// TextOnly sends the rendered markdown as text/plain and skips the HTML layout.
	TextOnly bool `env:"MAILER_TEXT_ONLY" envDefault:"true"`
}
