package contact

import (
	"context"
	"embed"
	"net/mail"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

//go:embed templates
var templates embed.FS

// Subject is the subject of every submission email.
const Subject = "New Contact Form Submission"

const submissionTemplate = "submission.md"

// ComposerConfig configures the submission email.
type ComposerConfig struct {
	// To receives every submission.
	To string
	// From overrides the sender's default From when set.
	From string
	// Mailer controls rendering; TextOnly sends a plaintext body.
	Mailer mailer.Config
}

// Composer renders a Payload into one email and sends it.
type Composer struct {
	mailer *mailer.Mailer
	to     string
	from   string
}

// NewComposer creates a Composer sending through sender.
// A zero Mailer config sends text only.
func NewComposer(sender mailer.Sender, cfg ComposerConfig) *Composer {
	if cfg.Mailer == (mailer.Config{}) {
		cfg.Mailer = mailer.Config{FallbackSubject: Subject, DefaultLayout: "base.html", TextOnly: true}
	}

	renderer := mailer.NewRendererWithConfig(templates, mailer.RendererConfig{
		TemplateDir: "templates",
		LayoutDir:   "templates/layouts",
		HardWraps:   true,
	})

	return &Composer{
		mailer: mailer.New(sender, renderer, cfg.Mailer),
		to:     cfg.To,
		from:   cfg.From,
	}
}

// Send sends exactly one email for p. Reply-To is the submitter's address
// when it parses as one.
func (c *Composer) Send(ctx context.Context, p Payload) error {
	return c.mailer.Send(ctx, mailer.SendParams{
		To:       c.to,
		From:     c.from,
		ReplyTo:  replyTo(p.Email),
		Subject:  Subject,
		Template: submissionTemplate,
		Data:     p,
		Tags:     mailer.SimpleTags("contact-form"),
	})
}

func replyTo(email string) string {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return ""
	}
	return addr.Address
}
