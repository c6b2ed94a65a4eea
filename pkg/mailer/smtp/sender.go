package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/mail.v2"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

// Sender implements mailer.Sender over SMTP.
type Sender struct {
	tlsConfig *tls.Config
	config    Config
}

// Option configures the Sender.
type Option func(*Sender)

// WithTLSConfig sets the TLS configuration used for implicit TLS and STARTTLS.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(s *Sender) { s.tlsConfig = cfg }
}

// New creates a new SMTP sender.
func New(cfg Config, opts ...Option) *Sender {
	s := &Sender{config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements mailer.Sender. It opens one connection per message.
// The dial is bounded by Config.Timeout; a cancelled ctx returns early but
// cannot abort a transaction already in flight.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := s.message(email)
	dialer := s.dialer()

	done := make(chan error, 1)
	go func() { done <- dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ping checks that the SMTP server accepts TCP connections.
func (s *Sender) Ping(ctx context.Context) error {
	d := net.Dialer{Timeout: s.config.Timeout}
	conn, err := d.DialContext(ctx, "tcp", s.addr())
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return conn.Close()
}

func (s *Sender) addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

func (s *Sender) dialer() *mail.Dialer {
	d := mail.NewDialer(s.config.Host, s.config.Port, s.config.User, s.config.Password)
	d.SSL = s.config.SSL
	d.Timeout = s.config.Timeout
	d.LocalName = s.config.LocalName
	d.StartTLSPolicy = startTLSPolicy(s.config.StartTLS)
	if s.tlsConfig != nil {
		d.TLSConfig = s.tlsConfig
	}
	return d
}

func (s *Sender) message(email *mailer.Email) *mail.Message {
	from := email.From
	if from == "" {
		from = s.config.From
	}

	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-ID", messageID(from))
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}
	if len(email.CC) > 0 {
		m.SetHeader("Cc", email.CC...)
	}
	if len(email.BCC) > 0 {
		m.SetHeader("Bcc", email.BCC...)
	}
	for k, v := range email.Headers {
		m.SetHeader(k, v)
	}
	if len(email.Tags) > 0 {
		m.SetHeader("X-Tag", tagHeaders(email.Tags)...)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	case email.HTML != "":
		m.SetBody("text/html", email.HTML)
	default:
		m.SetBody("text/plain", email.Text)
	}

	for _, a := range email.Attachments {
		attach(m, a)
	}
	return m
}

func attach(m *mail.Message, a mailer.Attachment) {
	content := a.Content
	settings := []mail.FileSetting{
		mail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}),
	}
	if a.ContentType != "" {
		settings = append(settings, mail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
	}
	if a.ContentID != "" {
		settings = append(settings, mail.SetHeader(map[string][]string{"Content-ID": {"<" + a.ContentID + ">"}}))
		m.Embed(a.Filename, settings...)
		return
	}
	m.Attach(a.Filename, settings...)
}

func startTLSPolicy(s string) mail.StartTLSPolicy {
	switch strings.ToLower(s) {
	case "mandatory":
		return mail.MandatoryStartTLS
	case "none", "off", "false":
		return mail.NoStartTLS
	default:
		return mail.OpportunisticStartTLS
	}
}

func messageID(from string) string {
	domain := "localhost"
	if i := strings.LastIndexByte(from, '@'); i >= 0 {
		domain = strings.TrimSuffix(from[i+1:], ">")
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}

// tagHeaders renders tags as sorted "name" or "name=value" values of one X-Tag header.
func tagHeaders(tags mailer.Tags) []string {
	out := make([]string, 0, len(tags))
	for name, v := range tags {
		switch val := v.(type) {
		case nil, struct{}:
			out = append(out, name)
		default:
			out = append(out, fmt.Sprintf("%s=%v", name, val))
		}
	}
	slices.Sort(out)
	return out
}
