package contact_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/contact"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

func capture(sent *[]*mailer.Email) mailer.Sender {
	return mailer.SenderFunc(func(_ context.Context, email *mailer.Email) error {
		*sent = append(*sent, email)
		return nil
	})
}

func TestComposer_Send(t *testing.T) {
	t.Parallel()

	t.Run("sends one plaintext email", func(t *testing.T) {
		t.Parallel()

		var sent []*mailer.Email
		c := contact.NewComposer(capture(&sent), contact.ComposerConfig{
			To:   "inbox@example.com",
			From: "relay@example.com",
		})

		err := c.Send(context.Background(), contact.Payload{
			Name:        "Nino",
			Surname:     "Beridze",
			Tel:         "+995555123456",
			Email:       "nino@example.com",
			AcceptTerms: true,
		})
		require.NoError(t, err)
		require.Len(t, sent, 1)

		email := sent[0]
		assert.Equal(t, []string{"inbox@example.com"}, email.To)
		assert.Equal(t, "relay@example.com", email.From)
		assert.Equal(t, "nino@example.com", email.ReplyTo)
		assert.Equal(t, contact.Subject, email.Subject)
		assert.Empty(t, email.HTML)
		assert.Equal(t, "New contact form submission:\n\n"+
			"Name: Nino\n"+
			"Surname: Beridze\n"+
			"Phone: +995555123456\n"+
			"Email: nino@example.com\n"+
			"Accepted Terms: true\n", email.Text)
	})

	t.Run("empty payload still sends", func(t *testing.T) {
		t.Parallel()

		var sent []*mailer.Email
		c := contact.NewComposer(capture(&sent), contact.ComposerConfig{To: "inbox@example.com"})

		require.NoError(t, c.Send(context.Background(), contact.Payload{}))
		require.Len(t, sent, 1)
		assert.Empty(t, sent[0].ReplyTo)
		assert.Contains(t, sent[0].Text, "Accepted Terms: false")
	})

	t.Run("unparseable submitter address is not used as reply-to", func(t *testing.T) {
		t.Parallel()

		var sent []*mailer.Email
		c := contact.NewComposer(capture(&sent), contact.ComposerConfig{To: "inbox@example.com"})

		require.NoError(t, c.Send(context.Background(), contact.Payload{Email: "a@b.c\r\nBcc: x@y.z"}))
		require.Len(t, sent, 1)
		assert.Empty(t, sent[0].ReplyTo)
	})

	t.Run("html layout when not text only", func(t *testing.T) {
		t.Parallel()

		var sent []*mailer.Email
		c := contact.NewComposer(capture(&sent), contact.ComposerConfig{
			To:     "inbox@example.com",
			Mailer: mailer.Config{DefaultLayout: "base.html"},
		})

		require.NoError(t, c.Send(context.Background(), contact.Payload{Name: "Nino"}))
		require.Len(t, sent, 1)
		assert.Contains(t, sent[0].HTML, "<title>New Contact Form Submission</title>")
		assert.Contains(t, sent[0].HTML, "Name: Nino")
		assert.NotEmpty(t, sent[0].Text)
	})

	t.Run("sender failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("connection refused")
		c := contact.NewComposer(mailer.SenderFunc(func(context.Context, *mailer.Email) error {
			return boom
		}), contact.ComposerConfig{To: "inbox@example.com"})

		err := c.Send(context.Background(), contact.Payload{})
		require.Error(t, err)
		assert.ErrorIs(t, err, mailer.ErrSendFailed)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, boom, mailer.Cause(err))
	})
}
