package contact_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/contact"
	"github.com/dmitrymomot/formrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/formrelay/pkg/mailer/smtp"
)

func TestCheckRequirements(t *testing.T) {
	t.Parallel()

	t.Run("all present", func(t *testing.T) {
		t.Parallel()

		cfg := smtp.Config{Host: "smtp.example.com", User: "u", Password: "p", From: "relay@example.com"}
		assert.NoError(t, contact.CheckRequirements(contact.SMTPRequirements(cfg, "inbox@example.com")...))
	})

	t.Run("lists exactly the missing names in order", func(t *testing.T) {
		t.Parallel()

		cfg := smtp.Config{Host: "smtp.example.com", User: "u"}
		err := contact.CheckRequirements(contact.SMTPRequirements(cfg, "")...)
		require.Error(t, err)

		var missing *contact.MissingConfigError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"SMTP_PASSWORD", "SMTP_FROM", "SMTP_TO"}, missing.Names)
		assert.Equal(t, "Missing required environment variables: SMTP_PASSWORD, SMTP_FROM, SMTP_TO", err.Error())
	})

	t.Run("all missing", func(t *testing.T) {
		t.Parallel()

		err := contact.CheckRequirements(contact.SMTPRequirements(smtp.Config{}, "")...)
		require.Error(t, err)
		assert.Equal(t,
			"Missing required environment variables: SMTP_USER, SMTP_PASSWORD, SMTP_HOST, SMTP_FROM, SMTP_TO",
			err.Error())
	})

	t.Run("resend provider", func(t *testing.T) {
		t.Parallel()

		err := contact.CheckRequirements(contact.ResendRequirements(resend.Config{APIKey: "re_123"}, "inbox@example.com")...)
		require.Error(t, err)
		assert.Equal(t, "Missing required environment variables: RESEND_FROM_EMAIL", err.Error())
	})
}

func TestMissing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, contact.Missing())
	assert.Empty(t, contact.Missing(contact.Require("A", "1")))
	assert.Equal(t, []string{"A", "C"}, contact.Missing(
		contact.Require("A", ""),
		contact.Require("B", "x"),
		contact.Require("C", ""),
	))
}
