package contact

import (
	"strings"

	"github.com/dmitrymomot/formrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/formrelay/pkg/mailer/smtp"
)

// Requirement is a named configuration value the relay needs to send mail.
type Requirement struct {
	Name  string
	Value string
}

// Require pairs an environment variable name with its loaded value.
func Require(name, value string) Requirement {
	return Requirement{Name: name, Value: value}
}

// MissingConfigError lists required variables that are empty, in check order.
type MissingConfigError struct {
	Names []string
}

func (e *MissingConfigError) Error() string {
	return "Missing required environment variables: " + strings.Join(e.Names, ", ")
}

// Missing returns the names of empty requirements in the order given.
func Missing(reqs ...Requirement) []string {
	var names []string
	for _, r := range reqs {
		if r.Value == "" {
			names = append(names, r.Name)
		}
	}
	return names
}

// CheckRequirements returns a *MissingConfigError if any requirement is empty.
func CheckRequirements(reqs ...Requirement) error {
	if names := Missing(reqs...); len(names) > 0 {
		return &MissingConfigError{Names: names}
	}
	return nil
}

// SMTPRequirements are the variables the SMTP provider needs.
func SMTPRequirements(cfg smtp.Config, to string) []Requirement {
	return []Requirement{
		Require("SMTP_USER", cfg.User),
		Require("SMTP_PASSWORD", cfg.Password),
		Require("SMTP_HOST", cfg.Host),
		Require("SMTP_FROM", cfg.From),
		Require("SMTP_TO", to),
	}
}

// ResendRequirements are the variables the Resend provider needs.
func ResendRequirements(cfg resend.Config, to string) []Requirement {
	return []Requirement{
		Require("RESEND_API_KEY", cfg.APIKey),
		Require("RESEND_FROM_EMAIL", cfg.SenderEmail),
		Require("SMTP_TO", to),
	}
}
