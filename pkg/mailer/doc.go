// Package mailer renders markdown email templates and hands the result to a
// pluggable Sender.
//
// Sending and rendering are separate concerns. Providers implement Sender
// (see the smtp and resend subpackages); Renderer turns markdown templates
// with YAML frontmatter into text and, optionally, HTML wrapped in a layout;
// Mailer ties the two together.
//
// # Usage
//
//	sender := smtp.New(smtp.Config{
//		Host:     "smtp.example.com",
//		Port:     465,
//		User:     "relay@example.com",
//		Password: os.Getenv("SMTP_PASSWORD"),
//		From:     "relay@example.com",
//		SSL:      true,
//	})
//
//	m := mailer.New(sender, mailer.NewRenderer(emails.FS), mailer.Config{
//		FallbackSubject: "Notification",
//		TextOnly:        true,
//	})
//
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "inbox@example.com",
//		ReplyTo:  "visitor@example.com",
//		Template: "submission.md",
//		Data:     submission,
//	})
//
// # Templates
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	Subject: New Contact Form Submission
//	---
//	Name: {{.Name}}
//	Email: {{.Email}}
//
// Both the body and the Subject value are Go text templates. Missing keys
// render as empty strings.
//
// Subject resolution order is SendParams.Subject, then the template's
// Subject metadata, then Config.FallbackSubject.
//
// # Text only
//
// With Config.TextOnly the processed markdown is sent as the text/plain body
// and no layout is loaded. Otherwise the markdown is converted to HTML with
// goldmark and wrapped in Config.DefaultLayout (or SendParams.Layout), and
// the processed markdown is kept as the plain text alternative.
//
// # Errors
//
// Send wraps failures with ErrRenderFailed or ErrSendFailed using errors.Join.
// Cause recovers the underlying provider error for reporting.
package mailer
