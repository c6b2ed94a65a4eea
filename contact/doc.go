// Package contact holds the contact form submission and turns it into the
// single notification email sent by the relay.
//
//	composer := contact.NewComposer(sender, contact.ComposerConfig{
//	    To:   cfg.SMTPTo,
//	    From: cfg.SMTP.From,
//	})
//	if err := contact.CheckRequirements(contact.SMTPRequirements(cfg.SMTP, cfg.SMTPTo)...); err != nil {
//	    // *MissingConfigError lists the absent variables
//	}
//	err := composer.Send(ctx, payload)
package contact
