// Package mail delivers transactional email such as password reset notices.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
)

// Backend names accepted in Config.Backend.
const (
	BackendSMTP      = "smtp"
	BackendFirestore = "firestore"
)

// Message is a plain text email.
type Message struct {
	To      string
	Subject string
	Text    string
}

// Validate checks that the message has a single, parseable recipient.
func (m Message) Validate() error {
	if m.To == "" {
		return errors.New("mail recipient is required")
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("invalid mail recipient: %w", err)
	}
	return nil
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config selects and configures the mail backend.
type Config struct {
	Backend         string `env:"BACKEND"           envDefault:"smtp"`
	From            string `env:"FROM"              envDefault:"no-reply@travel-profiles.local"`
	SMTPHost        string `env:"SMTP_HOST"         envDefault:"localhost"`
	SMTPPort        string `env:"SMTP_PORT"         envDefault:"587"`
	SMTPUsername    string `env:"SMTP_USERNAME"`
	SMTPPassword    string `env:"SMTP_PASSWORD,unset"`
	SMTPImplicitTLS bool   `env:"SMTP_IMPLICIT_TLS"`
	Collection      string `env:"COLLECTION"        envDefault:"mail"`
}

// Validate checks backend specific settings.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSMTP:
		if c.SMTPHost == "" || c.SMTPPort == "" {
			return errors.New("smtp host and port are required")
		}
		if _, err := mail.ParseAddress(c.From); err != nil {
			return fmt.Errorf("invalid mail sender: %w", err)
		}
	case BackendFirestore:
		if c.Collection == "" {
			return errors.New("mail collection is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown mail backend %q", c.Backend)
	}
	return nil
}
