// Package mail implements the credential notification side-channel over
// SMTP. Delivery is best-effort: callers run it after their transaction
// commits and treat failure as a soft error.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/guestwifi/portal-api/internal/core/ports"
)

const subject = "Your Guest Wi-Fi Credentials"

const validityLayout = "2006-01-02 15:04"

// Config captures the SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// InsecureSkipVerify tolerates self-signed certificates on the
	// gateway.
	InsecureSkipVerify bool
}

// SMTPMailer delivers guest credentials via an SMTP gateway.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer builds the SMTP client. Port 465 switches to implicit TLS;
// other ports use opportunistic STARTTLS.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gomail.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) SendCredentials(ctx context.Context, in ports.CredentialMail) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat("Guest WiFi System", m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(in.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, renderBody(in))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send credentials: %w", err)
	}
	return nil
}

func renderBody(in ports.CredentialMail) string {
	return fmt.Sprintf(
		"Welcome %s,\n\n"+
			"Your credentials for the Guest Wi-Fi are:\n\n"+
			"Username: %s\n"+
			"Password: %s\n\n"+
			"Your access is valid from %s until %s.\n\n"+
			"Regards,\nYour IT Department",
		in.Name,
		in.Username,
		in.Password,
		in.ValidFrom.Format(validityLayout),
		in.ValidUntil.Format(validityLayout),
	)
}
