package ports

import (
	"context"
	"time"
)

// CredentialMail is the rendered credential message handed to the
// notification side-channel after commit.
type CredentialMail struct {
	To         string
	Name       string
	Username   string
	Password   string
	ValidFrom  time.Time
	ValidUntil time.Time
}

// Mailer delivers guest credentials over an external transport. Delivery
// runs strictly after the provisioning transaction commits; its failure is
// reported but never rolls anything back.
type Mailer interface {
	SendCredentials(ctx context.Context, msg CredentialMail) error
}

// DeliveryLedger records guests whose credential delivery failed so that
// operators can follow up. Ledger errors are logged, never surfaced.
type DeliveryLedger interface {
	MarkFailed(ctx context.Context, guestID uint, reason string) error
	Clear(ctx context.Context, guestID uint) error
}
