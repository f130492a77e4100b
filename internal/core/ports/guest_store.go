package ports

import (
	"context"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

// GuestTx is the unit of work spanning the administrative guest table and
// the RADIUS credential tables. Every method runs inside the transaction
// opened by GuestStore.WithinTx; the engine performs all decision reads
// through it so that check and mutation cannot be separated by a
// concurrent writer.
type GuestTx interface {
	GuestByID(ctx context.Context, id uint) (*domain.Guest, error)
	GuestByEmail(ctx context.Context, email string) (*domain.Guest, error)
	CreateGuest(ctx context.Context, guest *domain.Guest) error
	SaveGuest(ctx context.Context, guest *domain.Guest) error
	DeleteGuest(ctx context.Context, id uint) error

	// CredentialExists reports whether any radcheck row exists for the
	// username, closing the duplicate-email race against the RADIUS side.
	CredentialExists(ctx context.Context, username string) (bool, error)
	// SetCheckAttribute upserts a single (username, attribute) radcheck row.
	SetCheckAttribute(ctx context.Context, username, attribute, value string) error
	DeleteCheckAttribute(ctx context.Context, username, attribute string) error
	DeleteAllCheckAttributes(ctx context.Context, username string) error

	// EnsureGroupMembership is create-if-absent; RemoveGroupMembership is
	// delete-if-present. Both are idempotent.
	EnsureGroupMembership(ctx context.Context, username, groupname string) error
	RemoveGroupMembership(ctx context.Context, username, groupname string) error
	RemoveAllGroupMemberships(ctx context.Context, username string) error
}

// GuestStore provides transactional access to both stores plus the
// read-only queries that need no transaction.
type GuestStore interface {
	// WithinTx runs fn inside one database transaction. A non-nil error
	// from fn rolls everything back; no partial cross-store state survives.
	WithinTx(ctx context.Context, fn func(tx GuestTx) error) error

	GuestByID(ctx context.Context, id uint) (*domain.Guest, error)
	// ListGuests returns guests ordered by valid_until descending. A nil
	// departments slice means no filter (admin); an empty non-nil slice
	// matches nothing.
	ListGuests(ctx context.Context, departments []int) ([]domain.Guest, error)
	// CheckAttribute returns the value of one radcheck row, or
	// domain.ErrCredentialNotFound.
	CheckAttribute(ctx context.Context, username, attribute string) (string, error)
}
