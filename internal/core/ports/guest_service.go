package ports

import (
	"context"
	"time"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

// CreateGuestInput carries all data needed to provision a guest.
type CreateGuestInput struct {
	Name       string
	Surname    string
	Email      string
	ValidFrom  time.Time
	ValidUntil time.Time
	Department int
}

// CreateGuestResult reports the committed guest together with the outcome
// of the post-commit credential delivery. EmailDelivered is auxiliary
// data: a false value never means the guest was not provisioned.
type CreateGuestResult struct {
	Guest          *domain.Guest
	EmailDelivered bool
	EmailError     string
}

// UpdateGuestInput is a partial update; nil fields are left untouched.
// Validity extension and block-state change may be combined and commit as
// one unit.
type UpdateGuestInput struct {
	ValidUntil *time.Time
	Blocked    *bool
}

// GuestService defines the provisioning engine's use-case operations.
type GuestService interface {
	Create(ctx context.Context, claims domain.Claims, input CreateGuestInput) (*CreateGuestResult, error)
	List(ctx context.Context, claims domain.Claims) ([]domain.Guest, error)
	Update(ctx context.Context, claims domain.Claims, id uint, input UpdateGuestInput) (*domain.Guest, error)
	Delete(ctx context.Context, claims domain.Claims, id uint) error
	// ResendCredentials re-delivers the stored cleartext secret to the
	// guest's email and clears any recorded delivery failure.
	ResendCredentials(ctx context.Context, claims domain.Claims, id uint) error
}
