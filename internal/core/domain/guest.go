package domain

import (
	"errors"
	"time"
)

var (
	ErrGuestNotFound      = errors.New("guest not found")
	ErrGuestExists        = errors.New("guest email already exists")
	ErrForbidden          = errors.New("department not managed by caller")
	ErrValidityWindow     = errors.New("valid_until must be after valid_from")
	ErrEmptyUpdate        = errors.New("no update data provided")
	ErrCredentialNotFound = errors.New("credential attribute not found")
	ErrDeliveryFailed     = errors.New("credential delivery failed")
)

// Guest is a provisioned network-access identity. Email doubles as the
// RADIUS username and is the only join key between the administrative
// store and the radcheck/radusergroup tables; no database-level constraint
// ties the two sides together. The provisioning engine alone keeps them
// paired, always inside one transaction.
type Guest struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Surname           string    `json:"surname"`
	Email             string    `json:"email"`
	ValidFrom         time.Time `json:"valid_from"`
	ValidUntil        time.Time `json:"valid_until"`
	Department        int       `json:"department"`
	Blocked           bool      `json:"blocked"`
	CreatedByID       uint      `json:"created_by_id"`
	CreatedByUsername string    `json:"created_by_username,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ValidWindow reports whether until is strictly after from.
func ValidWindow(from, until time.Time) bool {
	return until.After(from)
}
