package handler

import (
	"time"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

type createGuestRequest struct {
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	ValidFrom  string `json:"valid_from" validate:"required"`
	ValidUntil string `json:"valid_until" validate:"required"`
	Department *int   `json:"department" validate:"required"`
}

type updateGuestRequest struct {
	ValidUntil *string `json:"valid_until"`
	Blocked    *bool   `json:"blocked"`
}

type createGuestResponse struct {
	Guest          *domain.Guest `json:"guest"`
	EmailDelivered bool          `json:"email_delivered"`
	EmailError     string        `json:"email_error,omitempty"`
}

// parseTimestamp accepts RFC 3339 with or without a time component.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
