package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/internal/core/ports"
)

// GuestService is the provisioning engine. Every mutation spans the
// administrative guest table and the RADIUS tables inside one transaction;
// credential delivery happens strictly after commit and never reverses it.
type GuestService struct {
	store        ports.GuestStore
	mailer       ports.Mailer
	ledger       ports.DeliveryLedger
	blockedGroup string
	logger       zerolog.Logger
}

func NewGuestService(store ports.GuestStore, mailer ports.Mailer, ledger ports.DeliveryLedger, blockedGroup string, logger zerolog.Logger) *GuestService {
	return &GuestService{
		store:        store,
		mailer:       mailer,
		ledger:       ledger,
		blockedGroup: blockedGroup,
		logger:       logger,
	}
}

// Create provisions a guest across both stores. Inside one transaction it
// rejects duplicate emails (checked against the guest table and radcheck),
// inserts the guest row, the Cleartext-Password row and the Expiration row.
// After commit it attempts credential delivery; a delivery failure is
// reported in the result, recorded in the ledger, and leaves the
// provisioned guest fully usable.
func (s *GuestService) Create(ctx context.Context, claims domain.Claims, input ports.CreateGuestInput) (*ports.CreateGuestResult, error) {
	if !claims.CanManage(input.Department) {
		s.logger.Warn().
			Uint("user_id", claims.UserID).
			Int("department", input.Department).
			Msg("guest create refused for unmanaged department")
		return nil, domain.ErrForbidden
	}
	if !domain.ValidWindow(input.ValidFrom, input.ValidUntil) {
		return nil, domain.ErrValidityWindow
	}

	password, err := domain.GeneratePassword()
	if err != nil {
		return nil, err
	}

	guest := &domain.Guest{
		Name:              input.Name,
		Surname:           input.Surname,
		Email:             input.Email,
		ValidFrom:         input.ValidFrom.UTC(),
		ValidUntil:        input.ValidUntil.UTC(),
		Department:        input.Department,
		Blocked:           false,
		CreatedByID:       claims.UserID,
		CreatedByUsername: claims.Username,
	}

	err = s.store.WithinTx(ctx, func(tx ports.GuestTx) error {
		if _, err := tx.GuestByEmail(ctx, input.Email); err == nil {
			return domain.ErrGuestExists
		} else if !errors.Is(err, domain.ErrGuestNotFound) {
			return err
		}
		exists, err := tx.CredentialExists(ctx, input.Email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrGuestExists
		}

		if err := tx.CreateGuest(ctx, guest); err != nil {
			return err
		}
		if err := tx.SetCheckAttribute(ctx, guest.Email, domain.AttrCleartextPassword, password); err != nil {
			return err
		}
		if value := domain.FormatExpiration(guest.ValidUntil); value != "" {
			if err := tx.SetCheckAttribute(ctx, guest.Email, domain.AttrExpiration, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("email", guest.Email).
		Int("department", guest.Department).
		Uint("created_by", claims.UserID).
		Msg("guest provisioned")

	result := &ports.CreateGuestResult{Guest: guest, EmailDelivered: true}
	if err := s.deliver(ctx, guest, password); err != nil {
		result.EmailDelivered = false
		result.EmailError = err.Error()
	}
	return result, nil
}

func (s *GuestService) deliver(ctx context.Context, guest *domain.Guest, password string) error {
	err := s.mailer.SendCredentials(ctx, ports.CredentialMail{
		To:         guest.Email,
		Name:       guest.Name,
		Username:   guest.Email,
		Password:   password,
		ValidFrom:  guest.ValidFrom,
		ValidUntil: guest.ValidUntil,
	})
	if err == nil {
		return nil
	}
	s.logger.Error().Err(err).Str("email", guest.Email).Msg("credential delivery failed")
	if lerr := s.ledger.MarkFailed(ctx, guest.ID, err.Error()); lerr != nil {
		s.logger.Error().Err(lerr).Uint("guest_id", guest.ID).Msg("delivery ledger write failed")
	}
	return err
}

// List returns all guests for admins and department-scoped guests for
// everyone else. A non-admin with no departments gets an empty list, not
// an error.
func (s *GuestService) List(ctx context.Context, claims domain.Claims) ([]domain.Guest, error) {
	if claims.Role == domain.RoleAdmin {
		return s.store.ListGuests(ctx, nil)
	}
	if len(claims.Departments) == 0 {
		return []domain.Guest{}, nil
	}
	return s.store.ListGuests(ctx, claims.Departments)
}

// Update applies a partial change: extend validity and/or flip the blocked
// state. Both sub-changes commit or roll back as one unit. Writes that
// would not change anything are skipped.
func (s *GuestService) Update(ctx context.Context, claims domain.Claims, id uint, input ports.UpdateGuestInput) (*domain.Guest, error) {
	if input.ValidUntil == nil && input.Blocked == nil {
		return nil, domain.ErrEmptyUpdate
	}

	var updated *domain.Guest
	err := s.store.WithinTx(ctx, func(tx ports.GuestTx) error {
		guest, err := tx.GuestByID(ctx, id)
		if err != nil {
			return err
		}
		if !claims.CanManage(guest.Department) {
			return domain.ErrForbidden
		}

		changed := false

		if input.ValidUntil != nil && !input.ValidUntil.UTC().Equal(guest.ValidUntil) {
			until := input.ValidUntil.UTC()
			if !domain.ValidWindow(guest.ValidFrom, until) {
				return domain.ErrValidityWindow
			}
			guest.ValidUntil = until
			changed = true

			if value := domain.FormatExpiration(until); value != "" {
				if err := tx.SetCheckAttribute(ctx, guest.Email, domain.AttrExpiration, value); err != nil {
					return err
				}
			} else {
				// A guest with no expiration has no Expiration row.
				if err := tx.DeleteCheckAttribute(ctx, guest.Email, domain.AttrExpiration); err != nil {
					return err
				}
			}
		}

		if input.Blocked != nil && *input.Blocked != guest.Blocked {
			guest.Blocked = *input.Blocked
			changed = true
			if guest.Blocked {
				if err := tx.EnsureGroupMembership(ctx, guest.Email, s.blockedGroup); err != nil {
					return err
				}
			} else {
				if err := tx.RemoveGroupMembership(ctx, guest.Email, s.blockedGroup); err != nil {
					return err
				}
			}
		}

		if changed {
			if err := tx.SaveGuest(ctx, guest); err != nil {
				return err
			}
		}
		updated = guest
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", updated.Email).Uint("guest_id", id).Msg("guest updated")
	return updated, nil
}

// Delete removes the guest and cascades over every radcheck and
// radusergroup row keyed by its email. No orphaned RADIUS rows survive the
// commit.
func (s *GuestService) Delete(ctx context.Context, claims domain.Claims, id uint) error {
	var email string
	err := s.store.WithinTx(ctx, func(tx ports.GuestTx) error {
		guest, err := tx.GuestByID(ctx, id)
		if err != nil {
			return err
		}
		if !claims.CanManage(guest.Department) {
			return domain.ErrForbidden
		}
		email = guest.Email

		if err := tx.DeleteGuest(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteAllCheckAttributes(ctx, guest.Email); err != nil {
			return err
		}
		return tx.RemoveAllGroupMemberships(ctx, guest.Email)
	})
	if err != nil {
		return err
	}

	if lerr := s.ledger.Clear(ctx, id); lerr != nil {
		s.logger.Error().Err(lerr).Uint("guest_id", id).Msg("delivery ledger clear failed")
	}
	s.logger.Info().Str("email", email).Uint("guest_id", id).Msg("guest deleted")
	return nil
}

// ResendCredentials re-sends the stored cleartext secret to a guest whose
// original delivery failed (or whenever an operator asks). The secret is
// read back from radcheck; nothing is regenerated.
func (s *GuestService) ResendCredentials(ctx context.Context, claims domain.Claims, id uint) error {
	guest, err := s.store.GuestByID(ctx, id)
	if err != nil {
		return err
	}
	if !claims.CanManage(guest.Department) {
		return domain.ErrForbidden
	}

	password, err := s.store.CheckAttribute(ctx, guest.Email, domain.AttrCleartextPassword)
	if err != nil {
		return err
	}

	err = s.mailer.SendCredentials(ctx, ports.CredentialMail{
		To:         guest.Email,
		Name:       guest.Name,
		Username:   guest.Email,
		Password:   password,
		ValidFrom:  guest.ValidFrom,
		ValidUntil: guest.ValidUntil,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", guest.Email).Msg("credential resend failed")
		return domain.ErrDeliveryFailed
	}

	if lerr := s.ledger.Clear(ctx, guest.ID); lerr != nil {
		s.logger.Error().Err(lerr).Uint("guest_id", guest.ID).Msg("delivery ledger clear failed")
	}
	s.logger.Info().Str("email", guest.Email).Msg("credentials re-sent")
	return nil
}
