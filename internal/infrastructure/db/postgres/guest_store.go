package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/internal/core/ports"
)

// GuestStore gives the provisioning engine transactional access to the
// administrative guest table and the RADIUS tables. All mutation methods
// live on guestTx and only exist inside WithinTx.
type GuestStore struct {
	db *gorm.DB
}

func NewGuestStore(db *gorm.DB) *GuestStore {
	return &GuestStore{db: db}
}

// WithinTx runs fn inside one database transaction; a non-nil error rolls
// everything back.
func (s *GuestStore) WithinTx(ctx context.Context, fn func(tx ports.GuestTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&guestTx{db: tx})
	})
}

func (s *GuestStore) GuestByID(ctx context.Context, id uint) (*domain.Guest, error) {
	return guestByID(s.db.WithContext(ctx), id)
}

func (s *GuestStore) CheckAttribute(ctx context.Context, username, attribute string) (string, error) {
	return checkAttribute(s.db.WithContext(ctx), username, attribute)
}

// guestListRow carries a guest joined with its creator's username.
type guestListRow struct {
	ID                uint
	Name              string
	Surname           string
	Email             string
	ValidFrom         time.Time
	ValidUntil        time.Time
	CreatedByUserID   uint
	CreatedByUsername string
	Blocked           bool
	Department        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *GuestStore) ListGuests(ctx context.Context, departments []int) ([]domain.Guest, error) {
	q := s.db.WithContext(ctx).
		Table("mgmt_guests").
		Select("mgmt_guests.*, mgmt_users.username AS created_by_username").
		Joins("LEFT JOIN mgmt_users ON mgmt_users.id = mgmt_guests.created_by_user_id").
		Order("mgmt_guests.valid_until DESC")
	if departments != nil {
		q = q.Where("mgmt_guests.department IN ?", departments)
	}

	var rows []guestListRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	guests := make([]domain.Guest, 0, len(rows))
	for _, row := range rows {
		guests = append(guests, domain.Guest{
			ID:                row.ID,
			Name:              row.Name,
			Surname:           row.Surname,
			Email:             row.Email,
			ValidFrom:         row.ValidFrom,
			ValidUntil:        row.ValidUntil,
			Department:        row.Department,
			Blocked:           row.Blocked,
			CreatedByID:       row.CreatedByUserID,
			CreatedByUsername: row.CreatedByUsername,
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		})
	}
	return guests, nil
}

// guestTx implements ports.GuestTx on an open transaction handle.
type guestTx struct {
	db *gorm.DB
}

func (t *guestTx) GuestByID(_ context.Context, id uint) (*domain.Guest, error) {
	return guestByID(t.db, id)
}

func (t *guestTx) GuestByEmail(_ context.Context, email string) (*domain.Guest, error) {
	var row managedGuest
	err := t.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGuestNotFound
		}
		return nil, fmt.Errorf("find guest: %w", err)
	}
	return toDomainGuest(&row), nil
}

func (t *guestTx) CreateGuest(_ context.Context, guest *domain.Guest) error {
	row := managedGuest{
		Name:            guest.Name,
		Surname:         guest.Surname,
		Email:           guest.Email,
		ValidFrom:       guest.ValidFrom,
		ValidUntil:      guest.ValidUntil,
		CreatedByUserID: guest.CreatedByID,
		Blocked:         guest.Blocked,
		Department:      guest.Department,
	}
	if err := t.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrGuestExists
		}
		return fmt.Errorf("insert guest: %w", err)
	}
	guest.ID = row.ID
	guest.CreatedAt = row.CreatedAt
	guest.UpdatedAt = row.UpdatedAt
	return nil
}

func (t *guestTx) SaveGuest(_ context.Context, guest *domain.Guest) error {
	err := t.db.Model(&managedGuest{}).
		Where("id = ?", guest.ID).
		Updates(map[string]interface{}{
			"valid_until": guest.ValidUntil,
			"blocked":     guest.Blocked,
		}).Error
	if err != nil {
		return fmt.Errorf("update guest: %w", err)
	}
	return nil
}

func (t *guestTx) DeleteGuest(_ context.Context, id uint) error {
	if err := t.db.Delete(&managedGuest{}, id).Error; err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

func (t *guestTx) CredentialExists(_ context.Context, username string) (bool, error) {
	var count int64
	err := t.db.Model(&radCheck{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count radcheck: %w", err)
	}
	return count > 0, nil
}

// SetCheckAttribute updates the (username, attribute) row in place, or
// inserts it when absent.
func (t *guestTx) SetCheckAttribute(_ context.Context, username, attribute, value string) error {
	res := t.db.Model(&radCheck{}).
		Where("username = ? AND attribute = ?", username, attribute).
		Update("value", value)
	if res.Error != nil {
		return fmt.Errorf("update radcheck: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	row := radCheck{
		Username:  username,
		Attribute: attribute,
		Op:        domain.RadiusOp,
		Value:     value,
	}
	if err := t.db.Create(&row).Error; err != nil {
		return fmt.Errorf("insert radcheck: %w", err)
	}
	return nil
}

func (t *guestTx) DeleteCheckAttribute(_ context.Context, username, attribute string) error {
	err := t.db.Where("username = ? AND attribute = ?", username, attribute).
		Delete(&radCheck{}).Error
	if err != nil {
		return fmt.Errorf("delete radcheck: %w", err)
	}
	return nil
}

func (t *guestTx) DeleteAllCheckAttributes(_ context.Context, username string) error {
	if err := t.db.Where("username = ?", username).Delete(&radCheck{}).Error; err != nil {
		return fmt.Errorf("delete radcheck rows: %w", err)
	}
	return nil
}

func (t *guestTx) EnsureGroupMembership(_ context.Context, username, groupname string) error {
	row := radUserGroup{Username: username, Groupname: groupname}
	err := t.db.Where(radUserGroup{Username: username, Groupname: groupname}).
		Attrs(radUserGroup{Priority: domain.BlockedGroupPriority}).
		FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("ensure radusergroup: %w", err)
	}
	return nil
}

func (t *guestTx) RemoveGroupMembership(_ context.Context, username, groupname string) error {
	err := t.db.Where("username = ? AND groupname = ?", username, groupname).
		Delete(&radUserGroup{}).Error
	if err != nil {
		return fmt.Errorf("remove radusergroup: %w", err)
	}
	return nil
}

func (t *guestTx) RemoveAllGroupMemberships(_ context.Context, username string) error {
	if err := t.db.Where("username = ?", username).Delete(&radUserGroup{}).Error; err != nil {
		return fmt.Errorf("remove radusergroup rows: %w", err)
	}
	return nil
}

func guestByID(db *gorm.DB, id uint) (*domain.Guest, error) {
	var row managedGuest
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGuestNotFound
		}
		return nil, fmt.Errorf("find guest: %w", err)
	}
	return toDomainGuest(&row), nil
}

func checkAttribute(db *gorm.DB, username, attribute string) (string, error) {
	var row radCheck
	err := db.Where("username = ? AND attribute = ?", username, attribute).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrCredentialNotFound
		}
		return "", fmt.Errorf("find radcheck: %w", err)
	}
	return row.Value, nil
}

func toDomainGuest(row *managedGuest) *domain.Guest {
	return &domain.Guest{
		ID:          row.ID,
		Name:        row.Name,
		Surname:     row.Surname,
		Email:       row.Email,
		ValidFrom:   row.ValidFrom,
		ValidUntil:  row.ValidUntil,
		Department:  row.Department,
		Blocked:     row.Blocked,
		CreatedByID: row.CreatedByUserID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
