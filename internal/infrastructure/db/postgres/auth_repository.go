package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

// AuthRepository persists management users.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.ManagementUser) (*domain.ManagementUser, error) {
	departments, err := json.Marshal(user.Departments)
	if err != nil {
		return nil, fmt.Errorf("marshal departments: %w", err)
	}

	row := managementUser{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Departments:  datatypes.JSON(departments),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return toDomainUser(&row)
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.ManagementUser, error) {
	var row managementUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(&row)
}

func toDomainUser(row *managementUser) (*domain.ManagementUser, error) {
	departments := []int{}
	if len(row.Departments) > 0 {
		if err := json.Unmarshal(row.Departments, &departments); err != nil {
			return nil, fmt.Errorf("unmarshal departments: %w", err)
		}
	}
	return &domain.ManagementUser{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		Departments:  departments,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
