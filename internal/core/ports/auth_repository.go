package ports

import (
	"context"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

// AuthRepository defines persistence for management-user authentication.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.ManagementUser) (*domain.ManagementUser, error)
	FindByUsername(ctx context.Context, username string) (*domain.ManagementUser, error)
}
