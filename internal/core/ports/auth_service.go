package ports

import (
	"context"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string, departments []int) (*domain.ManagementUser, error)
	Login(ctx context.Context, username, password string) (string, *domain.ManagementUser, error)
}
