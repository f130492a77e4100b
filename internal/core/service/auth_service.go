package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/internal/core/ports"
	"github.com/guestwifi/portal-api/internal/pkg/token"
)

// AuthService implements management-user registration and login.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, username, password, role string, departments []int) (*domain.ManagementUser, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, domain.ErrInvalidRole
	}
	if departments == nil {
		departments = []int{}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.ManagementUser{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Departments:  departments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

// Login verifies credentials and issues a bearer token carrying the user's
// id, username, role and department set. An unknown username and a wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.ManagementUser, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Generate(domain.Claims{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Departments: user.Departments,
	}, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}
