package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("invalid role")
)

// ManagementUser is an administrative operator of the portal, distinct from
// the guests it provisions. Password is hashed with bcrypt; guest RADIUS
// secrets never pass through this type.
type ManagementUser struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Departments  []int     `json:"departments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims is the authenticated identity carried by a bearer token.
type Claims struct {
	UserID      uint   `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Departments []int  `json:"departments"`
}

// CanManage reports whether the caller may operate on guests of the given
// department. Admins manage every department; other users only their
// explicit set. Consulted before every mutating operation and before
// filtering list results.
func (c Claims) CanManage(department int) bool {
	if c.Role == RoleAdmin {
		return true
	}
	for _, d := range c.Departments {
		if d == department {
			return true
		}
	}
	return false
}
