// Package token issues and verifies the HS256 bearer tokens that gate the
// administrative API.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

type tokenClaims struct {
	UserID      uint   `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Departments []int  `json:"departments"`
	jwt.RegisteredClaims
}

// Generate signs a token carrying the caller's identity and department set.
func Generate(claims domain.Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	tc := &tokenClaims{
		UserID:      claims.UserID,
		Username:    claims.Username,
		Role:        claims.Role,
		Departments: claims.Departments,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString([]byte(secret))
}

// Parse verifies signature and expiry and returns the embedded claims.
func Parse(tokenStr, secret string) (domain.Claims, error) {
	tc := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return domain.Claims{}, err
	}
	if !parsed.Valid {
		return domain.Claims{}, jwt.ErrTokenInvalidClaims
	}
	departments := tc.Departments
	if departments == nil {
		departments = []int{}
	}
	return domain.Claims{
		UserID:      tc.UserID,
		Username:    tc.Username,
		Role:        tc.Role,
		Departments: departments,
	}, nil
}
