package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guestwifi/portal-api/internal/core/domain"
)

// claimsKey must match the key the auth middleware stores claims under.
const claimsKey = "claims"

func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := c.Get(claimsKey).(domain.Claims)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return claims, nil
}
