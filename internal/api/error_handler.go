package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPErrorHandler maps domain errors onto HTTP status codes so handlers
// can return sentinel errors directly.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(he.Code)
		}
	case errors.Is(err, domain.ErrGuestNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCredentialNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, domain.ErrGuestExists),
		errors.Is(err, domain.ErrUserExists):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrValidityWindow),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrEmptyUpdate):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domain.ErrDeliveryFailed):
		status = http.StatusBadGateway
		message = err.Error()
	default:
		log := logger.Get()
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, errorResponse{Error: message})
	}
	if werr != nil {
		log := logger.Get()
		log.Error().Err(werr).Msg("failed to write error response")
	}
}
