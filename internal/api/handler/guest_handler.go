package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/guestwifi/portal-api/internal/api/metrics"
	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/internal/core/ports"
)

type GuestHandler struct {
	service ports.GuestService
}

func NewGuestHandler(service ports.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// Create godoc
// @Summary      Provision a guest account
// @Description  Creates the guest record together with its RADIUS credential
// @Description  and expiration attributes in one transaction, then mails the
// @Description  generated password to the guest. A failed mail delivery does
// @Description  not undo the provisioning; it is reported in the response.
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        request body createGuestRequest true "guest data"
// @Success      201 {object} createGuestResponse
// @Failure      400 {object} object
// @Failure      403 {object} object
// @Failure      409 {object} object
// @Security     BearerAuth
// @Router       /guests [post]
func (h *GuestHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createGuestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProvisioningErrorsTotal.WithLabelValues("validation").Inc()
		return err
	}

	validFrom, err := parseTimestamp(req.ValidFrom)
	if err != nil {
		metrics.ProvisioningErrorsTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid valid_from timestamp")
	}
	validUntil, err := parseTimestamp(req.ValidUntil)
	if err != nil {
		metrics.ProvisioningErrorsTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid valid_until timestamp")
	}

	result, err := h.service.Create(c.Request().Context(), claims, ports.CreateGuestInput{
		Name:       req.Name,
		Surname:    req.Surname,
		Email:      req.Email,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
		Department: *req.Department,
	})
	if err != nil {
		metrics.ProvisioningErrorsTotal.WithLabelValues(provisioningReason(err)).Inc()
		return err
	}

	metrics.GuestsProvisionedTotal.WithLabelValues(strconv.Itoa(result.Guest.Department)).Inc()
	if result.EmailDelivered {
		metrics.CredentialDeliveriesTotal.WithLabelValues("sent").Inc()
	} else {
		metrics.CredentialDeliveriesTotal.WithLabelValues("failed").Inc()
	}

	return c.JSON(http.StatusCreated, createGuestResponse{
		Guest:          result.Guest,
		EmailDelivered: result.EmailDelivered,
		EmailError:     result.EmailError,
	})
}

// List godoc
// @Summary      List visible guests
// @Description  Admins see every guest; other users only guests of their
// @Description  managed departments. Sorted by valid_until, newest first.
// @Tags         guests
// @Produce      json
// @Success      200 {array} domain.Guest
// @Failure      401 {object} object
// @Security     BearerAuth
// @Router       /guests [get]
func (h *GuestHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	guests, err := h.service.List(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guests)
}

// Update godoc
// @Summary      Update a guest
// @Description  Extends validity and/or toggles the blocked state. The guest
// @Description  record and its RADIUS rows change in one transaction.
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        id      path int                true "guest id"
// @Param        request body updateGuestRequest true "fields to change"
// @Success      200 {object} domain.Guest
// @Failure      400 {object} object
// @Failure      403 {object} object
// @Failure      404 {object} object
// @Security     BearerAuth
// @Router       /guests/{id} [patch]
func (h *GuestHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := guestID(c)
	if err != nil {
		return err
	}

	var req updateGuestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := ports.UpdateGuestInput{Blocked: req.Blocked}
	if req.ValidUntil != nil {
		t, err := parseTimestamp(*req.ValidUntil)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid valid_until timestamp")
		}
		input.ValidUntil = &t
	}

	guest, err := h.service.Update(c.Request().Context(), claims, id, input)
	if err != nil {
		return err
	}

	metrics.GuestMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, guest)
}

// Delete godoc
// @Summary      Delete a guest
// @Description  Removes the guest record together with every radcheck and
// @Description  radusergroup row of its username.
// @Tags         guests
// @Param        id path int true "guest id"
// @Success      204
// @Failure      403 {object} object
// @Failure      404 {object} object
// @Security     BearerAuth
// @Router       /guests/{id} [delete]
func (h *GuestHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := guestID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims, id); err != nil {
		return err
	}

	metrics.GuestMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Resend godoc
// @Summary      Resend guest credentials
// @Description  Re-delivers the stored credential mail for a guest whose
// @Description  original delivery failed.
// @Tags         guests
// @Param        id path int true "guest id"
// @Success      204
// @Failure      403 {object} object
// @Failure      404 {object} object
// @Failure      502 {object} object
// @Security     BearerAuth
// @Router       /guests/{id}/resend [post]
func (h *GuestHandler) Resend(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := guestID(c)
	if err != nil {
		return err
	}

	if err := h.service.ResendCredentials(c.Request().Context(), claims, id); err != nil {
		if errors.Is(err, domain.ErrDeliveryFailed) {
			metrics.CredentialDeliveriesTotal.WithLabelValues("failed").Inc()
		}
		return err
	}

	metrics.CredentialDeliveriesTotal.WithLabelValues("sent").Inc()
	return c.NoContent(http.StatusNoContent)
}

func guestID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid guest id")
	}
	return uint(id), nil
}

func provisioningReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrGuestExists):
		return "conflict"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrValidityWindow):
		return "validation"
	default:
		return "internal"
	}
}
