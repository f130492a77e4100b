package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/internal/core/ports"
)

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"omitempty,oneof=admin user"`
	Departments []int  `json:"departments"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string                 `json:"token"`
	User  *domain.ManagementUser `json:"user"`
}

type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary      Register a management user
// @Description  Creates an operator account with a role and managed departments.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "account data"
// @Success      201 {object} domain.ManagementUser
// @Failure      400 {object} object
// @Failure      409 {object} object
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}

	user, err := h.service.Register(c.Request().Context(), req.Username, req.Password, req.Role, req.Departments)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary      Authenticate a management user
// @Description  Verifies credentials and issues a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "credentials"
// @Success      200 {object} loginResponse
// @Failure      401 {object} object
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tok, user, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: tok, User: user})
}

// Me godoc
// @Summary      Current caller identity
// @Tags         auth
// @Produce      json
// @Success      200 {object} domain.Claims
// @Failure      401 {object} object
// @Security     BearerAuth
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}
