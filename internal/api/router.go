// Package api assembles the HTTP surface of the guest portal: routing,
// middleware, error mapping and the wiring between handlers and services.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/guestwifi/portal-api/internal/api/handler"
	"github.com/guestwifi/portal-api/internal/api/middleware"
	"github.com/guestwifi/portal-api/internal/core/domain"
	"github.com/guestwifi/portal-api/internal/core/ports"
	"github.com/guestwifi/portal-api/internal/core/service"
	"github.com/guestwifi/portal-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/guestwifi/portal-api/internal/infrastructure/db/redis"
	"github.com/guestwifi/portal-api/internal/pkg/config"
	"github.com/guestwifi/portal-api/pkg/logger"
)

// NewRouter wires repositories, services and handlers onto a configured
// echo instance.
func NewRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer ports.Mailer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echoprometheus.NewMiddleware("guestportal"))

	authRepo := postgres.NewAuthRepository(db)
	guestStore := postgres.NewGuestStore(db)
	ledger := redisinfra.NewDeliveryLedger(rdb)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.JWTExpiry)
	guestService := service.NewGuestService(guestStore, mailer, ledger, cfg.BlockedGroup, logger.Get())

	authHandler := handler.NewAuthHandler(authService)
	guestHandler := handler.NewGuestHandler(guestService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret)

	if cfg.AllowRegistration {
		e.POST("/register", authHandler.Register)
	} else {
		e.POST("/register", authHandler.Register, auth, middleware.RBAC(domain.RoleAdmin))
	}
	e.POST("/login", authHandler.Login)
	e.GET("/me", authHandler.Me, auth)

	guests := e.Group("/guests", auth)
	guests.POST("", guestHandler.Create)
	guests.GET("", guestHandler.List)
	guests.PATCH("/:id", guestHandler.Update)
	guests.DELETE("/:id", guestHandler.Delete)
	guests.POST("/:id/resend", guestHandler.Resend)

	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
