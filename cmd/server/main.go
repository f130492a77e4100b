// @title           Guest Wi-Fi Portal API
// @version         1.0
// @description     Provisioning and lifecycle management for captive-portal
// @description     guest accounts backed by a FreeRADIUS store.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/guestwifi/portal-api/internal/api"
	"github.com/guestwifi/portal-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/guestwifi/portal-api/internal/infrastructure/db/redis"
	"github.com/guestwifi/portal-api/internal/infrastructure/mail"
	"github.com/guestwifi/portal-api/internal/pkg/config"
	"github.com/guestwifi/portal-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer postgres.Close(db)

	if err := postgres.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := redisinfra.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:               cfg.SMTP.Host,
		Port:               cfg.SMTP.Port,
		Username:           cfg.SMTP.Username,
		Password:           cfg.SMTP.Password,
		From:               cfg.SMTP.From,
		InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build smtp mailer")
	}

	e := api.NewRouter(cfg, db, rdb, mailer)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
