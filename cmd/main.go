package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pixelvault/auth-service/config"
	"github.com/pixelvault/auth-service/db"
	"github.com/pixelvault/auth-service/internal/auth/handler"
	repo "github.com/pixelvault/auth-service/internal/auth/repository/postgres"
	"github.com/pixelvault/auth-service/internal/auth/service"
	"github.com/pixelvault/auth-service/internal/auth/social"
	"github.com/pixelvault/auth-service/internal/mailer"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	dbPool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg)
	verifier := social.NewVerifier(cfg, logger)
	smtpMailer := mailer.NewSMTPMailer(cfg, logger)
	userService := service.NewUserService(userRepo, tokenService, verifier, smtpMailer, cfg, logger)
	authHandler := handler.NewAuthHandler(userService, tokenService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, userHandler)

	logger.Info("starting auth service", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
