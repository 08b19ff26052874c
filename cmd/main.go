package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/andrefasa/user-service/config"
	"github.com/andrefasa/user-service/db"
	"github.com/andrefasa/user-service/internal/account/handler"
	repo "github.com/andrefasa/user-service/internal/account/repository/postgres"
	"github.com/andrefasa/user-service/internal/account/service"
	"github.com/andrefasa/user-service/internal/logging"
	"github.com/andrefasa/user-service/internal/media"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := db.Migrate(ctx, cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	uploader, err := media.NewS3Uploader(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to configure media storage: %v", err)
	}

	userRepo := repo.NewUserRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	hasher := service.NewBcryptHasher()
	userService := service.NewUserService(userRepo, tokenService, hasher, uploader, logger)
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg.UploadDir)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handler.ErrorHandler,
	})
	app.Use(cors.New())
	app.Static("/", "./public")

	handler.RegisterRoutes(app, authHandler)

	logger.Info(ctx, "starting server", "port", cfg.Port, "env", cfg.Env)

	if err := app.Listen(cfg.Addr()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
