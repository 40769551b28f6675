package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sefazor/campus-events-backend/internal/config"
	"github.com/sefazor/campus-events-backend/internal/repository"
	"github.com/sefazor/campus-events-backend/internal/seed"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/pkg/database"
	"github.com/sefazor/campus-events-backend/pkg/jwt"
	"github.com/sefazor/campus-events-backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; the environment wins.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.NewDatabase(cfg, zl)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	orgRepo := repository.NewOrganizationRepository(db)
	authService := service.NewAuthService(
		orgRepo,
		repository.NewSessionRepository(db),
		jwt.NewManager(cfg.JWTSecret, cfg.SessionTTL, jwt.Issuer),
		zl,
	)
	seeder := seed.NewSeeder(authService, repository.NewCategoryRepository(db), zl)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seeder.Run(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	zl.Info("seed complete")
}
