package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sefazor/campus-events-backend/internal/config"
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

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}

	app, cleanup, err := InitializeAPI(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize api", zap.Error(err))
	}
	defer cleanup()

	go func() {
		zl.Info("server starting", zap.String("port", cfg.Port), zap.String("base_path", cfg.BasePath))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
