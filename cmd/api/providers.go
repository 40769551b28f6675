package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sefazor/campus-events-backend/internal/config"
	"github.com/sefazor/campus-events-backend/internal/controller"
	"github.com/sefazor/campus-events-backend/internal/handler"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/pkg/cache"
	"github.com/sefazor/campus-events-backend/pkg/database"
	"github.com/sefazor/campus-events-backend/pkg/jwt"
	"github.com/sefazor/campus-events-backend/pkg/storage"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideTokenManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWTSecret, cfg.SessionTTL, jwt.Issuer)
}

func providePageCache(cfg *config.Config, logger *zap.Logger) (*cache.PageCache, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pc, err := cache.NewPageCache(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.ViewTTL,
		BasePath: cfg.BasePath,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return pc, func() { _ = pc.Close() }, nil
}

func provideLinks(cfg *config.Config) *service.Links {
	return service.NewLinks(cfg.PublicURL, cfg.BasePath)
}

func provideAuthController(auth *service.AuthService, orgs *service.OrganizationService, cfg *config.Config) *controller.AuthController {
	return controller.NewAuthController(auth, orgs, cfg.BasePath)
}

func provideAuthHandler(ctrl *controller.AuthController, v *utils.Validator, logger *zap.Logger, cfg *config.Config) *handler.AuthHandler {
	return handler.NewAuthHandler(ctrl, v, logger, cfg.BasePath, cfg.IsProduction())
}

// NewFiberApp installs the global middleware and mounts every route.
func NewFiberApp(cfg *config.Config, logger *zap.Logger, routes *handler.Routes, sessions *service.AuthService, views *cache.PageCache) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "campus-events",
		BodyLimit:    storage.MaxImageSize + 1<<20,
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(middleware.Logger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))

	if cfg.StorageDriver == config.StorageLocal {
		app.Static(cfg.Path("/uploads"), cfg.UploadDir)
	}

	app.Get(cfg.Path("/healthz"), func(c *fiber.Ctx) error {
		return c.JSON(models.SuccessResponse(nil, "ok"))
	})

	app.Use(middleware.Session(sessions, logger))

	var viewCache fiber.Handler
	if views.Enabled() {
		viewCache = views.Middleware()
	}
	routes.Register(app, handler.RouteOptions{
		BasePath:  cfg.BasePath,
		ViewCache: viewCache,
		LoginLimiter: limiter.New(limiter.Config{
			Max:        10,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse("too many login attempts, try again later"))
			},
		}),
	})

	return app
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(models.ErrorResponse(e.Message))
		}
		logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("internal server error"))
	}
}
