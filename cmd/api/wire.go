//go:build wireinject
// +build wireinject

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"github.com/sefazor/campus-events-backend/internal/config"
	"github.com/sefazor/campus-events-backend/internal/handler"
	"github.com/sefazor/campus-events-backend/internal/repository"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/pkg/cache"
	"github.com/sefazor/campus-events-backend/pkg/qrcode"
	"github.com/sefazor/campus-events-backend/pkg/storage"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
)

var repositorySet = wire.NewSet(
	provideDatabase,
	repository.NewOrganizationRepository,
	repository.NewSessionRepository,
	repository.NewEventRepository,
	repository.NewCategoryRepository,

	wire.Bind(new(service.AccountStore), new(*repository.OrganizationRepository)),
	wire.Bind(new(service.OrganizationStore), new(*repository.OrganizationRepository)),
	wire.Bind(new(service.SessionStore), new(*repository.SessionRepository)),
	wire.Bind(new(service.EventStore), new(*repository.EventRepository)),
	wire.Bind(new(service.CategoryStore), new(*repository.CategoryRepository)),
)

var serviceSet = wire.NewSet(
	provideTokenManager,
	providePageCache,
	provideLinks,
	service.NewAuthService,
	service.NewOrganizationService,
	service.NewEventService,
	service.NewCategoryService,
	service.NewViewService,

	wire.Bind(new(service.Authenticator), new(*service.AuthService)),
	wire.Bind(new(service.Revalidator), new(*cache.PageCache)),
)

var handlerSet = wire.NewSet(
	utils.NewValidator,
	qrcode.NewQRService,
	storage.New,
	provideAuthController,
	provideAuthHandler,
	handler.NewEventHandler,
	handler.NewOrganizationHandler,
	handler.NewCategoryHandler,
	handler.NewUploadHandler,
	handler.NewPageHandler,
	wire.Struct(new(handler.Routes), "*"),
)

func InitializeAPI(cfg *config.Config, logger *zap.Logger) (*fiber.App, func(), error) {
	wire.Build(
		repositorySet,
		serviceSet,
		handlerSet,
		NewFiberApp,
	)
	return nil, nil, nil
}
