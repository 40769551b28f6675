package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"go.uber.org/zap"
)

// PageHandler serves the view models behind each page. Redirects are the
// route policy's job.
type PageHandler struct {
	viewService *service.ViewService
	logger      *zap.Logger
}

func NewPageHandler(viewService *service.ViewService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		viewService: viewService,
		logger:      logger,
	}
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	view, err := h.viewService.Home(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(view, ""))
}

func (h *PageHandler) EventDetail(c *fiber.Ctx) error {
	view, err := h.viewService.EventDetail(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(view, ""))
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	view, err := h.viewService.Dashboard(c.UserContext(), middleware.PrincipalFrom(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(view, ""))
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(models.PageView{Page: "login"}, ""))
}

func (h *PageHandler) ChangePassword(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(models.PageView{Page: "change-password"}, ""))
}
