package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	validator       *utils.Validator
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, validator *utils.Validator, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator,
		logger:          logger,
	}
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(categories, ""))
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req models.CategoryRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	category, err := h.categoryService.Create(c.UserContext(), middleware.PrincipalFrom(c), req.Name)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(category, "Category created successfully"))
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid category ID"))
	}

	if err := h.categoryService.Delete(c.UserContext(), middleware.PrincipalFrom(c), uint(id)); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Category deleted"))
}
