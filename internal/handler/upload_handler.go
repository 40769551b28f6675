package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/pkg/storage"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
)

type UploadHandler struct {
	store     storage.ImageStore
	validator *utils.Validator
	logger    *zap.Logger
}

func NewUploadHandler(store storage.ImageStore, validator *utils.Validator, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// UploadImage stores a banner or avatar and returns its public URL.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.FieldErrorResponse("file", "is required"))
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if err := h.validator.Var(contentType, "supported_image"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.FieldErrorResponse("file", "must be a jpeg, png, gif or webp image"))
	}
	if file.Size > storage.MaxImageSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.FieldErrorResponse("file", "is too large"))
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	defer src.Close()

	url, err := h.store.Save(c.UserContext(), file.Filename, contentType, src)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(fiber.Map{"url": url}, "File uploaded"))
}
