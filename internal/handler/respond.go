package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses. Unexpected errors are
// logged and answered with a generic message.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var verr *service.ValidationError
	var ferr *utils.FieldError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		if middleware.PrincipalFrom(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("authentication required"))
		}
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("you are not allowed to do this"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("invalid email or password"))
	case errors.Is(err, service.ErrInvalidSession):
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("invalid or expired session"))
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.As(err, &verr):
		status := fiber.StatusBadRequest
		if verr.Conflict {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(models.FieldErrorResponse(verr.Field, verr.Message))
	case errors.As(err, &ferr):
		return c.Status(fiber.StatusBadRequest).JSON(models.FieldErrorResponse(ferr.Field, ferr.Message))
	}

	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("internal server error"))
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, v *utils.Validator, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return &service.ValidationError{Message: "invalid request body"}
	}
	return v.Struct(req)
}
