package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/controller"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authController *controller.AuthController
	validator      *utils.Validator
	logger         *zap.Logger
	cookiePath     string
	secureCookie   bool
}

func NewAuthHandler(authController *controller.AuthController, validator *utils.Validator, logger *zap.Logger, basePath string, secureCookie bool) *AuthHandler {
	cookiePath := basePath
	if cookiePath == "" {
		cookiePath = "/"
	}
	return &AuthHandler{
		authController: authController,
		validator:      validator,
		logger:         logger,
		cookiePath:     cookiePath,
		secureCookie:   secureCookie,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	resp, err := h.authController.Login(c.UserContext(), req, models.SessionMeta{
		IPAddress: c.IP(),
		UserAgent: string(c.Request().Header.UserAgent()),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    resp.Token,
		Path:     h.cookiePath,
		Expires:  resp.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.TokenFrom(c); token != "" {
		if err := h.authController.Logout(c.UserContext(), token); err != nil {
			return respondError(c, h.logger, err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     h.cookiePath,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("no active session"))
	}
	return c.JSON(models.SuccessResponse(p, ""))
}

// ChangePassword answers a wrong current password with 400 and the typed
// result body.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := bind(c, h.validator, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.authController.ChangePassword(c.UserContext(), middleware.PrincipalFrom(c), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if !result.Success {
		return c.Status(fiber.StatusBadRequest).JSON(result)
	}
	return c.JSON(result)
}
