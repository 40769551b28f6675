package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/models"
)

// RequireSession rejects anonymous requests with 401.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFrom(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("authentication required"))
		}
		return c.Next()
	}
}

// RequireRole allows only the given roles.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		p := PrincipalFrom(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("authentication required"))
		}
		if _, ok := allowed[p.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("insufficient permissions"))
		}
		return c.Next()
	}
}
