package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/models"
	"go.uber.org/zap"
)

const (
	SessionCookie = "session_token"

	localsPrincipal = "principal"
	localsToken     = "session_token"
)

// SessionResolver turns a session token into the calling principal.
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*models.Principal, error)
}

// Session attaches the principal behind the request's session token, if
// any. Requests without a valid session pass through anonymously.
func Session(resolver SessionResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Next()
		}

		principal, err := resolver.GetSession(c.UserContext(), token)
		if err != nil {
			logger.Debug("session rejected", zap.String("path", c.Path()), zap.Error(err))
			return c.Next()
		}

		c.Locals(localsPrincipal, principal)
		c.Locals(localsToken, token)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(SessionCookie)
}

// PrincipalFrom returns the caller attached by Session, or nil.
func PrincipalFrom(c *fiber.Ctx) *models.Principal {
	p, _ := c.Locals(localsPrincipal).(*models.Principal)
	return p
}

// TokenFrom returns the raw token of a resolved session.
func TokenFrom(c *fiber.Ctx) string {
	t, _ := c.Locals(localsToken).(string)
	return t
}
