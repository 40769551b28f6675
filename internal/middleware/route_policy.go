package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/models"
)

const (
	PageLogin          = "/login"
	PageChangePassword = "/change-password"
	PageDashboard      = "/dashboard"
)

// Decide applies the page routing rules to a path relative to the base
// path. It returns the page to redirect to, or "" to let the request
// through.
func Decide(path string, p *models.Principal) string {
	isLogin := path == PageLogin
	isChange := path == PageChangePassword
	isDashboard := path == PageDashboard || strings.HasPrefix(path, PageDashboard+"/")

	if !isLogin && !isChange && !isDashboard {
		return ""
	}

	if p == nil {
		if isDashboard {
			return PageLogin
		}
		return ""
	}

	if p.IsFirstLogin && !isChange {
		return PageChangePassword
	}
	if isLogin {
		return PageDashboard
	}
	return ""
}

// RoutePolicy redirects page requests according to Decide. It must run
// after Session.
func RoutePolicy(basePath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimPrefix(c.Path(), basePath)
		if path == "" {
			path = "/"
		}
		if len(path) > 1 {
			path = strings.TrimRight(path, "/")
		}

		if target := Decide(path, PrincipalFrom(c)); target != "" {
			return c.Redirect(basePath+target, fiber.StatusFound)
		}
		return c.Next()
	}
}
