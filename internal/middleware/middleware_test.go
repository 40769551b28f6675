package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticResolver map[string]*models.Principal

func (r staticResolver) GetSession(_ context.Context, token string) (*models.Principal, error) {
	if p, ok := r[token]; ok {
		return p, nil
	}
	return nil, errors.New("invalid session")
}

var (
	orgPrincipal   = &models.Principal{ID: "org-1", Role: models.RoleOrganization}
	freshPrincipal = &models.Principal{ID: "org-2", Role: models.RoleOrganization, IsFirstLogin: true}
	adminPrincipal = &models.Principal{ID: "admin", Role: models.RoleAdmin}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		path string
		p    *models.Principal
		want string
	}{
		{"anonymous home", "/", nil, ""},
		{"anonymous login", "/login", nil, ""},
		{"anonymous dashboard", "/dashboard", nil, PageLogin},
		{"anonymous dashboard subpage", "/dashboard/events", nil, PageLogin},
		{"anonymous change password", "/change-password", nil, ""},
		{"signed in login", "/login", orgPrincipal, PageDashboard},
		{"signed in dashboard", "/dashboard", orgPrincipal, ""},
		{"first login dashboard", "/dashboard", freshPrincipal, PageChangePassword},
		{"first login login", "/login", freshPrincipal, PageChangePassword},
		{"first login change password", "/change-password", freshPrincipal, ""},
		{"first login public page", "/events/1", freshPrincipal, ""},
		{"dashboard lookalike", "/dashboards", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Decide(tt.path, tt.p))
		})
	}
}

func newTestApp(basePath string) *fiber.App {
	resolver := staticResolver{"org": orgPrincipal, "fresh": freshPrincipal, "admin": adminPrincipal}

	app := fiber.New()
	app.Use(Logger(zap.NewNop()))
	app.Use(Session(resolver, zap.NewNop()))

	pages := app.Group(basePath, RoutePolicy(basePath))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	pages.Get("/login", ok)
	pages.Get("/change-password", ok)
	pages.Get("/dashboard", ok)

	api := app.Group(basePath + "/api")
	api.Get("/me", RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString(PrincipalFrom(c).ID)
	})
	api.Get("/admin", RequireRole(models.RoleAdmin), ok)
	return app
}

func TestRoutePolicyRedirects(t *testing.T) {
	app := newTestApp("/app")

	tests := []struct {
		name     string
		path     string
		cookie   string
		status   int
		location string
	}{
		{"anonymous dashboard", "/app/dashboard", "", http.StatusFound, "/app/login"},
		{"signed in login", "/app/login", "org", http.StatusFound, "/app/dashboard"},
		{"first login dashboard", "/app/dashboard", "fresh", http.StatusFound, "/app/change-password"},
		{"first login change password", "/app/change-password", "fresh", http.StatusOK, ""},
		{"signed in dashboard", "/app/dashboard", "org", http.StatusOK, ""},
		{"invalid token treated as anonymous", "/app/dashboard", "bogus", http.StatusFound, "/app/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)
			require.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestRequireSessionAndRole(t *testing.T) {
	app := newTestApp("")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer org")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer org")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer admin")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
