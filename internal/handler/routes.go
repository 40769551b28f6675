package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/campus-events-backend/internal/middleware"
	"github.com/sefazor/campus-events-backend/internal/models"
)

type Routes struct {
	Auth          *AuthHandler
	Events        *EventHandler
	Organizations *OrganizationHandler
	Categories    *CategoryHandler
	Uploads       *UploadHandler
	Pages         *PageHandler
}

type RouteOptions struct {
	BasePath string
	// ViewCache wraps the public pages. Optional.
	ViewCache fiber.Handler
	// LoginLimiter throttles login attempts. Optional.
	LoginLimiter fiber.Handler
}

func passThrough(c *fiber.Ctx) error { return c.Next() }

// Register mounts the API under {base}/api and the pages under {base}.
// middleware.Session must already be installed on app.
func (r *Routes) Register(app *fiber.App, opts RouteOptions) {
	viewCache := opts.ViewCache
	if viewCache == nil {
		viewCache = passThrough
	}
	loginLimiter := opts.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = passThrough
	}

	root := app.Group(opts.BasePath)
	api := root.Group("/api")
	signedIn := middleware.RequireSession()
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	auth := api.Group("/auth")
	auth.Post("/login", loginLimiter, r.Auth.Login)
	auth.Post("/logout", r.Auth.Logout)
	auth.Get("/session", r.Auth.Session)
	auth.Post("/change-password", signedIn, r.Auth.ChangePassword)

	api.Get("/events", r.Events.ListEvents)
	api.Get("/events/:id", r.Events.GetEvent)
	api.Get("/events/:id/qrcode", r.Events.QRCode)
	api.Post("/events", signedIn, r.Events.CreateEvent)
	api.Put("/events/:id", signedIn, r.Events.UpdateEvent)
	api.Delete("/events/:id", signedIn, r.Events.DeleteEvent)

	api.Get("/organizations", adminOnly, r.Organizations.ListOrganizations)
	api.Get("/organizations/filter", r.Organizations.FilterOptions)
	api.Get("/organizations/:id", r.Organizations.GetOrganization)
	api.Get("/organizations/:id/events", r.Organizations.OrganizationEvents)
	api.Post("/organizations", adminOnly, r.Organizations.Provision)
	api.Put("/organizations/:id", signedIn, r.Organizations.UpdateOrganization)
	api.Delete("/organizations/:id", adminOnly, r.Organizations.DeleteOrganization)

	api.Get("/categories", r.Categories.ListCategories)
	api.Post("/categories", adminOnly, r.Categories.CreateCategory)
	api.Delete("/categories/:id", adminOnly, r.Categories.DeleteCategory)

	api.Post("/uploads", signedIn, r.Uploads.UploadImage)

	policy := middleware.RoutePolicy(opts.BasePath)
	root.Get("/", viewCache, r.Pages.Home)
	root.Get("/events/:id", viewCache, r.Pages.EventDetail)
	root.Get("/dashboard", policy, r.Pages.Dashboard)
	root.Get("/dashboard/*", policy, r.Pages.Dashboard)
	root.Get("/login", policy, r.Pages.Login)
	root.Get("/change-password", policy, r.Pages.ChangePassword)
}
