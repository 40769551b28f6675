package service

import (
	"context"
	"testing"
	"time"

	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service/servicetest"
	"github.com/sefazor/campus-events-backend/pkg/jwt"
	"go.uber.org/zap"
)

// fixture wires every service over one in-memory database.
type fixture struct {
	db         *servicetest.DB
	reval      *servicetest.Revalidations
	auth       *AuthService
	orgs       *OrganizationService
	events     *EventService
	categories *CategoryService
	views      *ViewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := servicetest.NewDB()
	reval := &servicetest.Revalidations{}
	logger := zap.NewNop()
	tokens := jwt.NewManager("0123456789abcdef0123456789abcdef", time.Hour, "campus-events")

	auth := NewAuthService(db.Organizations(), db.Sessions(), tokens, logger)
	return &fixture{
		db:         db,
		reval:      reval,
		auth:       auth,
		orgs:       NewOrganizationService(db.Organizations(), db.Events(), auth, reval, logger),
		events:     NewEventService(db.Events(), db.Organizations(), reval, logger),
		categories: NewCategoryService(db.Categories(), db.Events(), reval, logger),
		views:      NewViewService(db.Events(), db.Organizations(), db.Categories(), NewLinks("https://campus.example", "/app")),
	}
}

func (f *fixture) signUp(t *testing.T, email, password string, role models.Role) *models.Principal {
	t.Helper()
	org, err := f.auth.SignUpEmail(context.Background(), models.SignUpInput{
		Email:    email,
		Password: password,
		Name:     email,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	return models.PrincipalOf(org)
}

func (f *fixture) admin(t *testing.T) *models.Principal {
	t.Helper()
	return f.signUp(t, "admin@campus.test", "admin-password", models.RoleAdmin)
}

func eventRequest(title string) models.EventRequest {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	return models.EventRequest{
		Title:       title,
		Description: "An evening of talks",
		Banner:      "https://cdn.campus.test/banner.png",
		Location:    "Main hall",
		StartDate:   start,
		EndDate:     start.Add(2 * time.Hour),
		Categories:  []uint{},
	}
}
