package service

import (
	"context"
	"time"

	"github.com/sefazor/campus-events-backend/internal/models"
)

// AccountStore is the persistence the auth service needs.
type AccountStore interface {
	CreateWithAccount(ctx context.Context, org *models.Organization, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	GetByEmail(ctx context.Context, email string) (*models.Organization, error)
	GetAccount(ctx context.Context, userID, providerID string) (*models.Account, error)
	UpdateAccountPassword(ctx context.Context, accountID, passwordHash string) error
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetActive(ctx context.Context, token string, now time.Time) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type OrganizationStore interface {
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	List(ctx context.Context) ([]models.Organization, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Organization, error)
	Update(ctx context.Context, org *models.Organization, columns ...string) error
	SetFirstLogin(ctx context.Context, id string, firstLogin bool) error
	Delete(ctx context.Context, id string) (int64, error)
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	ListByOrg(ctx context.Context, orgID string) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event, columns ...string) error
	Delete(ctx context.Context, id string) (int64, error)
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// Authenticator is the part of the auth collaborator the organization
// service drives.
type Authenticator interface {
	SignUpEmail(ctx context.Context, in models.SignUpInput) (*models.Organization, error)
	ChangePassword(ctx context.Context, caller *models.Principal, currentPassword, newPassword string) error
}

// Revalidator drops cached views after a mutation. Failures are the
// implementation's to log; a stale view never fails the mutation.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string)
}

const (
	PathHome      = "/"
	PathDashboard = "/dashboard"
)

func EventPath(id string) string {
	return "/events/" + id
}

// eventPaths lists the detail page of every event.
func eventPaths(events []models.Event) []string {
	paths := make([]string, 0, len(events))
	for _, e := range events {
		paths = append(paths, EventPath(e.ID))
	}
	return paths
}
