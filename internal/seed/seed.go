package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/internal/service"
	"go.uber.org/zap"
)

// DefaultCategories are created on first boot.
var DefaultCategories = []string{"Tecnología", "Artes", "Deportes", "Académico", "Social"}

type AccountCreator interface {
	SignUpEmail(ctx context.Context, in models.SignUpInput) (*models.Organization, error)
}

type CategoryEnsurer interface {
	EnsureExists(ctx context.Context, name string) (bool, error)
}

type Seeder struct {
	accounts   AccountCreator
	categories CategoryEnsurer
	logger     *zap.Logger
}

func NewSeeder(accounts AccountCreator, categories CategoryEnsurer, logger *zap.Logger) *Seeder {
	return &Seeder{accounts: accounts, categories: categories, logger: logger}
}

// Run creates the admin account and the default categories. Running it
// again changes nothing.
func (s *Seeder) Run(ctx context.Context, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	admin, err := s.accounts.SignUpEmail(ctx, models.SignUpInput{
		Email:        adminEmail,
		Password:     adminPassword,
		Name:         "Administrador",
		Role:         models.RoleAdmin,
		Description:  "Cuenta de administración",
		IsFirstLogin: false,
	})
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		s.logger.Info("admin account already exists", zap.String("email", adminEmail))
	case err != nil:
		return fmt.Errorf("create admin: %w", err)
	default:
		s.logger.Info("admin account created", zap.String("org_id", admin.ID), zap.String("email", admin.Email))
	}

	for _, name := range DefaultCategories {
		created, err := s.categories.EnsureExists(ctx, name)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		if created {
			s.logger.Info("category created", zap.String("name", name))
		}
	}
	return nil
}
