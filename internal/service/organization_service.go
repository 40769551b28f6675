package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tempPasswordLength = 8

type OrganizationService struct {
	orgs   OrganizationStore
	events EventStore
	auth   Authenticator
	reval  Revalidator
	logger *zap.Logger
	now    func() time.Time
}

func NewOrganizationService(orgs OrganizationStore, events EventStore, auth Authenticator, reval Revalidator, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{
		orgs:   orgs,
		events: events,
		auth:   auth,
		reval:  reval,
		logger: logger,
		now:    time.Now,
	}
}

// ListForFilter returns id and name of every organization account. Admin
// accounts are left out.
func (s *OrganizationService) ListForFilter(ctx context.Context) ([]models.OrganizationOption, error) {
	orgs, err := s.orgs.ListByRole(ctx, models.RoleOrganization)
	if err != nil {
		return nil, err
	}

	options := make([]models.OrganizationOption, 0, len(orgs))
	for _, org := range orgs {
		options = append(options, models.OrganizationOption{ID: org.ID, Name: org.Name})
	}
	return options, nil
}

func (s *OrganizationService) ListAll(ctx context.Context, caller *models.Principal) ([]models.Organization, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.orgs.List(ctx)
}

func (s *OrganizationService) Get(ctx context.Context, id string) (*models.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}

// Provision creates an organization account with a temporary password and
// returns that password to the admin. The password is not logged.
func (s *OrganizationService) Provision(ctx context.Context, caller *models.Principal, req models.ProvisionOrganizationRequest) (*models.ProvisionOrganizationResponse, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	at := strings.Index(email, "@")
	if at <= 0 {
		return nil, invalid("email", "must be a valid email")
	}

	password := req.TempPassword
	if password == "" {
		generated, err := utils.GenerateRandomString(tempPasswordLength)
		if err != nil {
			return nil, fmt.Errorf("generate temporary password: %w", err)
		}
		password = generated
	}

	org, err := s.auth.SignUpEmail(ctx, models.SignUpInput{
		Email:        email,
		Password:     password,
		Name:         email[:at],
		Role:         models.RoleOrganization,
		IsFirstLogin: true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("organization provisioned",
		zap.String("org_id", org.ID),
		zap.String("email", org.Email),
		zap.String("by", caller.ID),
	)
	s.reval.Revalidate(ctx, PathHome, PathDashboard)

	return &models.ProvisionOrganizationResponse{
		Organization: org,
		TempPassword: password,
	}, nil
}

// UpdateProfile applies the profile allow-list for the organization itself
// or an admin. Contacts are replaced as a whole.
func (s *OrganizationService) UpdateProfile(ctx context.Context, caller *models.Principal, id string, req models.UpdateOrganizationRequest) (*models.Organization, error) {
	if err := requireSession(caller); err != nil {
		return nil, err
	}

	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(caller, org.ID); err != nil {
		return nil, err
	}

	columns := make([]string, 0, 5)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name", "must not be empty")
		}
		org.Name = name
		columns = append(columns, "name")
	}
	if req.Description != nil {
		org.Description = *req.Description
		columns = append(columns, "description")
	}
	if req.Image != nil {
		if *req.Image == "" {
			org.Image = nil
		} else {
			image := *req.Image
			org.Image = &image
		}
		columns = append(columns, "image")
	}
	if req.Contacts != nil {
		contacts := *req.Contacts
		if contacts == nil {
			contacts = []models.Contact{}
		}
		org.Contacts = contacts
		columns = append(columns, "contacts")
	}

	org.UpdatedAt = s.now().UTC()
	columns = append(columns, "updated_at")

	if err := s.orgs.Update(ctx, org, columns...); err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}

	s.logger.Info("organization updated", zap.String("org_id", org.ID), zap.String("by", caller.ID))
	events, err := s.events.ListByOrg(ctx, org.ID)
	if err != nil {
		s.logger.Warn("list events for revalidation", zap.String("org_id", org.ID), zap.Error(err))
	}
	s.revalidateOrg(ctx, events)
	return org, nil
}

// ChangePassword reports a wrong current password through the result, not
// the error. On success the first-login flag is cleared.
func (s *OrganizationService) ChangePassword(ctx context.Context, caller *models.Principal, req models.ChangePasswordRequest) (*models.ChangePasswordResult, error) {
	if err := requireSession(caller); err != nil {
		return nil, err
	}

	err := s.auth.ChangePassword(ctx, caller, req.CurrentPassword, req.NewPassword)
	if errors.Is(err, ErrInvalidCredentials) {
		return &models.ChangePasswordResult{Success: false, Error: models.ErrCodeInvalidCurrentPassword}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.orgs.SetFirstLogin(ctx, caller.ID, false); err != nil {
		return nil, fmt.Errorf("clear first login: %w", err)
	}

	s.reval.Revalidate(ctx, PathDashboard)
	return &models.ChangePasswordResult{Success: true}, nil
}

// Delete removes an organization; its events and sessions cascade.
func (s *OrganizationService) Delete(ctx context.Context, caller *models.Principal, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	// Listed before the delete; the cascade takes the rows with it.
	events, err := s.events.ListByOrg(ctx, id)
	if err != nil {
		return fmt.Errorf("list organization events: %w", err)
	}

	n, err := s.orgs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	if n == 0 {
		return ErrOrganizationNotFound
	}

	s.logger.Info("organization deleted",
		zap.String("org_id", id),
		zap.Int("events", len(events)),
		zap.String("by", caller.ID),
	)
	s.revalidateOrg(ctx, events)
	return nil
}

// revalidateOrg drops the listing pages and the detail pages of the
// organization's events.
func (s *OrganizationService) revalidateOrg(ctx context.Context, events []models.Event) {
	paths := append([]string{PathHome, PathDashboard}, eventPaths(events)...)
	s.reval.Revalidate(ctx, paths...)
}
