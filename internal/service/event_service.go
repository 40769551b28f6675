package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/campus-events-backend/internal/models"
	"github.com/sefazor/campus-events-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EventService struct {
	events EventStore
	orgs   OrganizationStore
	reval  Revalidator
	logger *zap.Logger
	now    func() time.Time
}

func NewEventService(events EventStore, orgs OrganizationStore, reval Revalidator, logger *zap.Logger) *EventService {
	return &EventService{
		events: events,
		orgs:   orgs,
		reval:  reval,
		logger: logger,
		now:    time.Now,
	}
}

// ListAll returns every event, latest start date first.
func (s *EventService) ListAll(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

func (s *EventService) ListByOrganization(ctx context.Context, orgID string) ([]models.Event, error) {
	return s.events.ListByOrg(ctx, orgID)
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create stores a new event owned by the caller. Admins may name another
// organization as owner.
func (s *EventService) Create(ctx context.Context, caller *models.Principal, req models.EventRequest) (*models.Event, error) {
	if err := requireSession(caller); err != nil {
		return nil, err
	}

	orgID, err := s.ownerFor(ctx, caller, req.OrgID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("title", "is required")
	}
	if strings.TrimSpace(req.Banner) == "" {
		return nil, invalid("banner", "is required")
	}
	var link *string
	if req.RegistrationLink != nil {
		link = emptyToNil(*req.RegistrationLink)
	}
	if err := checkRegistrationLink(link); err != nil {
		return nil, err
	}

	categories := req.Categories
	if categories == nil {
		categories = []uint{}
	}

	event := &models.Event{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Description:      req.Description,
		Banner:           req.Banner,
		Location:         req.Location,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		RegistrationLink: link,
		WhatsAppContact:  req.WhatsAppContact,
		OrgID:            orgID,
		Categories:       categories,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("org_id", event.OrgID),
		zap.String("by", caller.ID),
	)
	s.reval.Revalidate(ctx, PathHome, PathDashboard, EventPath(event.ID))
	return event, nil
}

// ownerFor resolves the owning organization of a new event.
func (s *EventService) ownerFor(ctx context.Context, caller *models.Principal, requested string) (string, error) {
	if requested == "" || requested == caller.ID {
		return caller.ID, nil
	}
	if !caller.IsAdmin() {
		return "", ErrUnauthorized
	}
	if _, err := s.lookupOrg(ctx, requested); err != nil {
		return "", err
	}
	return requested, nil
}

func (s *EventService) lookupOrg(ctx context.Context, id string) (*models.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	return org, err
}

// Update merges the allow-listed fields of req into the event. Only admins
// may move an event to another organization.
func (s *EventService) Update(ctx context.Context, caller *models.Principal, id string, req models.UpdateEventRequest) (*models.Event, error) {
	if err := requireSession(caller); err != nil {
		return nil, err
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(caller, event.OrgID); err != nil {
		return nil, err
	}

	columns := make([]string, 0, 11)

	if req.OrgID != nil && *req.OrgID != event.OrgID {
		if !caller.IsAdmin() {
			return nil, ErrUnauthorized
		}
		if _, err := s.lookupOrg(ctx, *req.OrgID); err != nil {
			return nil, err
		}
		event.OrgID = *req.OrgID
		columns = append(columns, "org_id")
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, invalid("title", "must not be empty")
		}
		event.Title = *req.Title
		columns = append(columns, "title")
	}
	if req.Description != nil {
		event.Description = *req.Description
		columns = append(columns, "description")
	}
	if req.Banner != nil {
		if strings.TrimSpace(*req.Banner) == "" {
			return nil, invalid("banner", "must not be empty")
		}
		event.Banner = *req.Banner
		columns = append(columns, "banner")
	}
	if req.Location != nil {
		event.Location = *req.Location
		columns = append(columns, "location")
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
		columns = append(columns, "start_date")
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
		columns = append(columns, "end_date")
	}
	if req.RegistrationLink != nil {
		link := emptyToNil(*req.RegistrationLink)
		if err := checkRegistrationLink(link); err != nil {
			return nil, err
		}
		event.RegistrationLink = link
		columns = append(columns, "registration_link")
	}
	if req.WhatsAppContact != nil {
		event.WhatsAppContact = emptyToNil(*req.WhatsAppContact)
		columns = append(columns, "whatsapp_contact")
	}
	if req.Categories != nil {
		categories := *req.Categories
		if categories == nil {
			categories = []uint{}
		}
		event.Categories = categories
		columns = append(columns, "categories")
	}

	event.UpdatedAt = s.now().UTC()
	columns = append(columns, "updated_at")

	if err := s.events.Update(ctx, event, columns...); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.logger.Info("event updated", zap.String("event_id", event.ID), zap.String("by", caller.ID))
	s.reval.Revalidate(ctx, PathHome, PathDashboard, EventPath(event.ID))
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, caller *models.Principal, id string) error {
	if err := requireSession(caller); err != nil {
		return err
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(caller, event.OrgID); err != nil {
		return err
	}

	if _, err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("event deleted", zap.String("event_id", id), zap.String("by", caller.ID))
	s.reval.Revalidate(ctx, PathHome, PathDashboard, EventPath(id))
	return nil
}

// checkRegistrationLink accepts a missing link or an absolute URL.
func checkRegistrationLink(link *string) error {
	if link == nil || utils.IsURL(*link) {
		return nil
	}
	return invalid("registration_link", "must be a valid URL")
}

func emptyToNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
