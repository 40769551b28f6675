package service

import (
	"context"
	"errors"

	"github.com/sefazor/campus-events-backend/internal/models"
	"gorm.io/gorm"
)

// ViewService assembles the read models behind the pages.
type ViewService struct {
	events     EventStore
	orgs       OrganizationStore
	categories CategoryStore
	links      *Links
}

func NewViewService(events EventStore, orgs OrganizationStore, categories CategoryStore, links *Links) *ViewService {
	return &ViewService{
		events:     events,
		orgs:       orgs,
		categories: categories,
		links:      links,
	}
}

func (s *ViewService) Home(ctx context.Context) (*models.HomeView, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	orgs, err := s.orgs.ListByRole(ctx, models.RoleOrganization)
	if err != nil {
		return nil, err
	}

	options := make([]models.OrganizationOption, 0, len(orgs))
	for _, org := range orgs {
		options = append(options, models.OrganizationOption{ID: org.ID, Name: org.Name})
	}

	return &models.HomeView{
		Events:        pruneCategories(events, categories),
		Categories:    categories,
		Organizations: options,
	}, nil
}

// EventDetail resolves an event with its organizer and the categories it
// still references.
func (s *ViewService) EventDetail(ctx context.Context, id string) (*models.EventDetailView, error) {
	event, err := s.events.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	org, err := s.orgs.GetByID(ctx, event.OrgID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	categories := make([]models.Category, 0, len(event.Categories))
	for _, cid := range event.Categories {
		if c, ok := byID[cid]; ok {
			categories = append(categories, c)
		}
	}
	event.Categories = event.KnownCategories(all)

	return &models.EventDetailView{
		Event:        event,
		Organization: org,
		Categories:   categories,
		ShareURL:     s.links.EventURL(event.ID),
	}, nil
}

// Dashboard gives admins every organization and event. Organizations see
// their own profile and events only.
func (s *ViewService) Dashboard(ctx context.Context, caller *models.Principal) (*models.DashboardView, error) {
	if err := requireSession(caller); err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	view := &models.DashboardView{Principal: caller, Categories: categories}

	if caller.IsAdmin() {
		orgs, err := s.orgs.List(ctx)
		if err != nil {
			return nil, err
		}
		events, err := s.events.List(ctx)
		if err != nil {
			return nil, err
		}
		view.Organizations = orgs
		view.Events = pruneCategories(events, categories)
		return view, nil
	}

	org, err := s.orgs.GetByID(ctx, caller.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListByOrg(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	view.Organization = org
	view.Events = pruneCategories(events, categories)
	return view, nil
}

func pruneCategories(events []models.Event, categories []models.Category) []models.Event {
	for i := range events {
		events[i].Categories = events[i].KnownCategories(categories)
	}
	return events
}
