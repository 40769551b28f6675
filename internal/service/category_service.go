package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sefazor/campus-events-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryService struct {
	categories CategoryStore
	events     EventStore
	reval      Revalidator
	logger     *zap.Logger
}

func NewCategoryService(categories CategoryStore, events EventStore, reval Revalidator, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		events:     events,
		reval:      reval,
		logger:     logger,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// Create adds a category. Names are unique and compared case-sensitively.
func (s *CategoryService) Create(ctx context.Context, caller *models.Principal, name string) (*models.Category, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	category := &models.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.Info("category created", zap.Uint("category_id", category.ID), zap.String("name", name))
	s.reval.Revalidate(ctx, PathHome, PathDashboard)
	return category, nil
}

// Delete removes the category only. Events keep the id in their category
// list; readers drop unknown ids.
func (s *CategoryService) Delete(ctx context.Context, caller *models.Principal, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	n, err := s.categories.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n == 0 {
		return ErrCategoryNotFound
	}

	s.logger.Info("category deleted", zap.Uint("category_id", id))

	// Detail pages render category names.
	paths := []string{PathHome, PathDashboard}
	events, err := s.events.List(ctx)
	if err != nil {
		s.logger.Warn("list events for revalidation", zap.Error(err))
	}
	s.reval.Revalidate(ctx, append(paths, eventPaths(events)...)...)
	return nil
}
