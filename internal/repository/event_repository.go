package repository

import (
	"context"

	"github.com/sefazor/campus-events-backend/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns every event, latest start date first.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByOrg(ctx context.Context, orgID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Find(&events).Error
	return events, err
}

// Update writes only the named columns of event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event, columns ...string) error {
	return r.db.WithContext(ctx).Model(event).Select(columns).Updates(event).Error
}

func (r *EventRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{})
	return result.RowsAffected, result.Error
}
