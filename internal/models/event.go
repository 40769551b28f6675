package models

import (
	"time"
)

type Event struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title            string    `json:"title" gorm:"not null"`
	Description      string    `json:"description" gorm:"not null"`
	Banner           string    `json:"banner" gorm:"not null"`
	Location         string    `json:"location" gorm:"not null"`
	StartDate        time.Time `json:"start_date" gorm:"not null;index"`
	EndDate          time.Time `json:"end_date" gorm:"not null"`
	RegistrationLink *string   `json:"registration_link"`
	WhatsAppContact  *string   `json:"whatsapp_contact" gorm:"column:whatsapp_contact"`
	OrgID            string    `json:"org_id" gorm:"type:varchar(36);not null;index"`
	// Category ids in the order they were picked. Deleting a category does
	// not touch this list.
	Categories []uint    `json:"categories" gorm:"type:text;not null;serializer:json"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

// KnownCategories drops ids that no longer exist in the given category list.
func (e *Event) KnownCategories(categories []Category) []uint {
	known := make(map[uint]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}

	out := make([]uint, 0, len(e.Categories))
	for _, id := range e.Categories {
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

type EventRequest struct {
	Title            string    `json:"title" validate:"required"`
	Description      string    `json:"description" validate:"required"`
	Banner           string    `json:"banner" validate:"required"`
	Location         string    `json:"location" validate:"required"`
	StartDate        time.Time `json:"start_date" validate:"required"`
	EndDate          time.Time `json:"end_date" validate:"required"`
	RegistrationLink *string   `json:"registration_link" validate:"omitempty,url"`
	WhatsAppContact  *string   `json:"whatsapp_contact"`
	Categories       []uint    `json:"categories"`
	// Only honoured for admins creating an event on behalf of an organization.
	OrgID string `json:"org_id"`
}

// UpdateEventRequest is the allow-list of mutable event fields. OrgID is
// accepted from admins only.
type UpdateEventRequest struct {
	Title            *string    `json:"title" validate:"omitempty,min=1"`
	Description      *string    `json:"description"`
	Banner           *string    `json:"banner" validate:"omitempty,min=1"`
	Location         *string    `json:"location"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	// An empty link clears it; anything else must be an absolute URL.
	RegistrationLink *string    `json:"registration_link"`
	WhatsAppContact  *string    `json:"whatsapp_contact"`
	Categories       *[]uint    `json:"categories"`
	OrgID            *string    `json:"org_id"`
}
