package models

import "time"

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
