package repository

import (
	"context"

	"github.com/sefazor/campus-events-backend/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	return result.RowsAffected, result.Error
}

// EnsureExists inserts the category unless one with the same name exists.
func (r *CategoryRepository) EnsureExists(ctx context.Context, name string) (bool, error) {
	category := models.Category{Name: name}
	result := r.db.WithContext(ctx).Where(models.Category{Name: name}).FirstOrCreate(&category)
	return result.RowsAffected > 0, result.Error
}
