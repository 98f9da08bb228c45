package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dayflow/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

// Delete removes the category and detaches it from its tasks in one
// transaction.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach category %d: %w", id, err)
		}
		if err := tx.Delete(&model.Category{}, id).Error; err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		return nil
	})
}
