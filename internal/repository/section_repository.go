package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

// SectionRepository manages the ordered section list.
type SectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

func (r *SectionRepository) List(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&sections).Error; err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

func (r *SectionRepository) Save(ctx context.Context, section *model.Section) error {
	if err := r.db.WithContext(ctx).Save(section).Error; err != nil {
		return fmt.Errorf("save section: %w", err)
	}
	return nil
}

func applySectionOrder(db *gorm.DB, updates []planner.SectionOrderUpdate) error {
	for _, u := range updates {
		res := db.Model(&model.Section{}).Where("id = ?", u.ID).
			Update("sort_order", u.SortOrder)
		if res.Error != nil {
			return fmt.Errorf("update section %d order: %w", u.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("update section order: %w: section %d", planner.ErrNotFound, u.ID)
		}
	}
	return nil
}
