package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

// DoTodayRepository persists the per-day exclusion overlay.
type DoTodayRepository struct {
	db *gorm.DB
}

func NewDoTodayRepository(db *gorm.DB) *DoTodayRepository {
	return &DoTodayRepository{db: db}
}

func (r *DoTodayRepository) List(ctx context.Context) ([]model.DoTodayOff, error) {
	var offs []model.DoTodayOff
	if err := r.db.WithContext(ctx).Find(&offs).Error; err != nil {
		return nil, fmt.Errorf("list do-today state: %w", err)
	}
	return offs, nil
}

// Set applies toggle changes: Off inserts the exclusion row (idempotent),
// otherwise the row is removed.
func (r *DoTodayRepository) Set(ctx context.Context, changes []planner.DoTodayChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range changes {
			if c.Off {
				row := model.DoTodayOff{TaskKey: c.TaskKey, Day: c.Day}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return fmt.Errorf("set do-today off: %w", err)
				}
				continue
			}
			if err := tx.Where("task_key = ? AND day = ?", c.TaskKey, c.Day).
				Delete(&model.DoTodayOff{}).Error; err != nil {
				return fmt.Errorf("clear do-today off: %w", err)
			}
		}
		return nil
	})
}

// Prune drops exclusion rows from days before the given day key.
func (r *DoTodayRepository) Prune(ctx context.Context, beforeDay string) error {
	if err := r.db.WithContext(ctx).
		Where("day < ?", beforeDay).
		Delete(&model.DoTodayOff{}).Error; err != nil {
		return fmt.Errorf("prune do-today state: %w", err)
	}
	return nil
}
