package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

// GormStore is the sqlite-backed store behind the planner. Batched
// methods run inside one transaction so a reorder or cascade delete
// either fully lands or leaves the database untouched.
type GormStore struct {
	db         *gorm.DB
	tasks      *TaskRepository
	sections   *SectionRepository
	categories *CategoryRepository
	dotoday    *DoTodayRepository
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:         db,
		tasks:      NewTaskRepository(db),
		sections:   NewSectionRepository(db),
		categories: NewCategoryRepository(db),
		dotoday:    NewDoTodayRepository(db),
	}
}

func (s *GormStore) LoadTasks(ctx context.Context) ([]model.Task, error) {
	return s.tasks.List(ctx)
}

func (s *GormStore) LoadSections(ctx context.Context) ([]model.Section, error) {
	return s.sections.List(ctx)
}

func (s *GormStore) LoadCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *GormStore) LoadDoToday(ctx context.Context) ([]model.DoTodayOff, error) {
	return s.dotoday.List(ctx)
}

func (s *GormStore) PutTask(ctx context.Context, task *model.Task) error {
	return s.tasks.Save(ctx, task)
}

func (s *GormStore) DeleteTasks(ctx context.Context, ids []uint, updates []planner.OrderUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			if err := tx.Delete(&model.Task{}, ids).Error; err != nil {
				return fmt.Errorf("delete tasks: %w", err)
			}
		}
		return applyTaskOrder(tx, updates)
	})
}

func (s *GormStore) PutSection(ctx context.Context, section *model.Section) error {
	return s.sections.Save(ctx, section)
}

func (s *GormStore) DeleteSection(ctx context.Context, id uint, taskUpdates []planner.OrderUpdate, sectionUpdates []planner.SectionOrderUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyTaskOrder(tx, taskUpdates); err != nil {
			return err
		}
		if err := applySectionOrder(tx, sectionUpdates); err != nil {
			return err
		}
		if err := tx.Delete(&model.Section{}, id).Error; err != nil {
			return fmt.Errorf("delete section %d: %w", id, err)
		}
		return nil
	})
}

func (s *GormStore) PutCategory(ctx context.Context, category *model.Category) error {
	return s.categories.Save(ctx, category)
}

func (s *GormStore) DeleteCategory(ctx context.Context, id uint) error {
	return s.categories.Delete(ctx, id)
}

func (s *GormStore) ApplyReorder(ctx context.Context, updates []planner.OrderUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyTaskOrder(tx, updates)
	})
}

func (s *GormStore) ApplySectionOrder(ctx context.Context, updates []planner.SectionOrderUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applySectionOrder(tx, updates)
	})
}

func (s *GormStore) SetDoToday(ctx context.Context, changes []planner.DoTodayChange) error {
	return s.dotoday.Set(ctx, changes)
}

func (s *GormStore) PruneDoToday(ctx context.Context, beforeDay string) error {
	return s.dotoday.Prune(ctx, beforeDay)
}

func (s *GormStore) ArchiveTasks(ctx context.Context, ids []uint) error {
	return s.tasks.Archive(ctx, ids)
}
