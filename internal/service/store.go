package service

import (
	"context"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

// Store is the persistence boundary the planner writes back through.
// Writes are single-record except for the batched methods, which the
// implementation must apply as one logical transaction: a reorder either
// fully commits or leaves the store untouched. Implementations map their
// record-missing error to planner.ErrNotFound.
type Store interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	LoadSections(ctx context.Context) ([]model.Section, error)
	LoadCategories(ctx context.Context) ([]model.Category, error)
	LoadDoToday(ctx context.Context) ([]model.DoTodayOff, error)

	PutTask(ctx context.Context, task *model.Task) error
	// DeleteTasks removes the ids and applies the renumbering that
	// closes the gap, atomically.
	DeleteTasks(ctx context.Context, ids []uint, updates []planner.OrderUpdate) error

	PutSection(ctx context.Context, section *model.Section) error
	// DeleteSection removes the section, moves its tasks per updates,
	// and compacts the section list, atomically.
	DeleteSection(ctx context.Context, id uint, taskUpdates []planner.OrderUpdate, sectionUpdates []planner.SectionOrderUpdate) error

	PutCategory(ctx context.Context, category *model.Category) error
	// DeleteCategory removes the category and clears it from its tasks.
	DeleteCategory(ctx context.Context, id uint) error

	ApplyReorder(ctx context.Context, updates []planner.OrderUpdate) error
	ApplySectionOrder(ctx context.Context, updates []planner.SectionOrderUpdate) error

	SetDoToday(ctx context.Context, changes []planner.DoTodayChange) error
	PruneDoToday(ctx context.Context, beforeDay string) error

	ArchiveTasks(ctx context.Context, ids []uint) error
}
