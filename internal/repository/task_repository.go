package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Save creates the task when it has no id yet and updates it otherwise.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Archive flips the given tasks to archived in one statement.
func (r *TaskRepository) Archive(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id IN ?", ids).
		Update("status", model.StatusArchived).Error; err != nil {
		return fmt.Errorf("archive tasks: %w", err)
	}
	return nil
}

// applyTaskOrder writes one batch of reorder rows. A row that matches no
// task means it was removed under us; surfaced as planner.ErrNotFound so
// the caller rolls back.
func applyTaskOrder(db *gorm.DB, updates []planner.OrderUpdate) error {
	for _, u := range updates {
		res := db.Model(&model.Task{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
			"sort_order":     u.SortOrder,
			"parent_task_id": u.ParentTaskID,
			"section_id":     u.SectionID,
		})
		if res.Error != nil {
			return fmt.Errorf("update task %d order: %w", u.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("update task order: %w: task %d", planner.ErrNotFound, u.ID)
		}
	}
	return nil
}
