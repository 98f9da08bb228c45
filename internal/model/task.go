package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusToDo      TaskStatus = "to-do"
	StatusCompleted TaskStatus = "completed"
	StatusSkipped   TaskStatus = "skipped"
	StatusArchived  TaskStatus = "archived"
)

// Priority ranks a task for display and filtering.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// RecurringType describes how often a template task repeats.
type RecurringType string

const (
	RecurNone    RecurringType = "none"
	RecurDaily   RecurringType = "daily"
	RecurWeekly  RecurringType = "weekly"
	RecurMonthly RecurringType = "monthly"
)

// Task represents a single item in the planner. A task with
// RecurringType != none and no OriginalTaskID is a template; instances
// derived from it point back via OriginalTaskID. An instance that has
// never been mutated exists only in memory and is identified by VirtualID
// instead of a row id.
type Task struct {
	ID             uint `gorm:"primaryKey"`
	Description    string
	Notes          string
	Link           string
	Status         TaskStatus `gorm:"index;default:to-do"`
	ParentTaskID   *uint      `gorm:"index"`
	SectionID      *uint      `gorm:"index"`
	CategoryID     *uint      `gorm:"index"`
	Priority       Priority   `gorm:"default:none"`
	DueDate        *time.Time
	RecurringType  RecurringType `gorm:"default:none"`
	OriginalTaskID *uint         `gorm:"index"`
	SortOrder      int           `gorm:"index"`
	VirtualID      string        `gorm:"-"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Persisted reports whether the task is backed by a store row.
func (t *Task) Persisted() bool {
	return t.ID != 0
}

// IsTemplate reports whether the task is a recurring template. A zero
// RecurringType counts as non-recurring, same as RecurNone.
func (t *Task) IsTemplate() bool {
	return t.RecurringType != "" && t.RecurringType != RecurNone && t.OriginalTaskID == nil
}

// TopLevel reports whether the task has no parent.
func (t *Task) TopLevel() bool {
	return t.ParentTaskID == nil
}
