package planner

import (
	"sort"
	"strings"
	"time"

	"dayflow/internal/model"
)

// Filters is the per-view selection applied over the merged task set.
// Zero-value fields match everything. SectionID selects one section;
// NoSection selects the virtual "no section" bucket instead.
type Filters struct {
	Search     string
	Status     *model.TaskStatus
	CategoryID *uint
	Priority   *model.Priority
	SectionID  *uint
	NoSection  bool
	Due        func(*time.Time) bool
}

// DueOn matches tasks due exactly on the given day.
func DueOn(day time.Time) func(*time.Time) bool {
	return func(due *time.Time) bool {
		return due != nil && SameDay(*due, day)
	}
}

// DueBy matches tasks due on the given day or overdue, plus undated ones.
func DueBy(day time.Time) func(*time.Time) bool {
	end := startOfDay(day).AddDate(0, 0, 1)
	return func(due *time.Time) bool {
		return due == nil || due.Before(end)
	}
}

// Project filters tasks without reordering them. Pure: the input slice is
// never modified.
func Project(tasks []model.Task, f Filters) []model.Task {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []model.Task
	for _, t := range tasks {
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		if f.NoSection && t.SectionID != nil {
			continue
		}
		if f.SectionID != nil && (t.SectionID == nil || *t.SectionID != *f.SectionID) {
			continue
		}
		if f.Due != nil && !f.Due(t.DueDate) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortSiblings orders a task slice by sibling order (sort_order, then
// created_at, then id) in place. Callers group by scope or section first
// when the view needs it.
func SortSiblings(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return lessTasks(&tasks[i], &tasks[j])
	})
}
