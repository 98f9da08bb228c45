package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

// TasksForDay merges concrete tasks with the recurring instances due on
// the given day: templates stay hidden, instances belonging to other days
// are left out. The result is in sibling order and ready for projection.
func (s *PlannerService) TasksForDay(day time.Time) []model.Task {
	var base, templates, concrete []model.Task
	for _, t := range s.state.Tasks {
		switch {
		case t.IsTemplate():
			templates = append(templates, *t)
		case t.OriginalTaskID != nil:
			concrete = append(concrete, *t)
		default:
			base = append(base, *t)
		}
	}
	merged := append(base, planner.Expand(templates, day, concrete)...)
	planner.SortSiblings(merged)
	return merged
}

// Project applies page filters over a task set. Pure pass-through to the
// engine, exposed for view consumers.
func (s *PlannerService) Project(tasks []model.Task, f planner.Filters) []model.Task {
	return planner.Project(tasks, f)
}

func (s *PlannerService) dayExclusion(day time.Time) func(*model.Task) bool {
	return func(t *model.Task) bool {
		return s.state.DoToday.IsExcluded(planner.ExclusionKey(t), day)
	}
}

// NextAvailable picks the current focus task for the day, or nil when
// nothing is eligible. With focusOnly set, sections excluded from focus
// mode are skipped.
func (s *PlannerService) NextAvailable(day time.Time, focusOnly bool) *model.Task {
	return planner.NextAvailable(s.TasksForDay(day), s.Sections(), s.dayExclusion(day), focusOnly)
}

// Upcoming lists the tasks queued after the current focus task.
func (s *PlannerService) Upcoming(day time.Time, focusOnly bool) []model.Task {
	projected := s.TasksForDay(day)
	sections := s.Sections()
	excluded := s.dayExclusion(day)
	next := planner.NextAvailable(projected, sections, excluded, focusOnly)
	return planner.Upcoming(next, projected, sections, excluded, focusOnly, s.upcoming)
}

// ToggleDoToday flips a task's per-day exclusion. Key is the task id, or
// the template id for recurring instances (see planner.ExclusionKey).
// Returns the new state: true means hidden for the day.
func (s *PlannerService) ToggleDoToday(ctx context.Context, key uint, day time.Time) (bool, error) {
	snapshot := s.state.Clone()
	off := s.state.DoToday.Toggle(key, day)
	change := planner.DoTodayChange{TaskKey: key, Day: model.DayKey(day), Off: off}
	err := s.persist(snapshot, func() error {
		return s.store.SetDoToday(ctx, []planner.DoTodayChange{change})
	})
	if err != nil {
		return !off, err
	}
	return off, nil
}

// ToggleAllDoToday flips the visible tasks to the opposite of the current
// majority: at least half included means all become excluded.
func (s *PlannerService) ToggleAllDoToday(ctx context.Context, day time.Time, visible []model.Task) error {
	keys := make([]uint, 0, len(visible))
	for i := range visible {
		keys = append(keys, planner.ExclusionKey(&visible[i]))
	}
	snapshot := s.state.Clone()
	changes := s.state.DoToday.ToggleAll(keys, day)
	if len(changes) == 0 {
		return nil
	}
	return s.persist(snapshot, func() error { return s.store.SetDoToday(ctx, changes) })
}

// IsDoTodayOff reports whether the task is hidden for the day.
func (s *PlannerService) IsDoTodayOff(t *model.Task, day time.Time) bool {
	return s.state.DoToday.IsExcluded(planner.ExclusionKey(t), day)
}

// Maintenance runs the daily housekeeping: drop do-today state from past
// days and archive completed tasks that have sat untouched beyond the
// configured window. Wired to the scheduler; safe to call at any time.
func (s *PlannerService) Maintenance(ctx context.Context, now time.Time) error {
	snapshot := s.state.Clone()
	if dropped := s.state.DoToday.Prune(now); len(dropped) > 0 {
		if err := s.persist(snapshot, func() error {
			return s.store.PruneDoToday(ctx, model.DayKey(now))
		}); err != nil {
			return fmt.Errorf("prune do-today: %w", err)
		}
		log.Printf("[info] maintenance: pruned do-today state for %d day(s)", len(dropped))
	}

	if s.archiveAfter <= 0 {
		return nil
	}
	cutoff := now.Add(-s.archiveAfter)
	var ids []uint
	for _, t := range s.state.Tasks {
		if t.Status == model.StatusCompleted && !t.IsTemplate() && t.UpdatedAt.Before(cutoff) {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	snapshot = s.state.Clone()
	archivedAt := time.Now()
	for _, id := range ids {
		s.state.Tasks[id].Status = model.StatusArchived
		s.state.Tasks[id].UpdatedAt = archivedAt
	}
	if err := s.persist(snapshot, func() error { return s.store.ArchiveTasks(ctx, ids) }); err != nil {
		return fmt.Errorf("archive tasks: %w", err)
	}
	log.Printf("[info] maintenance: archived %d completed task(s)", len(ids))
	return nil
}
