package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dayflow/internal/config"
	"dayflow/internal/model"
	"dayflow/internal/planner"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Description   string
	Notes         string
	Link          string
	ParentTaskID  *uint
	SectionID     *uint
	CategoryID    *uint
	Priority      model.Priority
	DueDate       *time.Time
	RecurringType model.RecurringType
}

// TaskPatch holds the fields an edit command may change. Nil fields are
// left alone; the Clear flags null out their column.
type TaskPatch struct {
	Description   *string
	Notes         *string
	Link          *string
	Priority      *model.Priority
	DueDate       *time.Time
	ClearDueDate  bool
	CategoryID    *uint
	ClearCategory bool
	RecurringType *model.RecurringType
}

// PlannerService is the command facade over the planning engine. Every
// mutation applies to the in-memory arena first, then persists through
// the Store with a bounded retry; when the write keeps failing the arena
// rolls back to the pre-mutation snapshot and the caller gets a single
// error. Built for one client: callers do not invoke it concurrently.
type PlannerService struct {
	store         Store
	state         *planner.State
	drag          *planner.DragSession
	retryAttempts int
	retryDelay    time.Duration
	upcoming      int
	archiveAfter  time.Duration
}

func NewPlannerService(store Store, cfg config.Config) *PlannerService {
	return &PlannerService{
		store:         store,
		state:         planner.NewState(),
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		upcoming:      cfg.UpcomingCount,
		archiveAfter:  time.Duration(cfg.ArchiveAfterDays) * 24 * time.Hour,
	}
}

// Load populates the arena from the store.
func (s *PlannerService) Load(ctx context.Context) error {
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	sections, err := s.store.LoadSections(ctx)
	if err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	categories, err := s.store.LoadCategories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	offs, err := s.store.LoadDoToday(ctx)
	if err != nil {
		return fmt.Errorf("load do-today state: %w", err)
	}

	st := planner.NewState()
	for i := range tasks {
		t := tasks[i]
		st.Tasks[t.ID] = &t
	}
	for i := range sections {
		sec := sections[i]
		st.Sections[sec.ID] = &sec
	}
	for i := range categories {
		cat := categories[i]
		cat.Tasks = nil
		st.Categories[cat.ID] = &cat
	}
	for _, off := range offs {
		if st.DoToday[off.Day] == nil {
			st.DoToday[off.Day] = make(map[uint]bool)
		}
		st.DoToday[off.Day][off.TaskKey] = true
	}
	s.state = st
	return nil
}

// persist runs the store write with bounded retries. A NotFound from the
// store (the record vanished under us, e.g. another tab) skips the
// retries. Exhausted retries and NotFound both roll the arena back to
// snapshot.
func (s *PlannerService) persist(snapshot *planner.State, write func() error) error {
	var err error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if err = write(); err == nil {
			return nil
		}
		if errors.Is(err, planner.ErrNotFound) {
			break
		}
		time.Sleep(s.retryDelay)
	}
	s.state = snapshot
	if errors.Is(err, planner.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", planner.ErrPersistence, err)
}

func (s *PlannerService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return nil, fmt.Errorf("%w: description is empty", planner.ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = model.PriorityNone
	}
	if !validPriority(input.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", planner.ErrValidation, input.Priority)
	}
	if input.RecurringType == "" {
		input.RecurringType = model.RecurNone
	}
	if !validRecurring(input.RecurringType) {
		return nil, fmt.Errorf("%w: unknown recurring type %q", planner.ErrValidation, input.RecurringType)
	}
	if input.ParentTaskID != nil {
		if _, ok := s.state.Tasks[*input.ParentTaskID]; !ok {
			return nil, fmt.Errorf("%w: parent task %d", planner.ErrNotFound, *input.ParentTaskID)
		}
	}
	if input.SectionID != nil {
		if _, ok := s.state.Sections[*input.SectionID]; !ok {
			return nil, fmt.Errorf("%w: section %d", planner.ErrNotFound, *input.SectionID)
		}
	}
	if input.CategoryID != nil {
		if _, ok := s.state.Categories[*input.CategoryID]; !ok {
			return nil, fmt.Errorf("%w: category %d", planner.ErrNotFound, *input.CategoryID)
		}
	}

	now := time.Now()
	task := model.Task{
		Description:   input.Description,
		Notes:         input.Notes,
		Link:          input.Link,
		Status:        model.StatusToDo,
		ParentTaskID:  input.ParentTaskID,
		SectionID:     input.SectionID,
		CategoryID:    input.CategoryID,
		Priority:      input.Priority,
		DueDate:       input.DueDate,
		RecurringType: input.RecurringType,
		SortOrder:     planner.AppendOrder(s.state, input.ParentTaskID, input.SectionID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	snapshot := s.state.Clone()
	if err := s.persist(snapshot, func() error { return s.store.PutTask(ctx, &task) }); err != nil {
		return nil, err
	}
	s.state.Tasks[task.ID] = &task
	copied := task
	return &copied, nil
}

func (s *PlannerService) UpdateTask(ctx context.Context, id uint, patch TaskPatch) (*model.Task, error) {
	task, ok := s.state.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %d", planner.ErrNotFound, id)
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return nil, fmt.Errorf("%w: description is empty", planner.ErrValidation)
	}
	if patch.Priority != nil && !validPriority(*patch.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", planner.ErrValidation, *patch.Priority)
	}
	if patch.RecurringType != nil && !validRecurring(*patch.RecurringType) {
		return nil, fmt.Errorf("%w: unknown recurring type %q", planner.ErrValidation, *patch.RecurringType)
	}
	if patch.CategoryID != nil {
		if _, ok := s.state.Categories[*patch.CategoryID]; !ok {
			return nil, fmt.Errorf("%w: category %d", planner.ErrNotFound, *patch.CategoryID)
		}
	}

	snapshot := s.state.Clone()
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}
	if patch.Link != nil {
		task.Link = *patch.Link
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		task.DueDate = &due
	}
	if patch.ClearCategory {
		task.CategoryID = nil
	} else if patch.CategoryID != nil {
		cat := *patch.CategoryID
		task.CategoryID = &cat
	}
	if patch.RecurringType != nil {
		task.RecurringType = *patch.RecurringType
	}
	task.UpdatedAt = time.Now()

	if err := s.persist(snapshot, func() error { return s.store.PutTask(ctx, task) }); err != nil {
		return nil, err
	}
	copied := *task
	return &copied, nil
}

// SetStatus changes a persisted task's status.
func (s *PlannerService) SetStatus(ctx context.Context, id uint, status model.TaskStatus) (*model.Task, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", planner.ErrValidation, status)
	}
	task, ok := s.state.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %d", planner.ErrNotFound, id)
	}
	snapshot := s.state.Clone()
	task.Status = status
	task.UpdatedAt = time.Now()
	if err := s.persist(snapshot, func() error { return s.store.PutTask(ctx, task) }); err != nil {
		return nil, err
	}
	copied := *task
	return &copied, nil
}

// SetVirtualStatus mutates a recurring instance for the given day. The
// first mutation materializes the transient instance as a concrete row
// pointing at its template; later ones go through SetStatus.
func (s *PlannerService) SetVirtualStatus(ctx context.Context, originalID uint, day time.Time, status model.TaskStatus) (*model.Task, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", planner.ErrValidation, status)
	}
	tpl, ok := s.state.Tasks[originalID]
	if !ok {
		return nil, fmt.Errorf("%w: template task %d", planner.ErrNotFound, originalID)
	}
	if !tpl.IsTemplate() {
		return nil, fmt.Errorf("%w: task %d is not a recurring template", planner.ErrValidation, originalID)
	}
	for _, t := range s.state.Tasks {
		if t.OriginalTaskID != nil && *t.OriginalTaskID == originalID &&
			t.DueDate != nil && planner.SameDay(*t.DueDate, day) {
			return s.SetStatus(ctx, t.ID, status)
		}
	}

	instances := planner.Expand([]model.Task{*tpl}, day, nil)
	if len(instances) == 0 {
		return nil, fmt.Errorf("%w: template %d is not due on %s", planner.ErrValidation, originalID, model.DayKey(day))
	}
	inst := instances[0]
	inst.Status = status
	inst.VirtualID = ""
	// CreatedAt stays inherited from the template so the materialized row
	// keeps the same ordering tie-break as its still-virtual siblings

	snapshot := s.state.Clone()
	if err := s.persist(snapshot, func() error { return s.store.PutTask(ctx, &inst) }); err != nil {
		return nil, err
	}
	s.state.Tasks[inst.ID] = &inst
	copied := inst
	return &copied, nil
}

// DeleteTask removes a task and its whole subtree, then compacts the
// sibling group it left.
func (s *PlannerService) DeleteTask(ctx context.Context, id uint) error {
	task, ok := s.state.Tasks[id]
	if !ok {
		return fmt.Errorf("%w: task %d", planner.ErrNotFound, id)
	}
	ids := append([]uint{id}, s.state.Descendants(id)...)
	parentID, sectionID := task.ParentTaskID, task.SectionID

	snapshot := s.state.Clone()
	for _, victim := range ids {
		delete(s.state.Tasks, victim)
	}
	updates := planner.RenumberScope(s.state, parentID, sectionID)
	return s.persist(snapshot, func() error { return s.store.DeleteTasks(ctx, ids, updates) })
}

// Reorder moves a task to a new parent, section, and position in one
// batched, transactional write-back.
func (s *PlannerService) Reorder(ctx context.Context, req planner.ReorderRequest) error {
	snapshot := s.state.Clone()
	updates, err := planner.Reorder(s.state, req)
	if err != nil {
		return err
	}
	return s.persist(snapshot, func() error { return s.store.ApplyReorder(ctx, updates) })
}

// ReorderSection moves a section within the global section list.
func (s *PlannerService) ReorderSection(ctx context.Context, activeID uint, overID *uint, movingForward bool) error {
	snapshot := s.state.Clone()
	updates, err := planner.ReorderSections(s.state, activeID, overID, movingForward)
	if err != nil {
		return err
	}
	return s.persist(snapshot, func() error { return s.store.ApplySectionOrder(ctx, updates) })
}

// BeginDrag opens a drag session for the task, snapshotting the order
// state for rollback. Only one session may be in flight.
func (s *PlannerService) BeginDrag(activeID uint) error {
	if s.drag != nil {
		return fmt.Errorf("%w: a drag is already in flight", planner.ErrValidation)
	}
	drag, err := planner.BeginDrag(s.state, activeID)
	if err != nil {
		return err
	}
	s.drag = drag
	return nil
}

// UpdateDrag computes the current insertion indicator without mutating
// canonical state.
func (s *PlannerService) UpdateDrag(req planner.ReorderRequest) (planner.DragPreview, error) {
	if s.drag == nil {
		return planner.DragPreview{}, fmt.Errorf("%w: no drag in flight", planner.ErrValidation)
	}
	return s.drag.Preview(s.state, req)
}

// CommitDrag performs the single reorder of the session. On persistence
// failure the arena rolls back to the state captured at BeginDrag. The
// session ends either way.
func (s *PlannerService) CommitDrag(ctx context.Context, req planner.ReorderRequest) error {
	if s.drag == nil {
		return fmt.Errorf("%w: no drag in flight", planner.ErrValidation)
	}
	drag := s.drag
	s.drag = nil
	req.ActiveID = drag.ActiveID
	updates, err := planner.Reorder(s.state, req)
	if err != nil {
		return err
	}
	return s.persist(drag.Snapshot(), func() error { return s.store.ApplyReorder(ctx, updates) })
}

// CancelDrag discards the session without touching state.
func (s *PlannerService) CancelDrag() {
	s.drag = nil
}

func validStatus(st model.TaskStatus) bool {
	switch st {
	case model.StatusToDo, model.StatusCompleted, model.StatusSkipped, model.StatusArchived:
		return true
	}
	return false
}

func validPriority(p model.Priority) bool {
	switch p {
	case model.PriorityNone, model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
		return true
	}
	return false
}

func validRecurring(r model.RecurringType) bool {
	switch r {
	case model.RecurNone, model.RecurDaily, model.RecurWeekly, model.RecurMonthly:
		return true
	}
	return false
}
