package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"dayflow/internal/model"
	"dayflow/internal/planner"
)

func (s *PlannerService) CreateSection(ctx context.Context, name string, includeInFocus bool) (*model.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: section name is empty", planner.ErrValidation)
	}
	if s.findSection(name) != nil {
		return nil, fmt.Errorf("%w: section %q already exists", planner.ErrValidation, name)
	}

	now := time.Now()
	section := model.Section{
		Name:               name,
		SortOrder:          len(s.state.Sections),
		IncludeInFocusMode: includeInFocus,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	snapshot := s.state.Clone()
	if err := s.persist(snapshot, func() error { return s.store.PutSection(ctx, &section) }); err != nil {
		return nil, err
	}
	s.state.Sections[section.ID] = &section
	copied := section
	return &copied, nil
}

func (s *PlannerService) UpdateSection(ctx context.Context, id uint, name *string, includeInFocus *bool) (*model.Section, error) {
	section, ok := s.state.Sections[id]
	if !ok {
		return nil, fmt.Errorf("%w: section %d", planner.ErrNotFound, id)
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: section name is empty", planner.ErrValidation)
		}
		if existing := s.findSection(trimmed); existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: section %q already exists", planner.ErrValidation, trimmed)
		}
		*name = trimmed
	}

	snapshot := s.state.Clone()
	if name != nil {
		section.Name = *name
	}
	if includeInFocus != nil {
		section.IncludeInFocusMode = *includeInFocus
	}
	section.UpdatedAt = time.Now()
	if err := s.persist(snapshot, func() error { return s.store.PutSection(ctx, section) }); err != nil {
		return nil, err
	}
	copied := *section
	return &copied, nil
}

// DeleteSection removes the section; its tasks keep their relative order
// and fall back to the no-section bucket.
func (s *PlannerService) DeleteSection(ctx context.Context, id uint) error {
	if _, ok := s.state.Sections[id]; !ok {
		return fmt.Errorf("%w: section %d", planner.ErrNotFound, id)
	}
	snapshot := s.state.Clone()
	taskUpdates := planner.DissolveSection(s.state, id)
	delete(s.state.Sections, id)

	var sectionUpdates []planner.SectionOrderUpdate
	for i, sec := range s.state.SortedSections() {
		if sec.SortOrder != i {
			sec.SortOrder = i
			sectionUpdates = append(sectionUpdates, planner.SectionOrderUpdate{ID: sec.ID, SortOrder: i})
		}
	}
	return s.persist(snapshot, func() error {
		return s.store.DeleteSection(ctx, id, taskUpdates, sectionUpdates)
	})
}

func (s *PlannerService) CreateCategory(ctx context.Context, name, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is empty", planner.ErrValidation)
	}
	if color == "" {
		color = "gray"
	}
	if !model.ValidCategoryColor(color) {
		return nil, fmt.Errorf("%w: unknown category color %q", planner.ErrValidation, color)
	}
	if s.findCategory(name) != nil {
		return nil, fmt.Errorf("%w: category %q already exists", planner.ErrValidation, name)
	}

	now := time.Now()
	category := model.Category{Name: name, Color: color, CreatedAt: now, UpdatedAt: now}
	snapshot := s.state.Clone()
	if err := s.persist(snapshot, func() error { return s.store.PutCategory(ctx, &category) }); err != nil {
		return nil, err
	}
	s.state.Categories[category.ID] = &category
	copied := category
	return &copied, nil
}

func (s *PlannerService) UpdateCategory(ctx context.Context, id uint, name, color *string) (*model.Category, error) {
	category, ok := s.state.Categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: category %d", planner.ErrNotFound, id)
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: category name is empty", planner.ErrValidation)
		}
		if existing := s.findCategory(trimmed); existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: category %q already exists", planner.ErrValidation, trimmed)
		}
		*name = trimmed
	}
	if color != nil && !model.ValidCategoryColor(*color) {
		return nil, fmt.Errorf("%w: unknown category color %q", planner.ErrValidation, *color)
	}

	snapshot := s.state.Clone()
	if name != nil {
		category.Name = *name
	}
	if color != nil {
		category.Color = *color
	}
	category.UpdatedAt = time.Now()
	if err := s.persist(snapshot, func() error { return s.store.PutCategory(ctx, category) }); err != nil {
		return nil, err
	}
	copied := *category
	return &copied, nil
}

// DeleteCategory removes the category and detaches it from its tasks.
func (s *PlannerService) DeleteCategory(ctx context.Context, id uint) error {
	if _, ok := s.state.Categories[id]; !ok {
		return fmt.Errorf("%w: category %d", planner.ErrNotFound, id)
	}
	snapshot := s.state.Clone()
	for _, t := range s.state.Tasks {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	delete(s.state.Categories, id)
	return s.persist(snapshot, func() error { return s.store.DeleteCategory(ctx, id) })
}

// EnsureCategory finds a category by name, creating it when missing.
func (s *PlannerService) EnsureCategory(ctx context.Context, name string) (*model.Category, error) {
	if existing := s.findCategory(name); existing != nil {
		copied := *existing
		return &copied, nil
	}
	return s.CreateCategory(ctx, name, "")
}

func (s *PlannerService) findSection(name string) *model.Section {
	for _, sec := range s.state.Sections {
		if strings.EqualFold(sec.Name, name) {
			return sec
		}
	}
	return nil
}

func (s *PlannerService) findCategory(name string) *model.Category {
	for _, cat := range s.state.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat
		}
	}
	return nil
}

// Task returns a copy of one persisted task.
func (s *PlannerService) Task(id uint) (*model.Task, error) {
	task, ok := s.state.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %d", planner.ErrNotFound, id)
	}
	copied := *task
	return &copied, nil
}

// Tasks returns copies of every persisted task, in sibling order.
func (s *PlannerService) Tasks() []model.Task {
	out := make([]model.Task, 0, len(s.state.Tasks))
	for _, t := range s.state.Tasks {
		out = append(out, *t)
	}
	planner.SortSiblings(out)
	return out
}

// Sections returns copies of all sections in list order.
func (s *PlannerService) Sections() []model.Section {
	sorted := s.state.SortedSections()
	out := make([]model.Section, 0, len(sorted))
	for _, sec := range sorted {
		out = append(out, *sec)
	}
	return out
}

// Categories returns copies of all categories sorted by name.
func (s *PlannerService) Categories() []model.Category {
	out := make([]model.Category, 0, len(s.state.Categories))
	for _, cat := range s.state.Categories {
		out = append(out, *cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SectionByName resolves a section by case-insensitive name.
func (s *PlannerService) SectionByName(name string) (*model.Section, error) {
	if sec := s.findSection(name); sec != nil {
		copied := *sec
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: section %q", planner.ErrNotFound, name)
}

// CategoryByName resolves a category by case-insensitive name.
func (s *PlannerService) CategoryByName(name string) (*model.Category, error) {
	if cat := s.findCategory(name); cat != nil {
		copied := *cat
		return &copied, nil
	}
	return nil, fmt.Errorf("%w: category %q", planner.ErrNotFound, name)
}
