package planner

import (
	"errors"
	"testing"
	"time"

	"dayflow/internal/model"
)

func uptr(v uint) *uint { return &v }

func task(id uint, parent, section *uint, order int) *model.Task {
	return &model.Task{
		ID:           id,
		Description:  "task",
		Status:       model.StatusToDo,
		ParentTaskID: parent,
		SectionID:    section,
		SortOrder:    order,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute),
	}
}

func stateWith(tasks []*model.Task, sections []*model.Section) *State {
	st := NewState()
	for _, t := range tasks {
		st.Tasks[t.ID] = t
	}
	for _, sec := range sections {
		st.Sections[sec.ID] = sec
	}
	return st
}

func assertScopeOrders(t *testing.T, st *State, parent, section *uint, want []uint) {
	t.Helper()
	got := st.siblings(scopeKey(parent, section), 0)
	if len(got) != len(want) {
		t.Fatalf("scope has %d tasks, want %d", len(got), len(want))
	}
	for i, tk := range got {
		if tk.ID != want[i] {
			t.Errorf("position %d: got task %d, want %d", i, tk.ID, want[i])
		}
		if tk.SortOrder != i {
			t.Errorf("task %d: sort order %d, want %d", tk.ID, tk.SortOrder, i)
		}
	}
}

func TestReorderBeforeSibling(t *testing.T) {
	sec := &model.Section{ID: 1, Name: "S"}
	a := task(1, nil, uptr(1), 0)
	b := task(2, nil, uptr(1), 1)
	st := stateWith([]*model.Task{a, b}, []*model.Section{sec})

	updates, err := Reorder(st, ReorderRequest{
		ActiveID:     2,
		NewSectionID: uptr(1),
		OverTaskID:   uptr(1),
	})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if b.SortOrder >= a.SortOrder {
		t.Errorf("B order %d not before A order %d", b.SortOrder, a.SortOrder)
	}
	if b.SectionID == nil || *b.SectionID != 1 || a.SectionID == nil || *a.SectionID != 1 {
		t.Error("tasks left section S")
	}
	assertScopeOrders(t, st, nil, uptr(1), []uint{2, 1})
	if len(updates) == 0 {
		t.Error("no write-back emitted")
	}
}

func TestReorderAfterSibling(t *testing.T) {
	a := task(1, nil, nil, 0)
	b := task(2, nil, nil, 1)
	c := task(3, nil, nil, 2)
	st := stateWith([]*model.Task{a, b, c}, nil)

	_, err := Reorder(st, ReorderRequest{ActiveID: 1, OverTaskID: uptr(2), MovingForward: true})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	assertScopeOrders(t, st, nil, nil, []uint{2, 1, 3})
}

func TestReorderIntoEmptySectionAppends(t *testing.T) {
	s1 := &model.Section{ID: 1, Name: "S1"}
	s2 := &model.Section{ID: 2, Name: "S2", SortOrder: 1}
	moved := task(1, nil, uptr(1), 0)
	left := task(2, nil, uptr(1), 1)
	st := stateWith([]*model.Task{moved, left}, []*model.Section{s1, s2})

	_, err := Reorder(st, ReorderRequest{ActiveID: 1, NewSectionID: uptr(2)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if moved.SectionID == nil || *moved.SectionID != 2 {
		t.Fatalf("task not in S2: %v", moved.SectionID)
	}
	if moved.SortOrder != 0 {
		t.Errorf("sort order = %d, want 0", moved.SortOrder)
	}
	// old scope compacted
	assertScopeOrders(t, st, nil, uptr(1), []uint{2})
}

func TestReorderOntoSectionHeader(t *testing.T) {
	s1 := &model.Section{ID: 1, Name: "S1"}
	s2 := &model.Section{ID: 2, Name: "S2", SortOrder: 1}
	first := task(1, nil, uptr(2), 0)
	moved := task(2, nil, uptr(1), 0)
	st := stateWith([]*model.Task{first, moved}, []*model.Section{s1, s2})

	_, err := Reorder(st, ReorderRequest{ActiveID: 2, OverSectionID: uptr(2)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	assertScopeOrders(t, st, nil, uptr(2), []uint{2, 1})
	if moved.ParentTaskID != nil {
		t.Error("dropping on a header must make the task top-level")
	}
}

func TestReorderUnderParent(t *testing.T) {
	parent := task(1, nil, nil, 0)
	child := task(2, uptr(1), nil, 0)
	moved := task(3, nil, nil, 1)
	st := stateWith([]*model.Task{parent, child, moved}, nil)

	_, err := Reorder(st, ReorderRequest{ActiveID: 3, NewParentID: uptr(1)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	assertScopeOrders(t, st, uptr(1), nil, []uint{2, 3})
	assertScopeOrders(t, st, nil, nil, []uint{1})
}

func TestReorderMovesSubtreeSection(t *testing.T) {
	s1 := &model.Section{ID: 1, Name: "S1"}
	s2 := &model.Section{ID: 2, Name: "S2", SortOrder: 1}
	parent := task(1, nil, uptr(1), 0)
	child := task(2, uptr(1), uptr(1), 0)
	grand := task(3, uptr(2), uptr(1), 0)
	st := stateWith([]*model.Task{parent, child, grand}, []*model.Section{s1, s2})

	updates, err := Reorder(st, ReorderRequest{ActiveID: 1, NewSectionID: uptr(2)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	updated := make(map[uint]OrderUpdate, len(updates))
	for _, u := range updates {
		updated[u.ID] = u
	}
	for _, tk := range []*model.Task{parent, child, grand} {
		if tk.SectionID == nil || *tk.SectionID != 2 {
			t.Errorf("task %d section = %v, want 2", tk.ID, tk.SectionID)
		}
		u, ok := updated[tk.ID]
		if !ok {
			t.Errorf("no write-back row for task %d", tk.ID)
			continue
		}
		if u.SectionID == nil || *u.SectionID != 2 {
			t.Errorf("write-back for task %d carries section %v, want 2", tk.ID, u.SectionID)
		}
	}
	// subtree-internal order untouched
	assertScopeOrders(t, st, uptr(1), uptr(2), []uint{2})
	assertScopeOrders(t, st, uptr(2), uptr(2), []uint{3})
}

func TestReorderCycleRejected(t *testing.T) {
	root := task(1, nil, nil, 0)
	mid := task(2, uptr(1), nil, 0)
	leaf := task(3, uptr(2), nil, 0)
	st := stateWith([]*model.Task{root, mid, leaf}, nil)

	tests := []struct {
		name   string
		parent uint
	}{
		{"own id", 1},
		{"direct child", 2},
		{"deep descendant", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reorder(st, ReorderRequest{ActiveID: 1, NewParentID: uptr(tt.parent)})
			if !errors.Is(err, ErrCycle) {
				t.Fatalf("got %v, want ErrCycle", err)
			}
			// no state change
			if root.ParentTaskID != nil || root.SortOrder != 0 {
				t.Error("state changed on rejected reorder")
			}
		})
	}
}

func TestReorderMissingIDs(t *testing.T) {
	a := task(1, nil, nil, 0)
	st := stateWith([]*model.Task{a}, nil)

	if _, err := Reorder(st, ReorderRequest{ActiveID: 99}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing active: got %v, want ErrNotFound", err)
	}
	if _, err := Reorder(st, ReorderRequest{ActiveID: 1, OverTaskID: uptr(99)}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing over: got %v, want ErrNotFound", err)
	}
	if _, err := Reorder(st, ReorderRequest{ActiveID: 1, NewSectionID: uptr(9)}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing section: got %v, want ErrNotFound", err)
	}
}

func TestReorderLegacyEqualOrders(t *testing.T) {
	// legacy data may carry equal orders; created_at breaks the tie
	a := task(1, nil, nil, 0)
	b := task(2, nil, nil, 0)
	c := task(3, nil, nil, 0)
	st := stateWith([]*model.Task{a, b, c}, nil)

	_, err := Reorder(st, ReorderRequest{ActiveID: 3, OverTaskID: uptr(1)})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	assertScopeOrders(t, st, nil, nil, []uint{3, 1, 2})
}

func TestReorderSections(t *testing.T) {
	s1 := &model.Section{ID: 1, SortOrder: 0}
	s2 := &model.Section{ID: 2, SortOrder: 1}
	s3 := &model.Section{ID: 3, SortOrder: 2}
	st := stateWith(nil, []*model.Section{s1, s2, s3})

	updates, err := ReorderSections(st, 3, uptr(1), false)
	if err != nil {
		t.Fatalf("ReorderSections failed: %v", err)
	}
	order := st.SortedSections()
	want := []uint{3, 1, 2}
	for i, sec := range order {
		if sec.ID != want[i] {
			t.Errorf("position %d: got section %d, want %d", i, sec.ID, want[i])
		}
	}
	if len(updates) == 0 {
		t.Error("no write-back emitted")
	}

	if _, err := ReorderSections(st, 9, nil, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing section: got %v, want ErrNotFound", err)
	}
}

func TestRenumberScopeClosesGap(t *testing.T) {
	a := task(1, nil, nil, 0)
	c := task(3, nil, nil, 5)
	e := task(5, nil, nil, 9)
	st := stateWith([]*model.Task{a, c, e}, nil)

	updates := RenumberScope(st, nil, nil)
	assertScopeOrders(t, st, nil, nil, []uint{1, 3, 5})
	if len(updates) != 2 {
		t.Errorf("got %d updates, want 2", len(updates))
	}
}

func TestDissolveSection(t *testing.T) {
	sec := &model.Section{ID: 1}
	existing := task(1, nil, nil, 0)
	first := task(2, nil, uptr(1), 0)
	second := task(3, nil, uptr(1), 1)
	st := stateWith([]*model.Task{existing, first, second}, []*model.Section{sec})

	updates := DissolveSection(st, 1)
	assertScopeOrders(t, st, nil, nil, []uint{1, 2, 3})
	for _, tk := range []*model.Task{first, second} {
		if tk.SectionID != nil {
			t.Errorf("task %d still in section", tk.ID)
		}
	}
	if len(updates) < 2 {
		t.Errorf("got %d updates, want at least the two moved tasks", len(updates))
	}
}
