package planner

import (
	"testing"

	"dayflow/internal/model"
)

func focusFixture() ([]model.Task, []model.Section) {
	sections := []model.Section{
		{ID: 1, Name: "Morning", SortOrder: 0, IncludeInFocusMode: true},
		{ID: 2, Name: "Someday", SortOrder: 1, IncludeInFocusMode: false},
	}
	tasks := []model.Task{
		{ID: 1, Description: "stretch", Status: model.StatusToDo, SectionID: uptr(1), SortOrder: 0},
		{ID: 2, Description: "email", Status: model.StatusToDo, SectionID: uptr(1), SortOrder: 1},
		{ID: 3, Description: "done already", Status: model.StatusCompleted, SectionID: uptr(1), SortOrder: 2},
		{ID: 4, Description: "learn sailing", Status: model.StatusToDo, SectionID: uptr(2), SortOrder: 0},
		{ID: 5, Description: "loose end", Status: model.StatusToDo, SortOrder: 0},
		{ID: 6, Description: "substep", Status: model.StatusToDo, ParentTaskID: uptr(1), SortOrder: 0},
	}
	return tasks, sections
}

func noneExcluded(*model.Task) bool { return false }

func TestNextAvailable(t *testing.T) {
	tasks, sections := focusFixture()

	next := NextAvailable(tasks, sections, noneExcluded, false)
	if next == nil || next.ID != 1 {
		t.Fatalf("next = %v, want task 1", next)
	}
}

func TestNextAvailableSkipsExcluded(t *testing.T) {
	tasks, sections := focusFixture()
	excluded := func(tk *model.Task) bool { return tk.ID == 1 }

	next := NextAvailable(tasks, sections, excluded, false)
	if next == nil || next.ID != 2 {
		t.Fatalf("next = %v, want task 2", next)
	}
}

func TestNextAvailableFocusOnly(t *testing.T) {
	tasks, sections := focusFixture()
	// hide everything except the out-of-focus section and the loose end
	excluded := func(tk *model.Task) bool { return tk.ID == 1 || tk.ID == 2 }

	next := NextAvailable(tasks, sections, excluded, true)
	// section 2 is out of focus mode; the no-section task is eligible
	if next == nil || next.ID != 5 {
		t.Fatalf("next = %v, want task 5", next)
	}

	next = NextAvailable(tasks, sections, excluded, false)
	if next == nil || next.ID != 4 {
		t.Fatalf("without focus-only, next = %v, want task 4", next)
	}
}

func TestNextAvailableEmpty(t *testing.T) {
	if next := NextAvailable(nil, nil, noneExcluded, false); next != nil {
		t.Fatalf("next = %v, want nil", next)
	}
}

func TestUpcoming(t *testing.T) {
	tasks, sections := focusFixture()
	next := NextAvailable(tasks, sections, noneExcluded, false)

	up := Upcoming(next, tasks, sections, noneExcluded, false, 5)
	want := []uint{2, 4, 5}
	if len(up) != len(want) {
		t.Fatalf("got %d upcoming, want %d", len(up), len(want))
	}
	for i, tk := range up {
		if tk.ID != want[i] {
			t.Errorf("position %d: got task %d, want %d", i, tk.ID, want[i])
		}
		if tk.ParentTaskID != nil && *tk.ParentTaskID == next.ID {
			t.Errorf("upcoming contains subtask %d of the next task", tk.ID)
		}
	}
}

func TestUpcomingLimit(t *testing.T) {
	tasks, sections := focusFixture()
	next := NextAvailable(tasks, sections, noneExcluded, false)

	up := Upcoming(next, tasks, sections, noneExcluded, false, 1)
	if len(up) != 1 || up[0].ID != 2 {
		t.Fatalf("got %v, want just task 2", up)
	}
	if got := Upcoming(nil, tasks, sections, noneExcluded, false, 5); got != nil {
		t.Errorf("upcoming without a next task = %v, want nil", got)
	}
}

func TestFocusOrderPutsNoSectionLast(t *testing.T) {
	tasks, sections := focusFixture()
	ordered := FocusOrder(tasks, sections)
	if last := ordered[len(ordered)-1]; last.SectionID != nil {
		t.Errorf("last task %d has a section; no-section bucket must come last", last.ID)
	}
}
