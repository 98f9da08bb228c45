package planner

import (
	"sort"

	"dayflow/internal/model"
)

// DefaultUpcomingCount is how many upcoming tasks the focus view shows.
const DefaultUpcomingCount = 5

// FocusOrder arranges tasks the way the focus view walks them: section
// list order first (the no-section bucket last), then sibling order
// within each section. Returns a new slice.
func FocusOrder(tasks []model.Task, sections []model.Section) []model.Task {
	rank := make(map[uint]int, len(sections))
	ordered := append([]model.Section(nil), sections...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].ID < ordered[j].ID
	})
	for i, sec := range ordered {
		rank[sec.ID] = i
	}
	noSection := len(ordered)

	out := append([]model.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := noSection, noSection
		if out[i].SectionID != nil {
			ri = rank[*out[i].SectionID]
		}
		if out[j].SectionID != nil {
			rj = rank[*out[j].SectionID]
		}
		if ri != rj {
			return ri < rj
		}
		return lessTasks(&out[i], &out[j])
	})
	return out
}

// eligible reports whether a task can be picked for focus: top-level,
// still to-do, not hidden for the day, and (in focus-only mode) in a
// section flagged for focus. Tasks without a section always count.
func eligible(t *model.Task, sections map[uint]*model.Section, excluded func(*model.Task) bool, focusOnly bool) bool {
	if !t.TopLevel() || t.Status != model.StatusToDo {
		return false
	}
	if excluded != nil && excluded(t) {
		return false
	}
	if focusOnly && t.SectionID != nil {
		sec, ok := sections[*t.SectionID]
		if ok && !sec.IncludeInFocusMode {
			return false
		}
	}
	return true
}

// NextAvailable picks the single task the focus/timer tooling works on:
// the first eligible task in focus order, or nil when the day is clear.
func NextAvailable(projected []model.Task, sections []model.Section, excluded func(*model.Task) bool, focusOnly bool) *model.Task {
	secIndex := sectionIndex(sections)
	for _, t := range FocusOrder(projected, sections) {
		if eligible(&t, secIndex, excluded, focusOnly) {
			picked := t
			return &picked
		}
	}
	return nil
}

// Upcoming lists the n eligible tasks that follow next in focus order,
// leaving out next itself and its direct subtasks.
func Upcoming(next *model.Task, projected []model.Task, sections []model.Section, excluded func(*model.Task) bool, focusOnly bool, n int) []model.Task {
	if next == nil || n <= 0 {
		return nil
	}
	secIndex := sectionIndex(sections)
	var out []model.Task
	seen := false
	for _, t := range FocusOrder(projected, sections) {
		if sameTask(&t, next) {
			seen = true
			continue
		}
		if !seen {
			continue
		}
		if t.ParentTaskID != nil && *t.ParentTaskID == next.ID {
			continue
		}
		if !eligible(&t, secIndex, excluded, focusOnly) {
			continue
		}
		out = append(out, t)
		if len(out) == n {
			break
		}
	}
	return out
}

func sectionIndex(sections []model.Section) map[uint]*model.Section {
	idx := make(map[uint]*model.Section, len(sections))
	for i := range sections {
		idx[sections[i].ID] = &sections[i]
	}
	return idx
}

// sameTask matches persisted tasks by id and transient instances by
// virtual id.
func sameTask(a, b *model.Task) bool {
	if a.Persisted() || b.Persisted() {
		return a.ID == b.ID
	}
	return a.VirtualID != "" && a.VirtualID == b.VirtualID
}
