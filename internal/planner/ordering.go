package planner

import (
	"fmt"
	"sort"
	"time"

	"dayflow/internal/model"
)

// ReorderRequest describes one drag commit. Exactly one of OverTaskID and
// OverSectionID may be set; with neither, the task is appended to the end
// of the destination sibling group. OverSectionID means the task was
// dropped on a section header and becomes the first top-level task of that
// section.
type ReorderRequest struct {
	ActiveID      uint
	NewParentID   *uint
	NewSectionID  *uint
	OverTaskID    *uint
	OverSectionID *uint
	// MovingForward is true when the drag travels downward; the active
	// task then lands immediately after OverTaskID instead of before it.
	MovingForward bool
}

// OrderUpdate is one row of the batched write-back a reorder emits.
type OrderUpdate struct {
	ID           uint
	SortOrder    int
	ParentTaskID *uint
	SectionID    *uint
}

// SectionOrderUpdate is the write-back row for section list reordering.
type SectionOrderUpdate struct {
	ID        uint
	SortOrder int
}

// insertion is the resolved landing spot of a drag, shared by preview and
// commit.
type insertion struct {
	parentID  *uint
	sectionID *uint
	siblings  []*model.Task // destination group without the active task
	index     int
}

func resolveInsertion(st *State, req ReorderRequest) (insertion, error) {
	active, ok := st.Tasks[req.ActiveID]
	if !ok {
		return insertion{}, fmt.Errorf("%w: task %d", ErrNotFound, req.ActiveID)
	}

	var ins insertion
	switch {
	case req.OverSectionID != nil:
		secID := *req.OverSectionID
		if _, ok := st.Sections[secID]; !ok {
			return insertion{}, fmt.Errorf("%w: section %d", ErrNotFound, secID)
		}
		ins.sectionID = &secID
		ins.index = 0
	default:
		if req.NewParentID != nil {
			parentID := *req.NewParentID
			if parentID == active.ID {
				return insertion{}, fmt.Errorf("%w: task %d cannot be its own parent", ErrCycle, active.ID)
			}
			if _, ok := st.Tasks[parentID]; !ok {
				return insertion{}, fmt.Errorf("%w: parent task %d", ErrNotFound, parentID)
			}
			if st.isAncestor(active.ID, parentID) {
				return insertion{}, fmt.Errorf("%w: task %d is an ancestor of %d", ErrCycle, active.ID, parentID)
			}
			ins.parentID = req.NewParentID
		}
		if req.NewSectionID != nil {
			if _, ok := st.Sections[*req.NewSectionID]; !ok {
				return insertion{}, fmt.Errorf("%w: section %d", ErrNotFound, *req.NewSectionID)
			}
			ins.sectionID = req.NewSectionID
		}
	}

	ins.siblings = st.siblings(scopeKey(ins.parentID, ins.sectionID), active.ID)

	switch {
	case req.OverSectionID != nil:
		// index already 0
	case req.OverTaskID == nil:
		ins.index = len(ins.siblings)
	default:
		overID := *req.OverTaskID
		if overID == active.ID {
			// dropped on itself: keep the current position
			cur := 0
			for i, t := range ins.siblings {
				if lessTasks(t, active) {
					cur = i + 1
				}
			}
			ins.index = cur
			return ins, nil
		}
		found := -1
		for i, t := range ins.siblings {
			if t.ID == overID {
				found = i
				break
			}
		}
		if found < 0 {
			return insertion{}, fmt.Errorf("%w: drop target %d not in destination group", ErrNotFound, overID)
		}
		if req.MovingForward {
			ins.index = found + 1
		} else {
			ins.index = found
		}
	}
	return ins, nil
}

// Reorder moves the active task to the spot the request describes,
// renumbers every sibling group it touched with contiguous integers, and
// returns the batched updates for write-back. The state is mutated in
// place; callers snapshot beforehand if they may need to roll back.
// Violating the cycle invariant returns ErrCycle and leaves the state
// untouched.
func Reorder(st *State, req ReorderRequest) ([]OrderUpdate, error) {
	active, ok := st.Tasks[req.ActiveID]
	if !ok {
		return nil, fmt.Errorf("%w: task %d", ErrNotFound, req.ActiveID)
	}
	oldScope := taskScope(active)

	ins, err := resolveInsertion(st, req)
	if err != nil {
		return nil, err
	}

	active.ParentTaskID = ins.parentID
	active.SectionID = ins.sectionID
	active.UpdatedAt = time.Now()

	ordered := make([]*model.Task, 0, len(ins.siblings)+1)
	ordered = append(ordered, ins.siblings[:ins.index]...)
	ordered = append(ordered, active)
	ordered = append(ordered, ins.siblings[ins.index:]...)

	var updates []OrderUpdate
	updates = renumber(ordered, updates, active.ID)

	if newScope := taskScope(active); newScope != oldScope {
		updates = renumber(st.siblings(oldScope, active.ID), updates, 0)
	}

	// subtasks follow their parent's section; their sibling groups move
	// wholesale, so orders within them stay valid
	for _, id := range st.Descendants(active.ID) {
		d := st.Tasks[id]
		if sameID(d.SectionID, active.SectionID) {
			continue
		}
		d.SectionID = active.SectionID
		updates = append(updates, OrderUpdate{
			ID:           d.ID,
			SortOrder:    d.SortOrder,
			ParentTaskID: d.ParentTaskID,
			SectionID:    d.SectionID,
		})
	}
	return updates, nil
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// renumber assigns 0..n-1 to the group and appends an update for every
// task whose row changed. forceID is always emitted even if its order
// happens to be unchanged, since its parent or section may have moved.
func renumber(group []*model.Task, updates []OrderUpdate, forceID uint) []OrderUpdate {
	var force map[uint]bool
	if forceID != 0 {
		force = map[uint]bool{forceID: true}
	}
	return renumberSet(group, updates, force)
}

func renumberSet(group []*model.Task, updates []OrderUpdate, force map[uint]bool) []OrderUpdate {
	for i, t := range group {
		changed := t.SortOrder != i
		if changed {
			t.SortOrder = i
		}
		if changed || force[t.ID] {
			updates = append(updates, OrderUpdate{
				ID:           t.ID,
				SortOrder:    t.SortOrder,
				ParentTaskID: t.ParentTaskID,
				SectionID:    t.SectionID,
			})
		}
	}
	return updates
}

// RenumberScope closes order gaps in one sibling group, e.g. after a
// delete, and returns the rows to write back.
func RenumberScope(st *State, parentID, sectionID *uint) []OrderUpdate {
	return renumber(st.siblings(scopeKey(parentID, sectionID), 0), nil, 0)
}

// AppendOrder returns the next free sort_order at the end of a sibling
// group.
func AppendOrder(st *State, parentID, sectionID *uint) int {
	return len(st.siblings(scopeKey(parentID, sectionID), 0))
}

// DissolveSection moves every task of the section into the no-section
// bucket, appended after the bucket's existing members per parent scope,
// and returns the write-back rows. The Section record itself is left for
// the caller to remove.
func DissolveSection(st *State, sectionID uint) []OrderUpdate {
	var moved []*model.Task
	for _, t := range st.Tasks {
		if t.SectionID != nil && *t.SectionID == sectionID {
			moved = append(moved, t)
		}
	}
	sort.Slice(moved, func(i, j int) bool { return lessTasks(moved[i], moved[j]) })

	byParent := make(map[uint][]*model.Task)
	for _, t := range moved {
		var p uint
		if t.ParentTaskID != nil {
			p = *t.ParentTaskID
		}
		byParent[p] = append(byParent[p], t)
	}

	var updates []OrderUpdate
	for parent, group := range byParent {
		var parentID *uint
		if parent != 0 {
			p := parent
			parentID = &p
		}
		existing := st.siblings(scopeKey(parentID, nil), 0)
		force := make(map[uint]bool, len(group))
		for _, t := range group {
			t.SectionID = nil
			force[t.ID] = true
		}
		updates = renumberSet(append(existing, group...), updates, force)
	}
	return updates
}

// ReorderSections runs the single-list variant of the algorithm over the
// global section list. Sections never take a parent.
func ReorderSections(st *State, activeID uint, overID *uint, movingForward bool) ([]SectionOrderUpdate, error) {
	active, ok := st.Sections[activeID]
	if !ok {
		return nil, fmt.Errorf("%w: section %d", ErrNotFound, activeID)
	}

	rest := make([]*model.Section, 0, len(st.Sections)-1)
	for _, sec := range st.SortedSections() {
		if sec.ID != activeID {
			rest = append(rest, sec)
		}
	}

	index := len(rest)
	if overID != nil && *overID != activeID {
		found := -1
		for i, sec := range rest {
			if sec.ID == *overID {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("%w: section %d", ErrNotFound, *overID)
		}
		if movingForward {
			index = found + 1
		} else {
			index = found
		}
	} else if overID != nil {
		// dropped on itself: keep the current position
		index = 0
		for i, sec := range rest {
			if sec.SortOrder < active.SortOrder {
				index = i + 1
			}
		}
	}

	ordered := make([]*model.Section, 0, len(rest)+1)
	ordered = append(ordered, rest[:index]...)
	ordered = append(ordered, active)
	ordered = append(ordered, rest[index:]...)

	var updates []SectionOrderUpdate
	for i, sec := range ordered {
		if sec.SortOrder != i || sec.ID == activeID {
			sec.SortOrder = i
			updates = append(updates, SectionOrderUpdate{ID: sec.ID, SortOrder: i})
		}
	}
	return updates, nil
}
