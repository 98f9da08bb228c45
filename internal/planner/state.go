package planner

import (
	"sort"

	"dayflow/internal/model"
)

// State is the id-indexed arena of planner records plus the per-day
// do-today overlay. Parent/child links are plain id fields; nothing in the
// arena holds a pointer to another record.
type State struct {
	Tasks      map[uint]*model.Task
	Sections   map[uint]*model.Section
	Categories map[uint]*model.Category
	DoToday    DoToday
}

// NewState returns an empty arena.
func NewState() *State {
	return &State{
		Tasks:      make(map[uint]*model.Task),
		Sections:   make(map[uint]*model.Section),
		Categories: make(map[uint]*model.Category),
		DoToday:    make(DoToday),
	}
}

// Clone deep-copies the arena. Used as the rollback snapshot before any
// optimistic mutation.
func (s *State) Clone() *State {
	c := NewState()
	for id, t := range s.Tasks {
		copied := *t
		c.Tasks[id] = &copied
	}
	for id, sec := range s.Sections {
		copied := *sec
		c.Sections[id] = &copied
	}
	for id, cat := range s.Categories {
		copied := *cat
		copied.Tasks = nil
		c.Categories[id] = &copied
	}
	c.DoToday = s.DoToday.clone()
	return c
}

// scope identifies a sibling group. Row ids start at 1, so 0 stands for
// "no parent" / "no section".
type scope struct {
	parent  uint
	section uint
}

func scopeKey(parentID, sectionID *uint) scope {
	var sc scope
	if parentID != nil {
		sc.parent = *parentID
	}
	if sectionID != nil {
		sc.section = *sectionID
	}
	return sc
}

func taskScope(t *model.Task) scope {
	return scopeKey(t.ParentTaskID, t.SectionID)
}

// lessTasks orders siblings: sort_order, then created_at for legacy equal
// orders, then id as the final stable key.
func lessTasks(a, b *model.Task) bool {
	if a.SortOrder != b.SortOrder {
		return a.SortOrder < b.SortOrder
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// siblings returns the members of sc in render sequence, leaving out
// exclude (0 to keep everyone).
func (s *State) siblings(sc scope, exclude uint) []*model.Task {
	var out []*model.Task
	for _, t := range s.Tasks {
		if t.ID == exclude {
			continue
		}
		if taskScope(t) == sc {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessTasks(out[i], out[j]) })
	return out
}

// SortedSections returns all sections in list order.
func (s *State) SortedSections() []*model.Section {
	out := make([]*model.Section, 0, len(s.Sections))
	for _, sec := range s.Sections {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
	return out
}

// isAncestor walks the parent chain upward from id and reports whether
// ancestor appears on it. The walk is bounded by the arena size so a
// corrupted chain cannot loop forever.
func (s *State) isAncestor(ancestor, id uint) bool {
	steps := len(s.Tasks) + 1
	cur, ok := s.Tasks[id]
	for ok && steps > 0 {
		if cur.ID == ancestor {
			return true
		}
		if cur.ParentTaskID == nil {
			return false
		}
		cur, ok = s.Tasks[*cur.ParentTaskID]
		steps--
	}
	return false
}

// Descendants returns the ids of every task below root, depth-first.
func (s *State) Descendants(root uint) []uint {
	children := make(map[uint][]uint)
	for _, t := range s.Tasks {
		if t.ParentTaskID != nil {
			children[*t.ParentTaskID] = append(children[*t.ParentTaskID], t.ID)
		}
	}
	var out []uint
	stack := append([]uint(nil), children[root]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, id)
		stack = append(stack, children[id]...)
	}
	return out
}
