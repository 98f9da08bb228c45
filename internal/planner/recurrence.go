package planner

import (
	"time"

	"github.com/google/uuid"

	"dayflow/internal/model"
)

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// dueOn reports whether a recurring template is due on the given day.
// Daily templates hit every day from their creation date on, weekly ones
// on the creation weekday, monthly ones on the creation day-of-month
// clamped to the month's length (a template created on the 31st is due on
// Feb 28 and Apr 30).
func dueOn(tpl *model.Task, day time.Time) bool {
	created := startOfDay(tpl.CreatedAt)
	if startOfDay(day).Before(created) {
		return false
	}
	switch tpl.RecurringType {
	case model.RecurDaily:
		return true
	case model.RecurWeekly:
		return day.Weekday() == tpl.CreatedAt.Weekday()
	case model.RecurMonthly:
		want := tpl.CreatedAt.Day()
		if max := daysInMonth(day); want > max {
			want = max
		}
		return day.Day() == want
	default:
		return false
	}
}

// Expand derives the per-day task instances for the given templates.
// Templates that are no longer to-do have been completed for good or
// archived and stop producing instances. When a concrete instance for the
// day already exists (matched by original_task_id and due date) it is
// used as-is; otherwise a transient instance is synthesized, identified
// only by a VirtualID until its first status mutation persists it. At most
// one instance per template per day is ever returned.
func Expand(templates []model.Task, day time.Time, concrete []model.Task) []model.Task {
	byTemplate := make(map[uint]model.Task)
	for _, inst := range concrete {
		if inst.OriginalTaskID == nil || inst.DueDate == nil || !SameDay(*inst.DueDate, day) {
			continue
		}
		if _, seen := byTemplate[*inst.OriginalTaskID]; !seen {
			byTemplate[*inst.OriginalTaskID] = inst
		}
	}

	var out []model.Task
	for i := range templates {
		tpl := &templates[i]
		if !tpl.IsTemplate() || tpl.Status != model.StatusToDo || !dueOn(tpl, day) {
			continue
		}
		if inst, ok := byTemplate[tpl.ID]; ok {
			out = append(out, inst)
			continue
		}
		out = append(out, synthesize(tpl, day))
	}
	return out
}

func synthesize(tpl *model.Task, day time.Time) model.Task {
	due := startOfDay(day)
	originalID := tpl.ID
	return model.Task{
		Description:    tpl.Description,
		Notes:          tpl.Notes,
		Link:           tpl.Link,
		Status:         model.StatusToDo,
		SectionID:      tpl.SectionID,
		CategoryID:     tpl.CategoryID,
		Priority:       tpl.Priority,
		DueDate:        &due,
		RecurringType:  tpl.RecurringType,
		OriginalTaskID: &originalID,
		SortOrder:      tpl.SortOrder,
		VirtualID:      uuid.NewString(),
		// inherit the template's creation time so ordering tie-breaks
		// stay stable across days
		CreatedAt: tpl.CreatedAt,
	}
}
