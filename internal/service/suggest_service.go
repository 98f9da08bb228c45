package service

import (
	"strings"
	"time"

	"dayflow/internal/model"
)

// Suggestion is a structured guess derived from free text, used to
// pre-fill the add-task command. The planner never treats it as
// authoritative; every field is optional.
type Suggestion struct {
	Description string
	Category    string
	Priority    model.Priority
	DueDate     *time.Time
	Section     string
	Notes       string
	Link        string
}

// Suggester turns free text into a Suggestion.
type Suggester interface {
	Suggest(text string) Suggestion
}

// HeuristicSuggester recognizes inline markers in the task text:
// #category, @section, !priority (or !p1..!p4), today / tomorrow /
// YYYY-MM-DD due dates, a bare URL as the link, and everything after
// " // " as notes. Anything it cannot place stays in the description, so
// parsing never fails the add command.
type HeuristicSuggester struct {
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

var priorityMarkers = map[string]model.Priority{
	"low":    model.PriorityLow,
	"medium": model.PriorityMedium,
	"med":    model.PriorityMedium,
	"high":   model.PriorityHigh,
	"urgent": model.PriorityUrgent,
	"p1":     model.PriorityUrgent,
	"p2":     model.PriorityHigh,
	"p3":     model.PriorityMedium,
	"p4":     model.PriorityLow,
}

func (h *HeuristicSuggester) Suggest(text string) Suggestion {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	var sg Suggestion
	if body, notes, found := strings.Cut(text, " // "); found {
		text = body
		sg.Notes = strings.TrimSpace(notes)
	}

	var rest []string
	for _, token := range strings.Fields(text) {
		switch {
		case len(token) > 1 && strings.HasPrefix(token, "#"):
			sg.Category = token[1:]
		case len(token) > 1 && strings.HasPrefix(token, "@"):
			sg.Section = token[1:]
		case len(token) > 1 && strings.HasPrefix(token, "!"):
			if p, ok := priorityMarkers[strings.ToLower(token[1:])]; ok {
				sg.Priority = p
			} else {
				rest = append(rest, token)
			}
		case strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://"):
			sg.Link = token
		case strings.EqualFold(token, "today"):
			due := dateOnly(now)
			sg.DueDate = &due
		case strings.EqualFold(token, "tomorrow"):
			due := dateOnly(now).AddDate(0, 0, 1)
			sg.DueDate = &due
		default:
			if parsed, err := time.ParseInLocation(model.DayFormat, token, now.Location()); err == nil {
				sg.DueDate = &parsed
			} else {
				rest = append(rest, token)
			}
		}
	}
	sg.Description = strings.Join(rest, " ")
	return sg
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
