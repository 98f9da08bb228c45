package planner

import (
	"time"

	"dayflow/internal/model"
)

// DoToday is the per-calendar-day exclusion overlay: day key → set of
// excluded task keys. It never touches Task records and carries no state
// from one day to the next.
type DoToday map[string]map[uint]bool

// DoTodayChange records one flipped key for store write-back.
type DoTodayChange struct {
	TaskKey uint
	Day     string
	Off     bool
}

// ExclusionKey returns the key a task is excluded under: the original
// template id for recurring instances (so toggling today's instance does
// not affect other days' instances of the same template), otherwise the
// task's own id.
func ExclusionKey(t *model.Task) uint {
	if t.OriginalTaskID != nil {
		return *t.OriginalTaskID
	}
	return t.ID
}

// IsExcluded reports whether key is hidden for the given day.
func (d DoToday) IsExcluded(key uint, day time.Time) bool {
	return d[model.DayKey(day)][key]
}

// Toggle flips the exclusion of key for the given day and returns the new
// state (true = now excluded).
func (d DoToday) Toggle(key uint, day time.Time) bool {
	dk := model.DayKey(day)
	if d[dk][key] {
		delete(d[dk], key)
		if len(d[dk]) == 0 {
			delete(d, dk)
		}
		return false
	}
	if d[dk] == nil {
		d[dk] = make(map[uint]bool)
	}
	d[dk][key] = true
	return true
}

// ToggleAll flips every visible key to the opposite of the current
// majority: when at least half are included, all become excluded,
// otherwise all become included. Returns the changes for write-back.
func (d DoToday) ToggleAll(keys []uint, day time.Time) []DoTodayChange {
	if len(keys) == 0 {
		return nil
	}
	dk := model.DayKey(day)
	included := 0
	for _, k := range keys {
		if !d[dk][k] {
			included++
		}
	}
	excludeAll := included*2 >= len(keys)

	var changes []DoTodayChange
	for _, k := range keys {
		if d[dk][k] == excludeAll {
			continue
		}
		if excludeAll {
			if d[dk] == nil {
				d[dk] = make(map[uint]bool)
			}
			d[dk][k] = true
		} else {
			delete(d[dk], k)
		}
		changes = append(changes, DoTodayChange{TaskKey: k, Day: dk, Off: excludeAll})
	}
	if len(d[dk]) == 0 {
		delete(d, dk)
	}
	return changes
}

// Prune drops exclusion state for every day before the given one.
func (d DoToday) Prune(before time.Time) []string {
	cut := model.DayKey(before)
	var dropped []string
	for dk := range d {
		if dk < cut {
			dropped = append(dropped, dk)
			delete(d, dk)
		}
	}
	return dropped
}

func (d DoToday) clone() DoToday {
	c := make(DoToday, len(d))
	for dk, keys := range d {
		set := make(map[uint]bool, len(keys))
		for k, v := range keys {
			set[k] = v
		}
		c[dk] = set
	}
	return c
}
