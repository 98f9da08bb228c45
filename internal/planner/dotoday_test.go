package planner

import (
	"testing"
	"time"

	"dayflow/internal/model"
)

func TestDoTodayToggleIsDayScoped(t *testing.T) {
	d := make(DoToday)
	day := date(2024, 1, 1)
	next := date(2024, 1, 2)

	if !d.Toggle(5, day) {
		t.Fatal("first toggle must exclude")
	}
	if !d.IsExcluded(5, day) {
		t.Error("task not excluded on toggled day")
	}
	if d.IsExcluded(5, next) {
		t.Error("exclusion leaked into the next day")
	}
	if d.Toggle(5, day) {
		t.Fatal("second toggle must include again")
	}
	if d.IsExcluded(5, day) {
		t.Error("task still excluded after toggle back")
	}
}

func TestExclusionKeyPrefersOriginal(t *testing.T) {
	instance := &model.Task{ID: 9, OriginalTaskID: uptr(3)}
	if got := ExclusionKey(instance); got != 3 {
		t.Errorf("instance key = %d, want template id 3", got)
	}
	plain := &model.Task{ID: 9}
	if got := ExclusionKey(plain); got != 9 {
		t.Errorf("plain key = %d, want 9", got)
	}
}

func TestToggleAllMajority(t *testing.T) {
	day := date(2024, 1, 1)
	tests := []struct {
		name        string
		preExcluded []uint
		keys        []uint
		wantOff     bool
	}{
		{"all included flips off", nil, []uint{1, 2, 3}, true},
		{"all excluded flips on", []uint{1, 2, 3}, []uint{1, 2, 3}, false},
		{"majority included flips off", []uint{1}, []uint{1, 2, 3}, true},
		{"half included flips off", []uint{1, 2}, []uint{1, 2, 3, 4}, true},
		{"minority included flips on", []uint{1, 2, 3}, []uint{1, 2, 3, 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := make(DoToday)
			for _, k := range tt.preExcluded {
				d.Toggle(k, day)
			}
			changes := d.ToggleAll(tt.keys, day)
			for _, k := range tt.keys {
				if d.IsExcluded(k, day) != tt.wantOff {
					t.Errorf("key %d excluded = %v, want %v", k, d.IsExcluded(k, day), tt.wantOff)
				}
			}
			for _, c := range changes {
				if c.Off != tt.wantOff {
					t.Errorf("change for %d off = %v, want %v", c.TaskKey, c.Off, tt.wantOff)
				}
			}
		})
	}
}

func TestToggleAllEmpty(t *testing.T) {
	d := make(DoToday)
	if changes := d.ToggleAll(nil, date(2024, 1, 1)); changes != nil {
		t.Errorf("got %v changes for empty input", changes)
	}
}

func TestPruneDropsPastDays(t *testing.T) {
	d := make(DoToday)
	d.Toggle(1, date(2024, 1, 1))
	d.Toggle(2, date(2024, 1, 2))
	d.Toggle(3, date(2024, 1, 3))

	dropped := d.Prune(date(2024, 1, 3))
	if len(dropped) != 2 {
		t.Fatalf("dropped %d days, want 2", len(dropped))
	}
	if !d.IsExcluded(3, date(2024, 1, 3)) {
		t.Error("current day state pruned")
	}
	if d.IsExcluded(1, date(2024, 1, 1)) {
		t.Error("past day state survived prune")
	}
}

func TestDoTodayCloneIsIndependent(t *testing.T) {
	d := make(DoToday)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.Toggle(1, day)

	c := d.clone()
	c.Toggle(2, day)
	if d.IsExcluded(2, day) {
		t.Error("mutating the clone changed the original")
	}
	if !c.IsExcluded(1, day) {
		t.Error("clone lost existing state")
	}
}
