package planner

import (
	"errors"
	"testing"

	"dayflow/internal/model"
)

func TestDragPreviewDoesNotMutate(t *testing.T) {
	a := task(1, nil, nil, 0)
	b := task(2, nil, nil, 1)
	c := task(3, nil, nil, 2)
	st := stateWith([]*model.Task{a, b, c}, nil)

	session, err := BeginDrag(st, 3)
	if err != nil {
		t.Fatalf("BeginDrag failed: %v", err)
	}

	preview, err := session.Preview(st, ReorderRequest{OverTaskID: uptr(1)})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Index != 0 {
		t.Errorf("index = %d, want 0 (before task 1)", preview.Index)
	}
	assertScopeOrders(t, st, nil, nil, []uint{1, 2, 3})

	preview, err = session.Preview(st, ReorderRequest{OverTaskID: uptr(1), MovingForward: true})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if preview.Index != 1 {
		t.Errorf("index = %d, want 1 (after task 1)", preview.Index)
	}
}

func TestDragPreviewFlagsInvalidDrop(t *testing.T) {
	parent := task(1, nil, nil, 0)
	child := task(2, uptr(1), nil, 0)
	st := stateWith([]*model.Task{parent, child}, nil)

	session, err := BeginDrag(st, 1)
	if err != nil {
		t.Fatalf("BeginDrag failed: %v", err)
	}
	if _, err := session.Preview(st, ReorderRequest{NewParentID: uptr(2)}); !errors.Is(err, ErrCycle) {
		t.Errorf("got %v, want ErrCycle", err)
	}
}

func TestDragSnapshotRestoresOrder(t *testing.T) {
	a := task(1, nil, nil, 0)
	b := task(2, nil, nil, 1)
	st := stateWith([]*model.Task{a, b}, nil)

	session, err := BeginDrag(st, 2)
	if err != nil {
		t.Fatalf("BeginDrag failed: %v", err)
	}
	if _, err := Reorder(st, ReorderRequest{ActiveID: 2, OverTaskID: uptr(1)}); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	assertScopeOrders(t, st, nil, nil, []uint{2, 1})

	// a failed persist would fall back to the snapshot
	restored := session.Snapshot()
	assertScopeOrders(t, restored, nil, nil, []uint{1, 2})
}

func TestBeginDragUnknownTask(t *testing.T) {
	st := NewState()
	if _, err := BeginDrag(st, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
