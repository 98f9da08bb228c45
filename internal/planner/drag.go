package planner

import "fmt"

// DragPreview is the insertion indicator for an in-flight drag: where the
// active task would land if committed now.
type DragPreview struct {
	ParentTaskID *uint
	SectionID    *uint
	Index        int
}

// DragSession is one begin/update/commit drag interaction. Begin takes a
// rollback snapshot; Preview is pure and may run on every pointer move;
// the single commit goes through Reorder. Only one session may be in
// flight per client.
type DragSession struct {
	ActiveID uint
	snapshot *State
}

// BeginDrag snapshots the current order state and opens a session for the
// task.
func BeginDrag(st *State, activeID uint) (*DragSession, error) {
	if _, ok := st.Tasks[activeID]; !ok {
		return nil, fmt.Errorf("%w: task %d", ErrNotFound, activeID)
	}
	return &DragSession{ActiveID: activeID, snapshot: st.Clone()}, nil
}

// Preview resolves where the request would place the active task without
// mutating anything. Cycle and not-found violations surface here the same
// way they would on commit, so the UI can mark the drop as invalid.
func (d *DragSession) Preview(st *State, req ReorderRequest) (DragPreview, error) {
	req.ActiveID = d.ActiveID
	ins, err := resolveInsertion(st, req)
	if err != nil {
		return DragPreview{}, err
	}
	return DragPreview{
		ParentTaskID: ins.parentID,
		SectionID:    ins.sectionID,
		Index:        ins.index,
	}, nil
}

// Snapshot returns the order state captured at Begin, used to roll back a
// failed commit.
func (d *DragSession) Snapshot() *State {
	return d.snapshot
}
