package planner

import "errors"

// Sentinel errors returned by the engine. Callers match with errors.Is;
// wrapped messages carry the offending ids.
var (
	// ErrValidation marks input rejected at the command boundary.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an operation on an id that no longer exists.
	ErrNotFound = errors.New("not found")
	// ErrCycle marks a parent reassignment that would make a task its
	// own ancestor. The reorder is a no-op.
	ErrCycle = errors.New("parent cycle")
	// ErrPersistence marks a store write that kept failing after the
	// retry window; optimistic state has been rolled back.
	ErrPersistence = errors.New("persistence failed")
)
