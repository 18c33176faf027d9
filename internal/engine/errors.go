package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrEditRejected indicates the host refused an edit batch.
	ErrEditRejected = errors.New("edit rejected")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrNoSelections indicates an attempt to clear every selection.
	ErrNoSelections = errors.New("at least one selection is required")
)
