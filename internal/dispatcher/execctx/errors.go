package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEditor indicates the editor is required but not set.
	ErrMissingEditor = errors.New("execution context: editor is required")

	// ErrMissingYanker indicates the kill/yank engine is required but not set.
	ErrMissingYanker = errors.New("execution context: yanker is required")

	// ErrReadOnly indicates the buffer is read-only.
	ErrReadOnly = errors.New("execution context: buffer is read-only")

	// ErrMissingPicker indicates a picker is required but not set.
	ErrMissingPicker = errors.New("execution context: picker is required")
)
