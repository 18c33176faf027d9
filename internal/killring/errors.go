package killring

import "errors"

// Errors returned by kill ring operations.
var (
	// ErrAppendMismatch indicates an append between entities whose region
	// counts differ. Callers recover by pushing a new entry instead.
	ErrAppendMismatch = errors.New("append across different region counts")

	// ErrEmptyRing indicates an operation that needs at least one entry.
	ErrEmptyRing = errors.New("kill ring is empty")

	// ErrIndexOutOfRange indicates a pointer or picker index outside the ring.
	ErrIndexOutOfRange = errors.New("kill ring index out of range")

	// ErrRingChanged indicates the ring was modified while a picker was
	// showing an older snapshot of it.
	ErrRingChanged = errors.New("kill ring changed during browse")
)
