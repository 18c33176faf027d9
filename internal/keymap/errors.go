package keymap

import "errors"

var (
	// ErrUnbound is returned when no binding matches a sequence.
	ErrUnbound = errors.New("key sequence is not bound")

	// ErrIncomplete is returned when a sequence is only a prefix of bindings.
	ErrIncomplete = errors.New("key sequence is incomplete")
)
