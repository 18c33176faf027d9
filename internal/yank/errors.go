package yank

import "errors"

var (
	// ErrNotYank is returned by YankPop when the previous command was not a
	// yank or the chain was interrupted.
	ErrNotYank = errors.New("Previous command was not a yank")

	// ErrNoRing is returned by operations that need a kill ring when the
	// yanker runs in clipboard-only mode.
	ErrNoRing = errors.New("kill ring is disabled")
)
