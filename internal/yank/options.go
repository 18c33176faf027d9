package yank

import "github.com/dshills/killring/internal/logging"

const (
	// DefaultDeleteAttempts bounds how often a kill retries a rejected
	// deletion.
	DefaultDeleteAttempts = 3

	// DefaultMaxYankPopUndo bounds how many changes YankPop undoes. A paste
	// is normally one change; a host side effect such as auto-indent can add
	// a second.
	DefaultMaxYankPopUndo = 2
)

// Option configures a KillYanker.
type Option func(*KillYanker)

// WithDeleteAttempts sets the number of deletion attempts per kill.
// Values below 1 are ignored.
func WithDeleteAttempts(n int) Option {
	return func(y *KillYanker) {
		if n >= 1 {
			y.deleteAttempts.Store(int32(n))
		}
	}
}

// WithMaxYankPopUndo sets the upper bound of changes undone by YankPop.
// Values below 1 are ignored.
func WithMaxYankPopUndo(n int) Option {
	return func(y *KillYanker) {
		if n >= 1 {
			y.maxYankPopUndo.Store(int32(n))
		}
	}
}

// WithLogger sets the logger used for edit failures.
func WithLogger(l *logging.Logger) Option {
	return func(y *KillYanker) {
		if l != nil {
			y.logger = l.WithComponent("yank")
		}
	}
}
