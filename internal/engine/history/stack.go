package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// Entry is one undoable edit batch.
type Entry struct {
	Inverse          []buffer.Edit
	SelectionsBefore []cursor.Selection
	Timestamp        time.Time
}

// History manages undo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack  []Entry
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push adds an entry to the undo stack, dropping the oldest entries beyond
// the configured maximum.
func (h *History) Push(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	h.undoStack = append(h.undoStack, e)

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	return e, nil
}

// Restore puts back an entry whose undo failed.
func (h *History) Restore(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = append(h.undoStack, e)
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.UndoCount() > 0
}

// UndoCount returns the number of available undo operations.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// Clear removes all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
}
