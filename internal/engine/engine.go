package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	"github.com/dshills/killring/internal/engine/history"
	"github.com/dshills/killring/internal/event"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// PointRange represents a range of positions.
	PointRange = buffer.PointRange

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// Selection represents a cursor selection.
	Selection = cursor.Selection
)

// TextChange describes one successful edit batch or undo.
type TextChange struct {
	// Applied holds the edits in application order.
	Applied []Edit
	// Undo is true when the change was produced by Undo.
	Undo bool
}

// SelectionChange carries the selections after a change.
type SelectionChange struct {
	Selections []Selection
}

// EditFilter may veto an edit batch before it reaches the buffer.
// A non-nil error rejects the whole batch.
type EditFilter func(edits []Edit) error

// Engine is the main facade for the document host.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.Mutex

	// Core components
	buf        *buffer.Buffer
	selections []Selection
	history    *history.History

	textChanged      event.Emitter[TextChange]
	selectionChanged event.Emitter[SelectionChange]

	// Configuration
	tabWidth       int
	lineEnding     *buffer.LineEnding
	maxUndoEntries int
	readOnly       bool
	filter         EditFilter

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	ending := buffer.DetectLineEnding(e.initContent)
	if e.lineEnding != nil {
		ending = *e.lineEnding
	}
	e.buf = buffer.NewBufferFromString(e.initContent,
		buffer.WithTabWidth(e.tabWidth),
		buffer.WithLineEnding(ending),
	)
	e.selections = []Selection{cursor.NewCursorSelection(Point{})}
	e.history = history.NewHistory(e.maxUndoEntries)

	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return New(append([]Option{WithContent(string(data))}, opts...)...), nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// TextRange returns the text covered by r.
func (e *Engine) TextRange(r PointRange) string {
	return e.buf.TextRange(r)
}

// LineText returns the text of a specific line (without newline).
func (e *Engine) LineText(line uint32) string {
	return e.buf.LineText(line)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	return e.buf.LineCount()
}

// EOL returns the line terminator used by the document.
func (e *Engine) EOL() string {
	return e.buf.LineEnding().Sequence()
}

// End returns the position just past the last character.
func (e *Engine) End() Point {
	return e.buf.End()
}

// Clamp returns the nearest valid position to p.
func (e *Engine) Clamp(p Point) Point {
	return e.buf.Clamp(p)
}

// TabWidth returns the tab width.
func (e *Engine) TabWidth() int {
	return e.buf.TabWidth()
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Selections
// ============================================================================

// Selections returns a copy of the current selections in cursor order.
func (e *Engine) Selections() []Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Selection, len(e.selections))
	copy(out, e.selections)
	return out
}

// PrimarySelection returns the first selection.
func (e *Engine) PrimarySelection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selections[0]
}

// SetSelections replaces every selection. Positions are clamped to the
// document.
func (e *Engine) SetSelections(sels ...Selection) error {
	if len(sels) == 0 {
		return ErrNoSelections
	}

	e.mu.Lock()
	next := make([]Selection, len(sels))
	for i, s := range sels {
		next[i] = cursor.NewSelection(e.buf.Clamp(s.Anchor), e.buf.Clamp(s.Active))
	}
	e.selections = next
	e.mu.Unlock()

	e.selectionChanged.Emit(SelectionChange{Selections: e.Selections()})
	return nil
}

// ============================================================================
// Write Operations
// ============================================================================

// ApplyEdits applies a batch of edits atomically and records it as a single
// undo entry. Ranges refer to the document before the batch.
func (e *Engine) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}
	if e.filter != nil {
		if err := e.filter(edits); err != nil {
			e.mu.Unlock()
			return fmt.Errorf("%w: %v", ErrEditRejected, err)
		}
	}

	applied, inverse, err := e.buf.Apply(edits)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if len(applied) == 0 {
		e.mu.Unlock()
		return nil
	}

	before := e.selections
	e.selections = cursor.TransformSelections(before, applied)
	moved := !sameSelections(before, e.selections)
	e.history.Push(history.Entry{Inverse: inverse, SelectionsBefore: before})
	e.mu.Unlock()

	e.notify(TextChange{Applied: applied}, moved)
	return nil
}

// Undo reverts the most recent edit batch and restores the selections that
// preceded it.
func (e *Engine) Undo() error {
	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}

	entry, err := e.history.Pop()
	if err != nil {
		e.mu.Unlock()
		return ErrNothingToUndo
	}
	if err := e.buf.Revert(entry.Inverse); err != nil {
		e.history.Restore(entry)
		e.mu.Unlock()
		return err
	}

	moved := !sameSelections(e.selections, entry.SelectionsBefore)
	e.selections = entry.SelectionsBefore
	e.mu.Unlock()

	e.notify(TextChange{Applied: entry.Inverse, Undo: true}, moved)
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// SetEditFilter replaces the edit filter. A nil filter accepts every batch.
func (e *Engine) SetEditFilter(f EditFilter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = f
}

// SetContent replaces all content, resets selections and clears history.
// No notifications are emitted.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	e.buf = buffer.NewBufferFromString(content,
		buffer.WithTabWidth(e.buf.TabWidth()),
		buffer.WithLineEnding(e.buf.LineEnding()),
	)
	e.selections = []Selection{cursor.NewCursorSelection(Point{})}
	e.history.Clear()
	return nil
}

// ============================================================================
// Notifications
// ============================================================================

// OnDidChangeText registers fn to run after every successful edit batch or
// undo.
func (e *Engine) OnDidChangeText(fn func()) event.Subscription {
	return e.textChanged.Subscribe(func(TextChange) { fn() })
}

// OnTextChange registers fn with the details of each change.
func (e *Engine) OnTextChange(fn func(TextChange)) event.Subscription {
	return e.textChanged.Subscribe(fn)
}

// OnDidChangeSelection registers fn to run whenever the selections change.
func (e *Engine) OnDidChangeSelection(fn func()) event.Subscription {
	return e.selectionChanged.Subscribe(func(SelectionChange) { fn() })
}

func (e *Engine) notify(change TextChange, selectionsMoved bool) {
	e.textChanged.Emit(change)
	if selectionsMoved {
		e.selectionChanged.Emit(SelectionChange{Selections: e.Selections()})
	}
}

func sameSelections(a, b []Selection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
