package yank

import (
	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	"github.com/dshills/killring/internal/event"
)

// Subscription releases a change listener.
type Subscription = event.Subscription

// Editor is the document the yanker kills from and yanks into.
type Editor interface {
	// Selections returns the selections in cursor order.
	Selections() []cursor.Selection

	// TextRange returns the text covered by r.
	TextRange(r buffer.PointRange) string

	// LineText returns one line without its terminator.
	LineText(line uint32) string

	// LineCount returns the number of lines.
	LineCount() uint32

	// EOL returns the document's line terminator.
	EOL() string

	// ApplyEdits applies a batch atomically as one undoable change.
	// It may fail transiently, in which case nothing is changed.
	ApplyEdits(edits []buffer.Edit) error

	// Undo reverts the most recent change.
	Undo() error

	// OnDidChangeText registers fn to run synchronously after each change.
	OnDidChangeText(fn func()) Subscription

	// OnDidChangeSelection registers fn to run synchronously after the
	// selections change.
	OnDidChangeSelection(fn func()) Subscription
}

// Clipboard is the operating system clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}
