package yank

import (
	"sync/atomic"

	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	"github.com/dshills/killring/internal/event"
	"github.com/dshills/killring/internal/killring"
	"github.com/dshills/killring/internal/logging"
)

// KillYanker tracks kill-append and yank-pop state for one editor.
type KillYanker struct {
	editor    Editor
	clipboard Clipboard
	ring      *killring.Ring
	logger    *logging.Logger

	deleteAttempts atomic.Int32
	maxYankPopUndo atomic.Int32

	subs *event.Group

	isAppending       bool
	prevKillPositions []buffer.Point

	docChangedAfterYank bool
	prevYankPositions   []buffer.Point
	prevYankEditCount   int

	// pasting is set while the yanker applies its own paste so the text
	// listener can count the changes it produces.
	pasting          bool
	pendingEditCount int
}

// New creates a KillYanker and subscribes it to the editor's notifications.
// A nil ring puts the yanker in clipboard-only mode: kills still write the
// clipboard and yank pastes the clipboard text, but nothing is remembered.
func New(editor Editor, clipboard Clipboard, ring *killring.Ring, opts ...Option) *KillYanker {
	y := &KillYanker{
		editor:              editor,
		clipboard:           clipboard,
		ring:                ring,
		logger:              logging.Default().WithComponent("yank"),
		subs:                &event.Group{},
		docChangedAfterYank: true,
	}
	y.deleteAttempts.Store(DefaultDeleteAttempts)
	y.maxYankPopUndo.Store(DefaultMaxYankPopUndo)

	for _, opt := range opts {
		opt(y)
	}

	y.subs.Add(editor.OnDidChangeText(y.onDidChangeText))
	y.subs.Add(editor.OnDidChangeSelection(y.onDidChangeSelection))
	return y
}

// Dispose releases the editor subscriptions. It is safe to call more than
// once.
func (y *KillYanker) Dispose() {
	y.subs.Dispose()
}

// Ring returns the kill ring, or nil in clipboard-only mode.
func (y *KillYanker) Ring() *killring.Ring {
	return y.ring
}

// SetLimits updates the deletion attempts and the yank-pop undo bound.
// Values below 1 leave the current setting unchanged. It may be called from
// any goroutine.
func (y *KillYanker) SetLimits(deleteAttempts, maxYankPopUndo int) {
	if deleteAttempts >= 1 {
		y.deleteAttempts.Store(int32(deleteAttempts))
	}
	if maxYankPopUndo >= 1 {
		y.maxYankPopUndo.Store(int32(maxYankPopUndo))
	}
}

// CancelKillAppend makes the next kill start a new ring entry.
func (y *KillYanker) CancelKillAppend() {
	y.isAppending = false
}

// IsYankInterrupted reports whether something other than the yanker changed
// the document or moved the cursors since the last yank.
func (y *KillYanker) IsYankInterrupted() bool {
	if y.docChangedAfterYank {
		return true
	}
	return !buffer.EqualPoints(y.activePositions(), y.prevYankPositions)
}

func (y *KillYanker) onDidChangeText() {
	if y.pasting {
		y.pendingEditCount++
	}
	y.interrupt()
}

func (y *KillYanker) onDidChangeSelection() {
	y.interrupt()
}

// interrupt breaks both the kill-append chain and the yank chain. Kill and
// yank re-arm their own state once their edits have completed.
func (y *KillYanker) interrupt() {
	y.docChangedAfterYank = true
	y.isAppending = false
}

func (y *KillYanker) activePositions() []buffer.Point {
	return cursor.ActivePositions(y.editor.Selections())
}
