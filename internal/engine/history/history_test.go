package history

import (
	"errors"
	"testing"

	"github.com/dshills/killring/internal/engine/buffer"
)

func TestPushPop(t *testing.T) {
	h := NewHistory(10)
	if _, err := h.Pop(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Pop on empty = %v", err)
	}

	h.Push(Entry{Inverse: []buffer.Edit{buffer.NewInsert(buffer.Point{}, "a")}})
	h.Push(Entry{Inverse: []buffer.Edit{buffer.NewInsert(buffer.Point{}, "b")}})
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d", h.UndoCount())
	}

	e, err := h.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if e.Inverse[0].NewText != "b" {
		t.Errorf("popped %q, want most recent entry", e.Inverse[0].NewText)
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestMaxEntries(t *testing.T) {
	h := NewHistory(2)
	for _, s := range []string{"a", "b", "c"} {
		h.Push(Entry{Inverse: []buffer.Edit{buffer.NewInsert(buffer.Point{}, s)}})
	}
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2", h.UndoCount())
	}
	h.Pop()
	e, _ := h.Pop()
	if e.Inverse[0].NewText != "b" {
		t.Errorf("oldest entry was not dropped: got %q", e.Inverse[0].NewText)
	}
}
