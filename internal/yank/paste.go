package yank

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	"github.com/dshills/killring/internal/killring"
)

// Yank pastes the current kill ring entry at every cursor.
//
// Text placed on the clipboard by another application is adopted first: if
// the clipboard differs from the current entry it is pushed as a new entry
// and pasted instead. In clipboard-only mode the clipboard text is pasted
// directly.
func (y *KillYanker) Yank() error {
	text, err := y.clipboard.ReadText()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}

	if y.ring == nil {
		if text == "" {
			return nil
		}
		y.paste(killring.NewClipboardText(text))
		return nil
	}

	top, ok := y.ring.Top()
	if text != "" && (!ok || text != top.String()) {
		adopted := killring.NewClipboardText(text)
		y.ring.Push(adopted)
		top, ok = adopted, true
	}
	if !ok {
		return nil
	}

	y.paste(top)
	return nil
}

// YankPop replaces the text inserted by the previous yank with the next
// older ring entry. It returns ErrNotYank, changing nothing, when the
// document or the cursors changed since that yank.
func (y *KillYanker) YankPop() error {
	if y.ring == nil {
		return nil
	}
	if y.IsYankInterrupted() {
		return ErrNotYank
	}

	undo := min(y.prevYankEditCount, int(y.maxYankPopUndo.Load()))
	for i := 0; i < undo; i++ {
		if err := y.editor.Undo(); err != nil {
			y.logger.Warn("failed to undo previous yank: %v", err)
			return nil
		}
	}

	entity, ok := y.ring.PopNext()
	if !ok {
		return nil
	}
	y.paste(entity)
	return y.writeClipboard(entity.String())
}

// BrowseKillRing lets p choose a ring entry and pastes it like Yank. It
// reports false when the picker was dismissed.
func (y *KillYanker) BrowseKillRing(ctx context.Context, p killring.Picker) (bool, error) {
	if y.ring == nil {
		return false, ErrNoRing
	}

	entity, ok, err := y.ring.Browse(ctx, p)
	if err != nil || !ok {
		return false, err
	}

	y.paste(entity)
	return true, y.writeClipboard(entity.String())
}

// paste inserts entity at the current selections and arms yank-pop.
func (y *KillYanker) paste(entity killring.Entity) {
	edits := y.pasteEdits(entity, y.editor.Selections())

	y.pasting = true
	y.pendingEditCount = 0
	err := y.editor.ApplyEdits(edits)
	y.pasting = false

	if err != nil {
		y.logger.Warn("failed to paste: %v", err)
		y.docChangedAfterYank = true
		return
	}

	y.prevYankEditCount = y.pendingEditCount
	y.docChangedAfterYank = false
	y.prevYankPositions = y.activePositions()
}

// pasteEdits chooses between pasting each cursor's own killed text and
// pasting the flattened text everywhere. Per-cursor paste is used when the
// cursor counts match and the flattened text would not split back into one
// line per cursor.
func (y *KillYanker) pasteEdits(entity killring.Entity, sels []cursor.Selection) []buffer.Edit {
	switch e := entity.(type) {
	case *killring.EditorText:
		if e.RegionCount() == len(sels) && lineCount(e.String()) != e.RegionCount() {
			return y.regionEdits(e, sels)
		}
	case *killring.ClipboardText:
	}
	return genericEdits(entity.String(), sels)
}

func (y *KillYanker) regionEdits(e *killring.EditorText, sels []cursor.Selection) []buffer.Edit {
	regions := e.Regions()
	edits := make([]buffer.Edit, len(sels))
	for i, sel := range sels {
		text := regions[i].Text()
		if regions[i].HasRectModeText() {
			text = y.alignRect(text, sel.Start())
		}
		edits[i] = buffer.NewEdit(sel.Range(), text)
	}
	return edits
}

// genericEdits pastes text at every selection, replacing selected text. With
// several cursors and exactly one line per cursor, each cursor gets its own
// line.
func genericEdits(text string, sels []cursor.Selection) []buffer.Edit {
	lines := buffer.SplitLines(text)
	spread := len(sels) > 1 && len(lines) == len(sels)

	edits := make([]buffer.Edit, len(sels))
	for i, sel := range sels {
		t := text
		if spread {
			t = lines[i]
		}
		edits[i] = buffer.NewEdit(sel.Range(), t)
	}
	return edits
}

// alignRect indents every row after the first to the display column of at,
// so the block keeps its shape when the first row is inserted inline.
func (y *KillYanker) alignRect(text string, at buffer.Point) string {
	rows := buffer.SplitLines(text)
	if len(rows) == 1 {
		return text
	}

	indent := strings.Repeat(" ", prefixWidth(y.editor.LineText(at.Line), at.Column))
	for i := 1; i < len(rows); i++ {
		rows[i] = indent + rows[i]
	}
	return strings.Join(rows, y.editor.EOL())
}

// prefixWidth returns the display width of the first col runes of line.
// Tabs count as one cell.
func prefixWidth(line string, col uint32) int {
	width := 0
	var n uint32
	for _, r := range line {
		if n == col {
			break
		}
		if r == '\t' {
			width++
		} else {
			width += runewidth.RuneWidth(r)
		}
		n++
	}
	return width
}

func lineCount(s string) int {
	return len(buffer.SplitLines(s))
}
