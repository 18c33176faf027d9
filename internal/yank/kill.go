package yank

import (
	"fmt"
	"strings"

	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/killring"
)

// Kill records the text of ranges in the kill ring and deletes it.
//
// The kill extends the current ring entry when the previous command was a
// kill at the same cursor positions and every range is non-empty. In
// rectangle mode each range is treated as a column block. A deletion the
// editor rejects is retried and then abandoned with a warning; only
// clipboard failures are returned.
func (y *KillYanker) Kill(ranges []buffer.PointRange, rectMode bool, dir killring.Direction) error {
	if anyEmpty(ranges) || !buffer.EqualPoints(y.activePositions(), y.prevKillPositions) {
		y.isAppending = false
	}

	if err := y.Copy(ranges, rectMode, y.isAppending, dir); err != nil {
		return err
	}

	y.deleteRanges(ranges, rectMode)

	y.isAppending = true
	y.prevKillPositions = y.activePositions()
	return nil
}

// Copy records the text of ranges without deleting it. When appending is
// true and the current entry was killed from the editor, the text is merged
// into that entry; otherwise a new entry is pushed. The resulting entry is
// written to the clipboard.
func (y *KillYanker) Copy(ranges []buffer.PointRange, rectMode, appending bool, dir killring.Direction) error {
	fragments := make([]killring.RegionFragment, len(ranges))
	for i, r := range ranges {
		text := y.editor.TextRange(r)
		if rectMode {
			text = y.columnarText(r)
		}
		fragments[i] = killring.RegionFragment{Text: text, Range: r, RectMode: rectMode}
	}
	entity := killring.NewEditorText(fragments, y.editor.EOL())

	if y.ring == nil {
		return y.writeClipboard(entity.String())
	}

	if appending {
		if merged, ok := y.appendToTop(entity, dir); ok {
			return y.writeClipboard(merged.String())
		}
	}

	y.ring.Push(entity)
	return y.writeClipboard(entity.String())
}

// appendToTop merges entity into the current entry. It reports false when
// the current entry is not editor text or has a different cursor count.
func (y *KillYanker) appendToTop(entity *killring.EditorText, dir killring.Direction) (*killring.EditorText, bool) {
	top, ok := y.ring.Top()
	if !ok {
		return nil, false
	}

	switch t := top.(type) {
	case *killring.EditorText:
		merged, err := t.Append(entity, dir)
		if err != nil {
			y.logger.Debug("starting a new entry: %v", err)
			return nil, false
		}
		y.replaceTop(merged)
		return merged, true
	case *killring.ClipboardText:
		return nil, false
	default:
		return nil, false
	}
}

// replaceTop installs merged as the current entry, pushing it instead when
// the ring was emptied since it was read.
func (y *KillYanker) replaceTop(merged *killring.EditorText) {
	if err := y.ring.ReplaceTop(merged); err != nil {
		y.logger.Debug("pushing merged kill: %v", err)
		y.ring.Push(merged)
	}
}

func (y *KillYanker) writeClipboard(text string) error {
	if err := y.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// deleteRanges removes the killed text, retrying rejected batches.
func (y *KillYanker) deleteRanges(ranges []buffer.PointRange, rectMode bool) {
	var targets []buffer.PointRange
	if rectMode {
		for _, r := range ranges {
			targets = append(targets, y.rectLineRanges(r)...)
		}
	} else {
		targets = ranges
	}

	edits := make([]buffer.Edit, 0, len(targets))
	for _, r := range targets {
		if !r.IsEmpty() {
			edits = append(edits, buffer.NewDelete(r))
		}
	}
	if len(edits) == 0 {
		return
	}

	attempts := int(y.deleteAttempts.Load())
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = y.editor.ApplyEdits(edits); err == nil {
			return
		}
		y.logger.Debug("delete attempt %d/%d failed: %v", attempt, attempts, err)
	}
	y.logger.Warn("failed to delete killed text after %d attempts: %v", attempts, err)
}

// columnarText returns the column block spanned by r, one line per covered
// row, joined with the document line ending.
func (y *KillYanker) columnarText(r buffer.PointRange) string {
	rows := y.rectLineRanges(r)
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = y.editor.TextRange(row)
	}
	return strings.Join(lines, y.editor.EOL())
}

// rectLineRanges splits the rectangle spanned by r into one single-line range
// per covered line. Columns are clipped to each line's length.
func (y *KillYanker) rectLineRanges(r buffer.PointRange) []buffer.PointRange {
	r = r.Normalize()
	lo, hi := r.Start.Column, r.End.Column
	if lo > hi {
		lo, hi = hi, lo
	}

	last := r.End.Line
	if n := y.editor.LineCount(); n > 0 && last >= n {
		last = n - 1
	}
	if r.Start.Line > last {
		return nil
	}

	rows := make([]buffer.PointRange, 0, last-r.Start.Line+1)
	for line := r.Start.Line; line <= last; line++ {
		length := buffer.RuneCount(y.editor.LineText(line))
		start, end := min(lo, length), min(hi, length)
		rows = append(rows, buffer.PointRange{
			Start: buffer.NewPoint(line, start),
			End:   buffer.NewPoint(line, end),
		})
	}
	return rows
}

func anyEmpty(ranges []buffer.PointRange) bool {
	for _, r := range ranges {
		if r.IsEmpty() {
			return true
		}
	}
	return false
}
