package cursor

import "github.com/dshills/killring/internal/engine/buffer"

// TransformPoint updates a position after a single applied edit.
//
// Transformation rules:
//   - If the edit ends at or before the point: shift the point by the edit
//   - If the edit starts after the point: point unchanged
//   - If the edit spans the point: move the point to the end of the new text
func TransformPoint(p Point, edit buffer.Edit) Point {
	start, end := edit.Range.Start, edit.Range.End
	newEnd := edit.InsertedEnd()

	if !end.After(p) {
		if p.Line == end.Line {
			return Point{Line: newEnd.Line, Column: newEnd.Column + p.Column - end.Column}
		}
		return Point{Line: p.Line - end.Line + newEnd.Line, Column: p.Column}
	}
	if start.After(p) {
		return p
	}
	return newEnd
}

// TransformSelection maps both ends of a selection through an edit.
func TransformSelection(s Selection, edit buffer.Edit) Selection {
	return Selection{
		Anchor: TransformPoint(s.Anchor, edit),
		Active: TransformPoint(s.Active, edit),
	}
}

// TransformSelections maps selections through edits given in application
// order. The input slice is not modified.
func TransformSelections(sels []Selection, applied []buffer.Edit) []Selection {
	out := make([]Selection, len(sels))
	copy(out, sels)
	for _, edit := range applied {
		for i := range out {
			out[i] = TransformSelection(out[i], edit)
		}
	}
	return out
}
