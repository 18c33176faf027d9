package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   PointRange // The range to replace
	NewText string     // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r PointRange, newText string) Edit {
	return Edit{Range: r.Normalize(), NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(p Point, text string) Edit {
	return Edit{
		Range:   PointRange{Start: p, End: p},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r PointRange) Edit {
	return Edit{Range: r.Normalize()}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// InsertedEnd returns the position just past the new text once the edit has
// been applied at its range start.
func (e Edit) InsertedEnd() Point {
	lines := SplitLines(e.NewText)
	if len(lines) == 1 {
		return Point{
			Line:   e.Range.Start.Line,
			Column: e.Range.Start.Column + RuneCount(lines[0]),
		}
	}
	return Point{
		Line:   e.Range.Start.Line + uint32(len(lines)-1),
		Column: RuneCount(lines[len(lines)-1]),
	}
}
