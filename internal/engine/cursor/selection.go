package cursor

import (
	"fmt"

	"github.com/dshills/killring/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection represents a range of selected text.
// Selection is an immutable value type.
type Selection struct {
	Anchor Point // Where selection started
	Active Point // Current cursor position
}

// NewSelection creates a selection from anchor to active.
func NewSelection(anchor, active Point) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Active: p}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("%s->%s", s.Anchor, s.Active)
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() buffer.PointRange {
	return buffer.NewPointRange(s.Anchor, s.Active)
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	return s.Range().Start
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	return s.Range().End
}

// IsReversed returns true if the active position precedes the anchor.
func (s Selection) IsReversed() bool {
	return s.Active.Before(s.Anchor)
}

// Collapse collapses the selection to a cursor at the active position.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Active, Active: s.Active}
}

// ActivePositions returns the active position of every selection.
func ActivePositions(sels []Selection) []Point {
	out := make([]Point, len(sels))
	for i, s := range sels {
		out[i] = s.Active
	}
	return out
}

// Ranges returns the normalized range of every selection.
func Ranges(sels []Selection) []buffer.PointRange {
	out := make([]buffer.PointRange, len(sels))
	for i, s := range sels {
		out[i] = s.Range()
	}
	return out
}
