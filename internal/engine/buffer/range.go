package buffer

import "fmt"

// PointRange represents a range using line/column positions.
// Start is inclusive, End is exclusive: [Start, End).
type PointRange struct {
	Start Point // Inclusive start position
	End   Point // Exclusive end position
}

// NewPointRange creates a new PointRange from start and end points.
// The result is normalized so that Start <= End.
func NewPointRange(start, end Point) PointRange {
	return PointRange{Start: start, End: end}.Normalize()
}

// String returns a human-readable representation of the range.
func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start.String(), r.End.String())
}

// IsEmpty returns true if start equals end.
func (r PointRange) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if start <= end.
func (r PointRange) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// Normalize returns the range with Start <= End.
func (r PointRange) Normalize() PointRange {
	if r.End.Before(r.Start) {
		return PointRange{Start: r.End, End: r.Start}
	}
	return r
}

// Contains returns true if the given point is within the range.
func (r PointRange) Contains(p Point) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// IsSingleLine returns true if the range spans only one line.
func (r PointRange) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Overlaps returns true if the two ranges share at least one position.
// Touching ranges do not overlap.
func (r PointRange) Overlaps(other PointRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// ColumnSpan returns the smaller and larger column of the range corners.
// This is the column extent of the range when treated as a rectangle.
func (r PointRange) ColumnSpan() (uint32, uint32) {
	if r.Start.Column <= r.End.Column {
		return r.Start.Column, r.End.Column
	}
	return r.End.Column, r.Start.Column
}
