package killring

import (
	"strings"

	"github.com/dshills/killring/internal/engine/buffer"
)

// Direction selects where appended text goes relative to existing text.
type Direction uint8

const (
	// Forward appends after the existing text (kill-word, kill-line).
	Forward Direction = iota
	// Backward prepends before the existing text (backward-kill-word).
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// RegionFragment is one cursor's captured text at one kill event.
type RegionFragment struct {
	Text     string
	Range    buffer.PointRange
	RectMode bool
}

// AppendedRegion is the ordered sequence of fragments killed by one cursor
// slot across a chain of kill-append operations.
type AppendedRegion struct {
	fragments []RegionFragment
}

// NewAppendedRegion creates a region holding the given fragments in order.
func NewAppendedRegion(fragments ...RegionFragment) AppendedRegion {
	out := make([]RegionFragment, len(fragments))
	copy(out, fragments)
	return AppendedRegion{fragments: out}
}

// Fragments returns a copy of the fragments in sequence order.
func (r AppendedRegion) Fragments() []RegionFragment {
	out := make([]RegionFragment, len(r.fragments))
	copy(out, r.fragments)
	return out
}

// Append returns a region with other's fragments placed after (Forward) or
// before (Backward) this region's fragments. Neither input is modified.
func (r AppendedRegion) Append(other AppendedRegion, dir Direction) AppendedRegion {
	merged := make([]RegionFragment, 0, len(r.fragments)+len(other.fragments))
	if dir == Backward {
		merged = append(merged, other.fragments...)
		merged = append(merged, r.fragments...)
	} else {
		merged = append(merged, r.fragments...)
		merged = append(merged, other.fragments...)
	}
	return AppendedRegion{fragments: merged}
}

// Text joins the fragment texts in sequence order with no separator.
func (r AppendedRegion) Text() string {
	var sb strings.Builder
	for _, f := range r.fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// LastRange returns the range of the last fragment in sequence order. It is
// only used to order regions by position.
func (r AppendedRegion) LastRange() buffer.PointRange {
	if len(r.fragments) == 0 {
		return buffer.PointRange{}
	}
	return r.fragments[len(r.fragments)-1].Range
}

// HasRectModeText reports whether any fragment was killed as a rectangle.
func (r AppendedRegion) HasRectModeText() bool {
	for _, f := range r.fragments {
		if f.RectMode {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the accumulated text is empty.
func (r AppendedRegion) IsEmpty() bool {
	for _, f := range r.fragments {
		if f.Text != "" {
			return false
		}
	}
	return true
}
