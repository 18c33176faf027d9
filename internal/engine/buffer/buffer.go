package buffer

import (
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrPointOutOfRange = errors.New("point out of range")
	ErrRangeInvalid    = errors.New("invalid range")
	ErrEditsOverlap    = errors.New("edits overlap")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer stores text as a slice of lines without their terminators.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	lineEnding LineEnding
	tabWidth   int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines = SplitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// SplitLines splits text on any line ending. The result always has at least
// one element.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// RuneCount returns the number of runes in s as a column width.
func RuneCount(s string) uint32 {
	return uint32(utf8.RuneCountInString(s))
}

// byteIndex converts a rune column to a byte index within line, clamped to
// the line length.
func byteIndex(line string, col uint32) int {
	var n uint32
	for i := range line {
		if n == col {
			return i
		}
		n++
	}
	return len(line)
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lines))
}

// LineText returns the text of a specific line (without newline).
// Lines past the end of the buffer are empty.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if int(line) >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of a specific line in runes.
func (b *Buffer) LineLen(line uint32) uint32 {
	return RuneCount(b.LineText(line))
}

// End returns the position just past the last character.
func (b *Buffer) End() Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := uint32(len(b.lines) - 1)
	return Point{Line: last, Column: RuneCount(b.lines[last])}
}

// Clamp returns the nearest valid position to p.
func (b *Buffer) Clamp(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clampLocked(p)
}

func (b *Buffer) clampLocked(p Point) Point {
	last := uint32(len(b.lines) - 1)
	if p.Line > last {
		return Point{Line: last, Column: RuneCount(b.lines[last])}
	}
	if n := RuneCount(b.lines[p.Line]); p.Column > n {
		p.Column = n
	}
	return p
}

// TextRange returns the text covered by r. Positions are clamped.
func (b *Buffer) TextRange(r PointRange) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.textRangeLocked(r)
}

func (b *Buffer) textRangeLocked(r PointRange) string {
	r = r.Normalize()
	start := b.clampLocked(r.Start)
	end := b.clampLocked(r.End)

	first := b.lines[start.Line]
	if start.Line == end.Line {
		return first[byteIndex(first, start.Column):byteIndex(first, end.Column)]
	}

	var sb strings.Builder
	eol := b.lineEnding.Sequence()
	sb.WriteString(first[byteIndex(first, start.Column):])
	for l := start.Line + 1; l < end.Line; l++ {
		sb.WriteString(eol)
		sb.WriteString(b.lines[l])
	}
	last := b.lines[end.Line]
	sb.WriteString(eol)
	sb.WriteString(last[:byteIndex(last, end.Column)])
	return sb.String()
}

// Write Operations

// Apply applies a batch of edits atomically. Ranges are expressed in the
// coordinates of the buffer before any edit of the batch is applied and must
// not overlap. Edits are applied from the bottom of the buffer upwards.
//
// It returns the applied edits in application order and their inverses in
// the same order. Passing the inverses to Revert restores the prior content.
func (b *Buffer) Apply(edits []Edit) (applied []Edit, inverse []Edit, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ordered := make([]Edit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[j].Range.Start.Before(ordered[i].Range.Start)
	})

	for i, edit := range ordered {
		if !edit.Range.IsValid() {
			return nil, nil, ErrRangeInvalid
		}
		if !b.validLocked(edit.Range.Start) || !b.validLocked(edit.Range.End) {
			return nil, nil, ErrPointOutOfRange
		}
		if i > 0 && ordered[i-1].Range.Start.Before(edit.Range.End) {
			return nil, nil, ErrEditsOverlap
		}
	}

	applied = make([]Edit, 0, len(ordered))
	inverse = make([]Edit, 0, len(ordered))
	for _, edit := range ordered {
		if edit.IsNoOp() {
			continue
		}
		inverse = append(inverse, b.replaceLocked(edit))
		applied = append(applied, edit)
	}
	return applied, inverse, nil
}

// Revert undoes a batch previously returned as inverse edits by Apply.
func (b *Buffer) Revert(inverse []Edit) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(inverse) - 1; i >= 0; i-- {
		edit := inverse[i]
		if !b.validLocked(edit.Range.Start) || !b.validLocked(edit.Range.End) {
			return ErrPointOutOfRange
		}
		b.replaceLocked(edit)
	}
	return nil
}

func (b *Buffer) validLocked(p Point) bool {
	if int(p.Line) >= len(b.lines) {
		return false
	}
	return p.Column <= RuneCount(b.lines[p.Line])
}

// replaceLocked replaces edit.Range with edit.NewText and returns the edit
// that reverses it.
func (b *Buffer) replaceLocked(edit Edit) Edit {
	oldText := b.textRangeLocked(edit.Range)
	start, end := edit.Range.Start, edit.Range.End

	first := b.lines[start.Line]
	last := b.lines[end.Line]
	prefix := first[:byteIndex(first, start.Column)]
	suffix := last[byteIndex(last, end.Column):]

	inserted := SplitLines(edit.NewText)
	replacement := make([]string, len(inserted))
	copy(replacement, inserted)
	replacement[0] = prefix + replacement[0]
	replacement[len(replacement)-1] += suffix

	lines := make([]string, 0, len(b.lines)-int(end.Line-start.Line)+len(replacement)-1)
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines

	return Edit{
		Range:   PointRange{Start: start, End: edit.InsertedEnd()},
		NewText: oldText,
	}
}

// Buffer State

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetLineEnding sets the buffer's line ending style.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}
