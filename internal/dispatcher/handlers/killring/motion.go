package killring

import (
	"strings"
	"unicode"

	"github.com/dshills/killring/internal/dispatcher/execctx"
	"github.com/dshills/killring/internal/engine/buffer"
)

// isWordRune reports whether r belongs to a word. Words are runs of
// letters and digits.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordEndForward returns the position after the end of the next word at or
// after p, crossing line boundaries. At the end of the document it returns
// the document end.
func wordEndForward(ed execctx.EditorInterface, p buffer.Point) buffer.Point {
	line, col := p.Line, p.Column
	lastLine := ed.LineCount() - 1
	seenWord := false

	for {
		runes := []rune(ed.LineText(line))
		for int(col) < len(runes) {
			w := isWordRune(runes[col])
			if seenWord && !w {
				return buffer.Point{Line: line, Column: col}
			}
			seenWord = seenWord || w
			col++
		}
		if seenWord || line >= lastLine {
			return buffer.Point{Line: line, Column: uint32(len(runes))}
		}
		line++
		col = 0
	}
}

// wordStartBackward returns the start of the word at or before p, crossing
// line boundaries. At the start of the document it returns the origin.
func wordStartBackward(ed execctx.EditorInterface, p buffer.Point) buffer.Point {
	line, col := p.Line, p.Column
	seenWord := false

	for {
		runes := []rune(ed.LineText(line))
		if int(col) > len(runes) {
			col = uint32(len(runes))
		}
		for col > 0 {
			w := isWordRune(runes[col-1])
			if seenWord && !w {
				return buffer.Point{Line: line, Column: col}
			}
			seenWord = seenWord || w
			col--
		}
		if seenWord || line == 0 {
			return buffer.Point{Line: line, Column: 0}
		}
		line--
		col = uint32(len([]rune(ed.LineText(line))))
	}
}

// lineKillEnd returns where a kill-line starting at p ends. With count 1 the
// kill stops at the end of the line, unless only whitespace remains, in which
// case the line break is killed too. Larger counts kill whole line breaks.
func lineKillEnd(ed execctx.EditorInterface, p buffer.Point, count int) buffer.Point {
	lastLine := ed.LineCount() - 1
	if count > 1 {
		target := uint64(p.Line) + uint64(count)
		if target > uint64(lastLine) {
			return buffer.Point{Line: lastLine, Column: buffer.RuneCount(ed.LineText(lastLine))}
		}
		return buffer.Point{Line: uint32(target), Column: 0}
	}

	text := ed.LineText(p.Line)
	runes := []rune(text)
	if int(p.Column) > len(runes) {
		p.Column = uint32(len(runes))
	}
	rest := string(runes[p.Column:])
	if strings.TrimSpace(rest) == "" && p.Line < lastLine {
		return buffer.Point{Line: p.Line + 1, Column: 0}
	}
	return buffer.Point{Line: p.Line, Column: uint32(len(runes))}
}

// mergeRanges merges overlapping ranges so they can be deleted in a single
// batch. The result keeps the input order: a merged range takes the slot of
// the first range that contributed to it, so region i of the kill still
// belongs to cursor i. Empty ranges are kept unless they fall inside another
// range.
func mergeRanges(ranges []buffer.PointRange) []buffer.PointRange {
	if len(ranges) < 2 {
		return ranges
	}

	rs := make([]buffer.PointRange, len(ranges))
	alive := make([]bool, len(ranges))
	for i, r := range ranges {
		rs[i] = r.Normalize()
		alive[i] = true
	}

	// A widened range can reach ranges it skipped earlier.
	for changed := true; changed; {
		changed = false
		for i := range rs {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < len(rs); j++ {
				if !alive[j] || !overlaps(rs[i], rs[j]) {
					continue
				}
				if rs[j].Start.Before(rs[i].Start) {
					rs[i].Start = rs[j].Start
				}
				if rs[i].End.Before(rs[j].End) {
					rs[i].End = rs[j].End
				}
				alive[j] = false
				changed = true
			}
		}
	}

	out := make([]buffer.PointRange, 0, len(rs))
	for i, r := range rs {
		if alive[i] {
			out = append(out, r)
		}
	}
	return out
}

// overlaps reports whether a and b share text, start at the same point, or
// one is empty and lies strictly inside the other.
func overlaps(a, b buffer.PointRange) bool {
	if a.Start == b.Start {
		return true
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// allEmpty reports whether no range covers any text.
func allEmpty(ranges []buffer.PointRange) bool {
	for _, r := range ranges {
		if !r.IsEmpty() {
			return false
		}
	}
	return true
}
