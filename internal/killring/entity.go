package killring

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/killring/internal/engine/buffer"
)

// EntityKind tags the concrete type of an Entity.
type EntityKind uint8

const (
	// KindClipboard marks text adopted from the system clipboard.
	KindClipboard EntityKind = iota
	// KindEditor marks text killed from the editor.
	KindEditor
)

// String returns the kind name.
func (k EntityKind) String() string {
	switch k {
	case KindClipboard:
		return "clipboard"
	case KindEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// Entity is a kill ring entry. The set of implementations is closed:
// *ClipboardText and *EditorText.
type Entity interface {
	// ID identifies the ring entry. Kill-append keeps the ID of the entry it
	// extends.
	ID() string

	// Kind reports the concrete variant.
	Kind() EntityKind

	// String materializes the entry as one insertable string.
	String() string

	sealed()
}

// ClipboardText is flat text read from the system clipboard.
type ClipboardText struct {
	id   string
	text string
}

// NewClipboardText wraps text read from the system clipboard.
func NewClipboardText(text string) *ClipboardText {
	return &ClipboardText{id: uuid.NewString(), text: text}
}

func (c *ClipboardText) ID() string       { return c.id }
func (c *ClipboardText) Kind() EntityKind { return KindClipboard }
func (c *ClipboardText) String() string   { return c.text }
func (c *ClipboardText) sealed()          {}

// EditorText is text killed from the editor by one or more cursors.
type EditorText struct {
	id      string
	regions []AppendedRegion
	eol     string
}

// NewEditorText creates an entity with one region per fragment. The line
// ending joins regions that start on different lines.
func NewEditorText(fragments []RegionFragment, eol string) *EditorText {
	regions := make([]AppendedRegion, len(fragments))
	for i, f := range fragments {
		regions[i] = NewAppendedRegion(f)
	}
	if eol == "" {
		eol = "\n"
	}
	return &EditorText{id: uuid.NewString(), regions: regions, eol: eol}
}

func (e *EditorText) ID() string       { return e.id }
func (e *EditorText) Kind() EntityKind { return KindEditor }
func (e *EditorText) sealed()          {}

// EOL returns the line ending used to join regions.
func (e *EditorText) EOL() string { return e.eol }

// RegionCount returns the number of cursor slots.
func (e *EditorText) RegionCount() int { return len(e.regions) }

// Regions returns the regions in cursor order.
func (e *EditorText) Regions() []AppendedRegion {
	out := make([]AppendedRegion, len(e.regions))
	copy(out, e.regions)
	return out
}

// Append merges other into a new entity, pairing regions by cursor index.
// The result keeps e's ID. Both inputs are left unchanged.
func (e *EditorText) Append(other *EditorText, dir Direction) (*EditorText, error) {
	if len(e.regions) != len(other.regions) {
		return nil, ErrAppendMismatch
	}

	merged := make([]AppendedRegion, len(e.regions))
	for i, r := range e.regions {
		merged[i] = r.Append(other.regions[i], dir)
	}
	return &EditorText{id: e.id, regions: merged, eol: e.eol}, nil
}

// IsEmpty reports whether every region's text is empty.
func (e *EditorText) IsEmpty() bool {
	for _, r := range e.regions {
		if !r.IsEmpty() {
			return false
		}
	}
	return true
}

// HasRectModeText reports whether any fragment was killed as a rectangle.
func (e *EditorText) HasRectModeText() bool {
	for _, r := range e.regions {
		if r.HasRectModeText() {
			return true
		}
	}
	return false
}

// String orders the regions by the start of their last range and joins their
// texts, inserting the line ending between regions that start on different
// lines.
func (e *EditorText) String() string {
	type positioned struct {
		start buffer.Point
		text  string
	}

	ordered := make([]positioned, len(e.regions))
	for i, r := range e.regions {
		ordered[i] = positioned{start: r.LastRange().Start, text: r.Text()}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].start.Before(ordered[j].start)
	})

	var sb strings.Builder
	for i, p := range ordered {
		if i > 0 && ordered[i-1].start.Line != p.start.Line {
			sb.WriteString(e.eol)
		}
		sb.WriteString(p.text)
	}
	return sb.String()
}
