package browse

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/dshills/killring/internal/killring"
)

// DefaultLabelWidth is the display width labels are truncated to.
const DefaultLabelWidth = 72

const newlineMark = "↵"

// Item is one ring entry as shown in a picker.
type Item struct {
	// Index is the entry's position in the ring, newest first.
	Index int
	ID    string
	Kind  killring.EntityKind
	Label string
}

// Items builds one item per entry. Labels are flattened to a single line and
// truncated to width display cells; width <= 0 uses DefaultLabelWidth.
func Items(entries []killring.Entity, width int) []Item {
	if width <= 0 {
		width = DefaultLabelWidth
	}
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{
			Index: i,
			ID:    e.ID(),
			Kind:  e.Kind(),
			Label: Label(e.String(), width),
		}
	}
	return items
}

// Label flattens text to one line and truncates it to width display cells.
func Label(text string, width int) string {
	r := strings.NewReplacer("\r\n", newlineMark, "\n", newlineMark, "\r", newlineMark, "\t", " ")
	flat := r.Replace(text)
	if runewidth.StringWidth(flat) <= width {
		return flat
	}
	return runewidth.Truncate(flat, width, "…")
}

type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

// Filter returns the items matching query, best match first. An empty query
// returns every item in ring order.
func Filter(query string, items []Item) []Item {
	if strings.TrimSpace(query) == "" {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}

	matches := fuzzy.FindFrom(query, itemSource(items))
	out := make([]Item, len(matches))
	for i, m := range matches {
		out[i] = items[m.Index]
	}
	return out
}
