package killring

import (
	"errors"
	"testing"

	"github.com/dshills/killring/internal/engine/buffer"
)

func frag(text string, l1, c1, l2, c2 uint32) RegionFragment {
	return RegionFragment{
		Text:  text,
		Range: buffer.NewPointRange(buffer.NewPoint(l1, c1), buffer.NewPoint(l2, c2)),
	}
}

func TestEditorTextStringSeparators(t *testing.T) {
	tests := []struct {
		name      string
		fragments []RegionFragment
		want      string
	}{
		{
			name:      "different lines get one separator",
			fragments: []RegionFragment{frag("foo", 0, 0, 0, 3), frag("bar", 1, 0, 1, 3)},
			want:      "foo\nbar",
		},
		{
			name:      "same line concatenates",
			fragments: []RegionFragment{frag("foo", 0, 0, 0, 3), frag("bar", 0, 5, 0, 8)},
			want:      "foobar",
		},
		{
			name:      "ordered by position not cursor index",
			fragments: []RegionFragment{frag("second", 2, 1, 2, 7), frag("first", 0, 4, 0, 9), frag("mid", 0, 10, 0, 13)},
			want:      "firstmid\nsecond",
		},
		{
			name:      "multi-line fragment keeps its own newlines",
			fragments: []RegionFragment{frag("a\nb", 0, 0, 1, 1), frag("c", 3, 0, 3, 1)},
			want:      "a\nb\nc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditorText(tt.fragments, "\n")
			if got := e.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditorTextUsesEntityEOL(t *testing.T) {
	e := NewEditorText([]RegionFragment{frag("x", 0, 0, 0, 1), frag("y", 1, 0, 1, 1)}, "\r\n")
	if got := e.String(); got != "x\r\ny" {
		t.Errorf("String() = %q", got)
	}
}

func TestEditorTextAppendDirections(t *testing.T) {
	base := NewEditorText([]RegionFragment{frag("bbb", 0, 4, 0, 7)}, "\n")

	fwd, err := base.Append(NewEditorText([]RegionFragment{frag(" ccc", 0, 4, 0, 8)}, "\n"), Forward)
	if err != nil {
		t.Fatal(err)
	}
	if got := fwd.String(); got != "bbb ccc" {
		t.Errorf("forward append = %q", got)
	}

	back, err := fwd.Append(NewEditorText([]RegionFragment{frag("aaa ", 0, 0, 0, 4)}, "\n"), Backward)
	if err != nil {
		t.Fatal(err)
	}
	if got := back.String(); got != "aaa bbb ccc" {
		t.Errorf("backward append = %q", got)
	}
	if back.ID() != base.ID() {
		t.Error("append changed the entity ID")
	}
	if got := base.String(); got != "bbb" {
		t.Errorf("append mutated its receiver: %q", got)
	}
}

func TestEditorTextAppendMismatch(t *testing.T) {
	one := NewEditorText([]RegionFragment{frag("a", 0, 0, 0, 1)}, "\n")
	two := NewEditorText([]RegionFragment{frag("b", 0, 0, 0, 1), frag("c", 1, 0, 1, 1)}, "\n")

	if _, err := one.Append(two, Forward); !errors.Is(err, ErrAppendMismatch) {
		t.Errorf("Append err = %v, want ErrAppendMismatch", err)
	}
}

func TestEditorTextAppendPairsByCursor(t *testing.T) {
	first := NewEditorText([]RegionFragment{frag("a1", 0, 0, 0, 2), frag("b1", 1, 0, 1, 2)}, "\n")
	second := NewEditorText([]RegionFragment{frag("a2", 0, 0, 0, 2), frag("b2", 1, 0, 1, 2)}, "\n")

	merged, err := first.Append(second, Forward)
	if err != nil {
		t.Fatal(err)
	}
	regions := merged.Regions()
	if regions[0].Text() != "a1a2" || regions[1].Text() != "b1b2" {
		t.Errorf("regions = %q, %q", regions[0].Text(), regions[1].Text())
	}
	if got := merged.String(); got != "a1a2\nb1b2" {
		t.Errorf("String() = %q", got)
	}
}

func TestEditorTextPredicates(t *testing.T) {
	empty := NewEditorText([]RegionFragment{frag("", 0, 0, 0, 0), frag("", 1, 0, 1, 0)}, "\n")
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for empty regions")
	}

	rect := frag("ab\ncd", 0, 1, 1, 3)
	rect.RectMode = true
	mixed := NewEditorText([]RegionFragment{frag("x", 0, 0, 0, 1), rect}, "\n")
	if !mixed.HasRectModeText() {
		t.Error("HasRectModeText() = false with a rectangle fragment")
	}
	if mixed.IsEmpty() {
		t.Error("IsEmpty() = true with text")
	}
	if empty.HasRectModeText() {
		t.Error("HasRectModeText() = true without rectangles")
	}
}

func TestEntityKinds(t *testing.T) {
	var entities = []Entity{
		NewClipboardText("clip"),
		NewEditorText([]RegionFragment{frag("ed", 0, 0, 0, 2)}, "\n"),
	}
	for _, e := range entities {
		switch v := e.(type) {
		case *ClipboardText:
			if v.Kind() != KindClipboard || v.String() != "clip" {
				t.Errorf("clipboard entity = %v %q", v.Kind(), v.String())
			}
		case *EditorText:
			if v.Kind() != KindEditor || v.String() != "ed" {
				t.Errorf("editor entity = %v %q", v.Kind(), v.String())
			}
		}
		if e.ID() == "" {
			t.Error("entity has no ID")
		}
	}
	if entities[0].ID() == entities[1].ID() {
		t.Error("entities share an ID")
	}
}
