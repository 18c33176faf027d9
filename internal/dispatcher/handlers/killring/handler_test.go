package killring

import (
	"errors"
	"testing"

	"github.com/dshills/killring/internal/clipboard"
	"github.com/dshills/killring/internal/dispatcher/execctx"
	"github.com/dshills/killring/internal/dispatcher/handler"
	"github.com/dshills/killring/internal/engine"
	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	kr "github.com/dshills/killring/internal/killring"
	"github.com/dshills/killring/internal/yank"
)

type fixture struct {
	eng  *engine.Engine
	clip *clipboard.Memory
	ring *kr.Ring
	h    *Handler
	ctx  *execctx.ExecutionContext
}

func newFixture(t *testing.T, content string, opts ...engine.Option) *fixture {
	t.Helper()
	eng := engine.New(append([]engine.Option{engine.WithContent(content)}, opts...)...)
	clip := &clipboard.Memory{}
	ring := kr.NewRing(0)
	y := yank.New(eng, clip, ring)
	t.Cleanup(y.Dispose)

	ctx := execctx.New().WithEditor(eng).WithYanker(y)
	return &fixture{eng: eng, clip: clip, ring: ring, h: NewHandler(), ctx: ctx}
}

func (f *fixture) cursorAt(t *testing.T, line, col uint32) {
	t.Helper()
	if err := f.eng.SetSelections(cursor.NewCursorSelection(buffer.Point{Line: line, Column: col})); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}
}

func (f *fixture) cursorsAt(t *testing.T, points ...buffer.Point) {
	t.Helper()
	sels := make([]cursor.Selection, len(points))
	for i, p := range points {
		sels[i] = cursor.NewCursorSelection(p)
	}
	if err := f.eng.SetSelections(sels...); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}
}

func (f *fixture) run(t *testing.T, name string) handler.Result {
	t.Helper()
	return f.runAction(t, handler.Action{Name: name})
}

func (f *fixture) runAction(t *testing.T, action handler.Action) handler.Result {
	t.Helper()
	f.ctx.Count = action.Count
	return f.h.HandleAction(action, f.ctx)
}

func (f *fixture) top(t *testing.T) string {
	t.Helper()
	e, ok := f.ring.Top()
	if !ok {
		t.Fatal("kill ring is empty")
	}
	return e.String()
}

func TestCanHandle(t *testing.T) {
	h := NewHandler()
	if h.Namespace() != "killring" {
		t.Errorf("Namespace() = %q", h.Namespace())
	}
	for _, name := range []string{ActionKillLine, ActionYank, ActionYankPop, ActionBrowse, ActionCancelAppend} {
		if !h.CanHandle(name) {
			t.Errorf("CanHandle(%q) = false", name)
		}
	}
	if h.CanHandle("killring.unknown") {
		t.Error("CanHandle accepted an unknown action")
	}
}

func TestKillLineTwiceAppendsLineBreak(t *testing.T) {
	f := newFixture(t, "one\ntwo\nthree")
	f.cursorAt(t, 0, 0)

	if r := f.run(t, ActionKillLine); !r.IsOK() {
		t.Fatalf("first killLine: %v", r)
	}
	if got := f.eng.Text(); got != "\ntwo\nthree" {
		t.Fatalf("after first kill = %q", got)
	}
	if r := f.run(t, ActionKillLine); !r.IsOK() {
		t.Fatalf("second killLine: %v", r)
	}
	if got := f.eng.Text(); got != "two\nthree" {
		t.Fatalf("after second kill = %q", got)
	}
	if f.ring.Len() != 1 {
		t.Errorf("ring length = %d, want 1", f.ring.Len())
	}
	if got := f.top(t); got != "one\n" {
		t.Errorf("top = %q, want %q", got, "one\n")
	}

	if r := f.run(t, ActionYank); !r.IsOK() {
		t.Fatalf("yank: %v", r)
	}
	if got := f.eng.Text(); got != "one\ntwo\nthree" {
		t.Errorf("after yank = %q", got)
	}
}

func TestKillLineWithCount(t *testing.T) {
	f := newFixture(t, "a\nb\nc\nd")
	f.cursorAt(t, 0, 0)

	if r := f.runAction(t, handler.Action{Name: ActionKillLine, Count: 2}); !r.IsOK() {
		t.Fatalf("killLine: %v", r)
	}
	if got := f.eng.Text(); got != "c\nd" {
		t.Errorf("text = %q, want %q", got, "c\nd")
	}
	if got := f.top(t); got != "a\nb\n" {
		t.Errorf("top = %q", got)
	}
}

func TestKillLineAtEndOfBuffer(t *testing.T) {
	f := newFixture(t, "abc")
	f.cursorAt(t, 0, 3)

	r := f.run(t, ActionKillLine)
	if r.Status != handler.StatusNoOp || r.Message != "End of buffer" {
		t.Errorf("result = %v, want no-op End of buffer", r)
	}
}

func TestKillWordForwardAppends(t *testing.T) {
	f := newFixture(t, "foo bar baz")
	f.cursorAt(t, 0, 0)

	f.run(t, ActionKillWord)
	f.run(t, ActionKillWord)

	if got := f.eng.Text(); got != " baz" {
		t.Errorf("text = %q, want %q", got, " baz")
	}
	if got := f.top(t); got != "foo bar" {
		t.Errorf("top = %q, want %q", got, "foo bar")
	}
}

func TestBackwardKillWordPrepends(t *testing.T) {
	f := newFixture(t, "foo bar baz")
	f.cursorAt(t, 0, 11)

	f.run(t, ActionBackwardKillWord)
	f.run(t, ActionBackwardKillWord)

	if got := f.eng.Text(); got != "foo " {
		t.Errorf("text = %q, want %q", got, "foo ")
	}
	if got := f.top(t); got != "bar baz" {
		t.Errorf("top = %q, want %q", got, "bar baz")
	}
	if f.ring.Len() != 1 {
		t.Errorf("ring length = %d, want 1", f.ring.Len())
	}
}

func TestMultiCursorKillWordRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cursors []buffer.Point
	}{
		{"position order", "aa bb", []buffer.Point{pt(0, 0), pt(0, 3)}},
		{"reverse order", "aa bb", []buffer.Point{pt(0, 3), pt(0, 0)}},
		{"reverse across lines", "one\ntwo", []buffer.Point{pt(1, 0), pt(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.content)
			f.cursorsAt(t, tt.cursors...)

			if r := f.run(t, ActionKillWord); !r.IsOK() {
				t.Fatalf("killWord: %v", r)
			}
			if r := f.run(t, ActionYank); !r.IsOK() {
				t.Fatalf("yank: %v", r)
			}
			if got := f.eng.Text(); got != tt.content {
				t.Errorf("round trip = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestMultiCursorKillWordAppendsPerCursor(t *testing.T) {
	f := newFixture(t, "aa xx bb yy")
	f.cursorsAt(t, pt(0, 6), pt(0, 0))

	f.run(t, ActionKillWord)
	f.run(t, ActionKillWord)

	if got := f.eng.Text(); got != " " {
		t.Fatalf("text after kills = %q, want %q", got, " ")
	}
	if f.ring.Len() != 1 {
		t.Fatalf("ring length = %d, want 1", f.ring.Len())
	}
	top, _ := f.ring.Top()
	et, ok := top.(*kr.EditorText)
	if !ok || et.RegionCount() != 2 {
		t.Fatalf("top = %#v, want editor text with 2 regions", top)
	}
	regions := et.Regions()
	if got := regions[0].Text(); got != "bb yy" {
		t.Errorf("region 0 = %q, want %q", got, "bb yy")
	}
	if got := regions[1].Text(); got != "aa xx" {
		t.Errorf("region 1 = %q, want %q", got, "aa xx")
	}

	if r := f.run(t, ActionYank); !r.IsOK() {
		t.Fatalf("yank: %v", r)
	}
	if got := f.eng.Text(); got != "aa xx bb yy" {
		t.Errorf("after yank = %q, want %q", got, "aa xx bb yy")
	}
}

func TestCancelAppendStartsNewEntry(t *testing.T) {
	f := newFixture(t, "aaa bbb")
	f.cursorAt(t, 0, 0)

	f.run(t, ActionKillWord)
	if r := f.run(t, ActionCancelAppend); !r.IsOK() {
		t.Fatalf("cancelAppend: %v", r)
	}
	f.run(t, ActionKillWord)

	if f.ring.Len() != 2 {
		t.Fatalf("ring length = %d, want 2", f.ring.Len())
	}
	if got := f.top(t); got != " bbb" {
		t.Errorf("top = %q, want %q", got, " bbb")
	}
}

func TestYankPopCyclesEntries(t *testing.T) {
	f := newFixture(t, "aaa bbb")
	f.cursorAt(t, 0, 0)
	f.run(t, ActionKillWord)
	f.run(t, ActionCancelAppend)
	f.run(t, ActionKillWord)

	f.run(t, ActionYank)
	if got := f.eng.Text(); got != " bbb" {
		t.Fatalf("after yank = %q", got)
	}
	if r := f.run(t, ActionYankPop); !r.IsOK() {
		t.Fatalf("yankPop: %v", r)
	}
	if got := f.eng.Text(); got != "aaa" {
		t.Errorf("after yankPop = %q, want %q", got, "aaa")
	}
}

func TestYankPopWithoutYank(t *testing.T) {
	f := newFixture(t, "text")
	f.ring.Push(kr.NewClipboardText("x"))

	r := f.run(t, ActionYankPop)
	if !r.IsError() || !errors.Is(r.Error, yank.ErrNotYank) {
		t.Fatalf("result = %v, want ErrNotYank", r)
	}
	if r.Message != "Previous command was not a yank" {
		t.Errorf("message = %q", r.Message)
	}
	if got := f.eng.Text(); got != "text" {
		t.Errorf("document changed to %q", got)
	}
}

func TestKillRegion(t *testing.T) {
	f := newFixture(t, "hello world")
	sel := cursor.NewSelection(buffer.Point{Column: 5}, buffer.Point{Column: 11})
	if err := f.eng.SetSelections(sel); err != nil {
		t.Fatal(err)
	}

	if r := f.run(t, ActionKillRegion); !r.IsOK() {
		t.Fatalf("killRegion: %v", r)
	}
	if got := f.eng.Text(); got != "hello" {
		t.Errorf("text = %q", got)
	}
	if got := f.top(t); got != " world" {
		t.Errorf("top = %q", got)
	}
}

func TestKillRegionEmpty(t *testing.T) {
	f := newFixture(t, "hello")
	f.cursorAt(t, 0, 2)

	r := f.run(t, ActionKillRegion)
	if r.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", r.Status)
	}
	if f.ring.Len() != 0 {
		t.Errorf("ring length = %d, want 0", f.ring.Len())
	}
}

func TestCopyRegionCollapsesSelection(t *testing.T) {
	f := newFixture(t, "hello world")
	sel := cursor.NewSelection(buffer.Point{Column: 0}, buffer.Point{Column: 3})
	if err := f.eng.SetSelections(sel); err != nil {
		t.Fatal(err)
	}

	if r := f.run(t, ActionCopyRegion); !r.IsOK() {
		t.Fatalf("copyRegion: %v", r)
	}
	if got := f.eng.Text(); got != "hello world" {
		t.Errorf("document changed to %q", got)
	}
	if got := f.top(t); got != "hel" {
		t.Errorf("top = %q", got)
	}
	if text, _ := f.clip.ReadText(); text != "hel" {
		t.Errorf("clipboard = %q", text)
	}
	if sels := f.eng.Selections(); !sels[0].IsEmpty() || sels[0].Active != (buffer.Point{Column: 3}) {
		t.Errorf("selection = %v, want cursor at 0:3", sels[0])
	}
}

func TestKillRectangle(t *testing.T) {
	f := newFixture(t, "abcd\nefgh\nijkl")
	sel := cursor.NewSelection(buffer.Point{Line: 0, Column: 1}, buffer.Point{Line: 2, Column: 3})
	if err := f.eng.SetSelections(sel); err != nil {
		t.Fatal(err)
	}

	if r := f.run(t, ActionKillRectangle); !r.IsOK() {
		t.Fatalf("killRectangle: %v", r)
	}
	if got := f.eng.Text(); got != "ad\neh\nil" {
		t.Errorf("text = %q", got)
	}
	if got := f.top(t); got != "bc\nfg\njk" {
		t.Errorf("top = %q", got)
	}
}

func TestBrowseByIndex(t *testing.T) {
	f := newFixture(t, "")
	f.ring.Push(kr.NewClipboardText("old"))
	f.ring.Push(kr.NewClipboardText("new"))

	r := f.runAction(t, handler.Action{Name: ActionBrowse}.WithArg(ArgIndex, 1))
	if !r.IsOK() {
		t.Fatalf("browse: %v", r)
	}
	if got := f.eng.Text(); got != "old" {
		t.Errorf("text = %q, want %q", got, "old")
	}
	if p, _ := f.ring.Pointer(); p != 1 {
		t.Errorf("pointer = %d, want 1", p)
	}
}

func TestBrowseByQuery(t *testing.T) {
	f := newFixture(t, "")
	f.ring.Push(kr.NewClipboardText("fmt.Println"))
	f.ring.Push(kr.NewClipboardText("return nil"))

	r := f.runAction(t, handler.Action{Name: ActionBrowse, Args: handler.Args{Text: "fmt"}})
	if !r.IsOK() {
		t.Fatalf("browse: %v", r)
	}
	if got := f.eng.Text(); got != "fmt.Println" {
		t.Errorf("text = %q", got)
	}
}

func TestBrowseWithoutPicker(t *testing.T) {
	f := newFixture(t, "")
	f.ring.Push(kr.NewClipboardText("x"))

	r := f.run(t, ActionBrowse)
	if !errors.Is(r.Error, execctx.ErrMissingPicker) {
		t.Errorf("error = %v, want ErrMissingPicker", r.Error)
	}
}

func TestBrowseEmptyRing(t *testing.T) {
	f := newFixture(t, "")
	r := f.runAction(t, handler.Action{Name: ActionBrowse}.WithArg(ArgIndex, 0))
	if r.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", r.Status)
	}
}

func TestReadOnlyRejectsKill(t *testing.T) {
	f := newFixture(t, "text", engine.WithReadOnly())
	r := f.run(t, ActionKillLine)
	if !errors.Is(r.Error, execctx.ErrReadOnly) {
		t.Errorf("error = %v, want ErrReadOnly", r.Error)
	}
}

func TestMissingYanker(t *testing.T) {
	h := NewHandler()
	r := h.HandleAction(handler.Action{Name: ActionYank}, execctx.New())
	if !r.IsError() {
		t.Error("expected an error without editor and yanker")
	}
}
