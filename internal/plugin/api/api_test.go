package api

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/killring/internal/clipboard"
	"github.com/dshills/killring/internal/dispatcher"
	krhandler "github.com/dshills/killring/internal/dispatcher/handlers/killring"
	"github.com/dshills/killring/internal/engine"
	"github.com/dshills/killring/internal/killring"
	"github.com/dshills/killring/internal/yank"
)

type env struct {
	eng  *engine.Engine
	ring *killring.Ring
	L    *lua.LState
}

func newEnv(t *testing.T, content string) *env {
	t.Helper()

	eng := engine.New(engine.WithContent(content))
	ring := killring.NewRing(0)
	y := yank.New(eng, &clipboard.Memory{}, ring)
	t.Cleanup(y.Dispose)

	d := dispatcher.NewWithDefaults()
	d.SetEditor(eng)
	d.SetYanker(y)
	d.RegisterNamespace(krhandler.NewHandler())

	ctx := &Context{Buffer: eng, Cursor: eng, Ring: ring, Dispatcher: d}
	reg, err := DefaultRegistry(ctx)
	if err != nil {
		t.Fatalf("DefaultRegistry: %v", err)
	}

	L := lua.NewState()
	t.Cleanup(L.Close)
	if err := reg.InjectAll(L); err != nil {
		t.Fatalf("InjectAll: %v", err)
	}
	if err := L.DoString(`ks = require("ks")`); err != nil {
		t.Fatalf("require ks: %v", err)
	}
	return &env{eng: eng, ring: ring, L: L}
}

func (e *env) do(t *testing.T, code string) {
	t.Helper()
	if err := e.L.DoString(code); err != nil {
		t.Fatalf("DoString(%q): %v", code, err)
	}
}

func (e *env) global(name string) lua.LValue {
	return e.L.GetGlobal(name)
}

func TestRegistryList(t *testing.T) {
	reg, err := DefaultRegistry(&Context{})
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Join(reg.List(), ",")
	if got != "buf,cursor,killring" {
		t.Errorf("List() = %s", got)
	}
	if err := reg.Register(NewBufferModule(&Context{})); err == nil {
		t.Error("duplicate Register should fail")
	}
}

func TestInternalGlobalsRemoved(t *testing.T) {
	e := newEnv(t, "")
	for _, name := range []string{"_ks_buf", "_ks_cursor", "_ks_killring"} {
		if v := e.global(name); v != lua.LNil {
			t.Errorf("%s still set", name)
		}
	}
}

func TestBufferModule(t *testing.T) {
	e := newEnv(t, "one\ntwo")
	e.do(t, `text = ks.buf.text(); second = ks.buf.line(2); n = ks.buf.line_count()`)

	if got := e.global("text").String(); got != "one\ntwo" {
		t.Errorf("text = %q", got)
	}
	if got := e.global("second").String(); got != "two" {
		t.Errorf("second = %q", got)
	}
	if got := e.global("n"); got != lua.LNumber(2) {
		t.Errorf("n = %v", got)
	}
	if err := e.L.DoString(`ks.buf.line(3)`); err == nil {
		t.Error("line(3) should fail")
	}
}

func TestCursorModule(t *testing.T) {
	e := newEnv(t, "hello\nworld")
	e.do(t, `ks.cursor.set(1, 2, 2, 3)`)

	sels := e.eng.Selections()
	if len(sels) != 1 {
		t.Fatalf("selections = %v", sels)
	}
	if sels[0].Anchor.Line != 0 || sels[0].Anchor.Column != 1 || sels[0].Active.Line != 1 || sels[0].Active.Column != 2 {
		t.Errorf("selection = %v", sels[0])
	}

	e.do(t, `ks.cursor.add(1, 1); cs = ks.cursor.get(); count = #cs; line = cs[2].line; col = cs[2].col`)
	if got := e.global("count"); got != lua.LNumber(2) {
		t.Errorf("count = %v", got)
	}
	if e.global("line") != lua.LNumber(1) || e.global("col") != lua.LNumber(1) {
		t.Errorf("second cursor = %v:%v", e.global("line"), e.global("col"))
	}

	if err := e.L.DoString(`ks.cursor.set(0, 1)`); err == nil {
		t.Error("set(0, 1) should fail")
	}
}

func TestKillRingRunAndInspect(t *testing.T) {
	e := newEnv(t, "alpha beta")
	e.do(t, `
		ks.cursor.set(1, 1)
		ok1 = ks.killring.run("killWord")
		ks.killring.run("cancelAppend")
		ok2 = ks.killring.run("killring.killWord")
		size = ks.killring.size()
		top = ks.killring.top()
		ptr = ks.killring.pointer()
		local list = ks.killring.entries()
		oldest = list[2].text
		kind = list[1].kind
	`)

	if e.global("ok1") != lua.LTrue || e.global("ok2") != lua.LTrue {
		t.Fatalf("run results = %v, %v", e.global("ok1"), e.global("ok2"))
	}
	if got := e.global("size"); got != lua.LNumber(2) {
		t.Errorf("size = %v", got)
	}
	if got := e.global("top").String(); got != " beta" {
		t.Errorf("top = %q", got)
	}
	if got := e.global("ptr"); got != lua.LNumber(1) {
		t.Errorf("pointer = %v", got)
	}
	if got := e.global("oldest").String(); got != "alpha" {
		t.Errorf("oldest = %q", got)
	}
	if got := e.global("kind").String(); got != "editor" {
		t.Errorf("kind = %q", got)
	}
}

func TestKillRingSelectAndBrowse(t *testing.T) {
	e := newEnv(t, "")
	e.ring.Push(killring.NewClipboardText("first"))
	e.ring.Push(killring.NewClipboardText("second"))

	e.do(t, `ks.killring.select(2); top = ks.killring.top()`)
	if got := e.global("top").String(); got != "first" {
		t.Errorf("top after select = %q", got)
	}

	e.do(t, `ok, msg = ks.killring.run("browse", {index = 1})`)
	if e.global("ok") != lua.LTrue {
		t.Fatalf("browse failed: %v", e.global("msg"))
	}
	if got := e.eng.Text(); got != "second" {
		t.Errorf("text = %q", got)
	}

	if err := e.L.DoString(`ks.killring.select(9)`); err == nil {
		t.Error("select(9) should fail")
	}
}

func TestKillRingRunReportsErrors(t *testing.T) {
	e := newEnv(t, "x")
	e.ring.Push(killring.NewClipboardText("y"))
	e.do(t, `ok, msg = ks.killring.run("yankPop")`)

	if e.global("ok") != lua.LFalse {
		t.Error("yankPop without yank should report failure")
	}
	if got := e.global("msg").String(); got != yank.ErrNotYank.Error() {
		t.Errorf("msg = %q", got)
	}
}

func TestKillRingDisabled(t *testing.T) {
	reg, err := DefaultRegistry(&Context{})
	if err != nil {
		t.Fatal(err)
	}
	L := lua.NewState()
	defer L.Close()
	if err := reg.InjectAll(L); err != nil {
		t.Fatal(err)
	}
	if err := L.DoString(`local ks = require("ks"); n = ks.killring.size(); t = ks.killring.top()`); err != nil {
		t.Fatal(err)
	}
	if L.GetGlobal("n") != lua.LNumber(0) || L.GetGlobal("t") != lua.LNil {
		t.Errorf("size/top = %v/%v", L.GetGlobal("n"), L.GetGlobal("t"))
	}
}
