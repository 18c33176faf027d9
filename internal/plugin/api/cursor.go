package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
)

// CursorModule implements the ks.cursor API module.
type CursorModule struct {
	ctx *Context
}

// NewCursorModule creates a new cursor module.
func NewCursorModule(ctx *Context) *CursorModule {
	return &CursorModule{ctx: ctx}
}

// Name returns the module name.
func (m *CursorModule) Name() string {
	return "cursor"
}

// Register registers the module into the Lua state.
func (m *CursorModule) Register(L *lua.LState) error {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(m.get))
	L.SetField(mod, "set", L.NewFunction(m.set))
	L.SetField(mod, "add", L.NewFunction(m.add))
	L.SetGlobal("_ks_cursor", mod)
	return nil
}

// get() -> {{line, col, anchor_line, anchor_col}, ...}
func (m *CursorModule) get(L *lua.LState) int {
	tbl := L.NewTable()
	if m.ctx.Cursor != nil {
		for _, sel := range m.ctx.Cursor.Selections() {
			entry := L.NewTable()
			L.SetField(entry, "line", lua.LNumber(sel.Active.Line+1))
			L.SetField(entry, "col", lua.LNumber(sel.Active.Column+1))
			L.SetField(entry, "anchor_line", lua.LNumber(sel.Anchor.Line+1))
			L.SetField(entry, "anchor_col", lua.LNumber(sel.Anchor.Column+1))
			tbl.Append(entry)
		}
	}
	L.Push(tbl)
	return 1
}

// set(line, col[, line2, col2])
// Replaces all selections with one. With two positions the first is the
// anchor and the second the cursor.
func (m *CursorModule) set(L *lua.LState) int {
	sel := checkSelection(L)
	m.apply(L, []cursor.Selection{sel})
	return 0
}

// add(line, col[, line2, col2])
// Adds a selection to the existing ones.
func (m *CursorModule) add(L *lua.LState) int {
	sel := checkSelection(L)
	var sels []cursor.Selection
	if m.ctx.Cursor != nil {
		sels = m.ctx.Cursor.Selections()
	}
	m.apply(L, append(sels, sel))
	return 0
}

func (m *CursorModule) apply(L *lua.LState, sels []cursor.Selection) {
	if m.ctx.Cursor == nil {
		L.RaiseError("cursor: no editor available")
		return
	}
	if err := m.ctx.Cursor.SetSelections(sels...); err != nil {
		L.RaiseError("cursor: %v", err)
	}
}

// checkSelection reads (line, col[, line2, col2]) from the stack.
func checkSelection(L *lua.LState) cursor.Selection {
	anchor := checkPoint(L, 1)
	if L.GetTop() >= 3 {
		return cursor.NewSelection(anchor, checkPoint(L, 3))
	}
	return cursor.NewCursorSelection(anchor)
}

func checkPoint(L *lua.LState, n int) buffer.Point {
	line := L.CheckInt(n)
	col := L.CheckInt(n + 1)
	if line < 1 {
		L.ArgError(n, "line must be >= 1")
	}
	if col < 1 {
		L.ArgError(n+1, "col must be >= 1")
	}
	return buffer.Point{Line: uint32(line - 1), Column: uint32(col - 1)}
}
