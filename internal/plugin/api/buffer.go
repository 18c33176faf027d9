package api

import lua "github.com/yuin/gopher-lua"

// BufferModule implements the ks.buf API module.
type BufferModule struct {
	ctx *Context
}

// NewBufferModule creates a new buffer module.
func NewBufferModule(ctx *Context) *BufferModule {
	return &BufferModule{ctx: ctx}
}

// Name returns the module name.
func (m *BufferModule) Name() string {
	return "buf"
}

// Register registers the module into the Lua state.
func (m *BufferModule) Register(L *lua.LState) error {
	mod := L.NewTable()
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetGlobal("_ks_buf", mod)
	return nil
}

// text() -> string
func (m *BufferModule) text(L *lua.LState) int {
	if m.ctx.Buffer == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(m.ctx.Buffer.Text()))
	return 1
}

// line(n) -> string
// Returns the text of line n (1-indexed).
func (m *BufferModule) line(L *lua.LState) int {
	n := L.CheckInt(1)
	if m.ctx.Buffer == nil {
		L.Push(lua.LString(""))
		return 1
	}
	if n < 1 || n > int(m.ctx.Buffer.LineCount()) {
		L.ArgError(1, "line out of range")
		return 0
	}
	L.Push(lua.LString(m.ctx.Buffer.LineText(uint32(n - 1))))
	return 1
}

// line_count() -> number
func (m *BufferModule) lineCount(L *lua.LState) int {
	if m.ctx.Buffer == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(m.ctx.Buffer.LineCount()))
	return 1
}
