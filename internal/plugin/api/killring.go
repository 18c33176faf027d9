package api

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/killring/internal/dispatcher/handler"
)

// KillRingModule implements the ks.killring API module.
type KillRingModule struct {
	ctx *Context
}

// NewKillRingModule creates a new kill ring module.
func NewKillRingModule(ctx *Context) *KillRingModule {
	return &KillRingModule{ctx: ctx}
}

// Name returns the module name.
func (m *KillRingModule) Name() string {
	return "killring"
}

// Register registers the module into the Lua state.
func (m *KillRingModule) Register(L *lua.LState) error {
	mod := L.NewTable()
	L.SetField(mod, "size", L.NewFunction(m.size))
	L.SetField(mod, "top", L.NewFunction(m.top))
	L.SetField(mod, "entries", L.NewFunction(m.entries))
	L.SetField(mod, "pointer", L.NewFunction(m.pointer))
	L.SetField(mod, "select", L.NewFunction(m.selectEntry))
	L.SetField(mod, "run", L.NewFunction(m.run))
	L.SetGlobal("_ks_killring", mod)
	return nil
}

// size() -> number
func (m *KillRingModule) size(L *lua.LState) int {
	if m.ctx.Ring == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(m.ctx.Ring.Len()))
	return 1
}

// top() -> string | nil
// Returns the text of the entry at the pointer.
func (m *KillRingModule) top(L *lua.LState) int {
	if m.ctx.Ring == nil {
		L.Push(lua.LNil)
		return 1
	}
	e, ok := m.ctx.Ring.Top()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(e.String()))
	return 1
}

// entries() -> {{id, kind, text}, ...}
// Newest first.
func (m *KillRingModule) entries(L *lua.LState) int {
	tbl := L.NewTable()
	if m.ctx.Ring != nil {
		for _, e := range m.ctx.Ring.Entries() {
			entry := L.NewTable()
			L.SetField(entry, "id", lua.LString(e.ID()))
			L.SetField(entry, "kind", lua.LString(e.Kind().String()))
			L.SetField(entry, "text", lua.LString(e.String()))
			tbl.Append(entry)
		}
	}
	L.Push(tbl)
	return 1
}

// pointer() -> number | nil
func (m *KillRingModule) pointer(L *lua.LState) int {
	if m.ctx.Ring == nil {
		L.Push(lua.LNil)
		return 1
	}
	p, ok := m.ctx.Ring.Pointer()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p + 1))
	return 1
}

// select(i)
// Moves the pointer to entry i without pasting.
func (m *KillRingModule) selectEntry(L *lua.LState) int {
	i := L.CheckInt(1)
	if m.ctx.Ring == nil {
		L.RaiseError("killring: kill ring is disabled")
		return 0
	}
	if err := m.ctx.Ring.SetPointer(i - 1); err != nil {
		L.ArgError(1, err.Error())
	}
	return 0
}

// run(action[, {count=, index=, query=, text=}]) -> ok, message
// Dispatches an action. Names without a namespace get "killring.".
func (m *KillRingModule) run(L *lua.LState) int {
	name := L.CheckString(1)
	if !strings.Contains(name, ".") {
		name = "killring." + name
	}
	action := handler.Action{Name: name}

	if opts := L.OptTable(2, nil); opts != nil {
		if v, ok := opts.RawGetString("count").(lua.LNumber); ok {
			action.Count = int(v)
		}
		if v, ok := opts.RawGetString("index").(lua.LNumber); ok {
			action = action.WithArg("index", int(v)-1)
		}
		if v, ok := opts.RawGetString("query").(lua.LString); ok {
			action = action.WithArg("query", string(v))
		}
		if v, ok := opts.RawGetString("text").(lua.LString); ok {
			action.Args.Text = string(v)
		}
	}

	if m.ctx.Dispatcher == nil {
		L.RaiseError("killring: no dispatcher available")
		return 0
	}
	result := m.ctx.Dispatcher.Dispatch(action)

	msg := result.Message
	if msg == "" && result.Error != nil {
		msg = result.Error.Error()
	}
	L.Push(lua.LBool(!result.IsError()))
	L.Push(lua.LString(msg))
	return 2
}
