package api

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/killring/internal/dispatcher/handler"
	"github.com/dshills/killring/internal/engine/cursor"
	"github.com/dshills/killring/internal/killring"
)

// Module represents a Lua API module.
type Module interface {
	// Name returns the module name (e.g., "buf", "cursor", "killring").
	Name() string

	// Register registers the module functions into the Lua state under the
	// _ks_<name> global.
	Register(L *lua.LState) error
}

// Registry manages API modules and their registration.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InjectAll registers all modules into the Lua state and installs the ks
// module that aggregates them.
func (r *Registry) InjectAll(L *lua.LState) error {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		if err := r.modules[name].Register(L); err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
	}
	installKSLoader(L, names)
	return nil
}

// installKSLoader moves every _ks_<name> global into the ks table and
// preloads it so require("ks") works.
func installKSLoader(L *lua.LState, names []string) {
	ksModule := L.NewTable()
	for _, name := range names {
		globalName := "_ks_" + name
		if val := L.GetGlobal(globalName); val != lua.LNil {
			L.SetField(ksModule, name, val)
			L.SetGlobal(globalName, lua.LNil)
		}
	}
	L.SetField(ksModule, "api_version", lua.LNumber(1))

	L.PreloadModule("ks", func(L *lua.LState) int {
		L.Push(ksModule)
		return 1
	})
}

// DefaultRegistry creates a registry with all standard modules registered.
func DefaultRegistry(ctx *Context) (*Registry, error) {
	r := NewRegistry()

	modules := []Module{
		NewBufferModule(ctx),
		NewCursorModule(ctx),
		NewKillRingModule(ctx),
	}
	for _, mod := range modules {
		if err := r.Register(mod); err != nil {
			return nil, fmt.Errorf("failed to register module %q: %w", mod.Name(), err)
		}
	}
	return r, nil
}

// Context provides access to editor state for API modules.
type Context struct {
	// Buffer provides document reads.
	Buffer BufferProvider

	// Cursor provides selection access.
	Cursor CursorProvider

	// Ring is the kill ring. Nil in clipboard-only mode.
	Ring *killring.Ring

	// Dispatcher runs actions on behalf of scripts.
	Dispatcher ActionDispatcher
}

// BufferProvider defines the document operations available to scripts.
type BufferProvider interface {
	Text() string
	LineText(line uint32) string
	LineCount() uint32
}

// CursorProvider defines the selection operations available to scripts.
type CursorProvider interface {
	Selections() []cursor.Selection
	SetSelections(sels ...cursor.Selection) error
}

// ActionDispatcher runs a named action.
type ActionDispatcher interface {
	Dispatch(action handler.Action) handler.Result
}
