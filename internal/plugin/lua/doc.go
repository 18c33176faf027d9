// Package lua provides the sandboxed Lua runtime used for scripting.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed state management (no file, OS or debug access)
//   - A require that only resolves the standard safe libraries and the
//     preloaded "ks" API module
//   - Context-bound execution with a default timeout
//
// # State
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "script.lua"); err != nil {
//	    log.Fatal(err)
//	}
//
// gopher-lua's LState is not goroutine-safe; State serializes access with a
// mutex.
package lua
