// Package plugin runs user Lua scripts against a kill ring session.
//
// A Runner creates a fresh sandboxed state for every script, injects the
// ks API modules and routes print output to a writer or the logger:
//
//	r := plugin.NewRunner(&api.Context{
//	    Buffer:     eng,
//	    Cursor:     eng,
//	    Ring:       ring,
//	    Dispatcher: d,
//	}, plugin.WithOutput(os.Stdout))
//
//	if err := r.RunFile(ctx, "macro.lua"); err != nil {
//	    log.Fatal(err)
//	}
//
// See package api for the functions available under require("ks").
package plugin
