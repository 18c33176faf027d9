// Package keymap resolves Emacs key sequences to dispatcher actions.
//
// A Keymap is a named list of bindings. A Registry merges keymaps in
// registration order, later bindings replacing earlier ones for the same
// keys, and answers whether a sequence is bound, a prefix of a binding, or
// unknown.
//
// Resolve also understands the universal argument: "C-u" multiplies the
// repeat count by four and "C-u 3" sets it to three, so "C-u 3 C-k" kills
// three lines.
//
//	reg := keymap.NewRegistry()
//	if err := reg.Register(keymap.Default()); err != nil {
//	    return err
//	}
//	action, err := reg.Resolve("C-u 2 M-y")
package keymap
