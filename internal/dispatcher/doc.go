// Package dispatcher routes actions to handlers and coordinates execution.
//
// The dispatcher connects command sources (key bindings, scripts, the
// action list of the command line tool) to the kill ring commands. Actions
// are routed by namespace prefix ("killring" in "killring.yank") with an
// exact-name table consulted second.
//
// # Ordering
//
// Dispatch runs one action at a time. The kill/yank engine tracks state
// between commands (kill appending, yank-pop eligibility) and relies on
// commands and their change notifications never interleaving, so every
// Dispatch holds the dispatcher's execution lock for the full handler call.
//
// # Handler Execution
//
// When an action is dispatched:
//
//  1. Pre-dispatch hooks are called (can cancel the action)
//  2. The router finds the appropriate handler
//  3. An ExecutionContext is built with the editor, yanker and picker
//  4. The handler is executed (with optional panic recovery)
//  5. Post-dispatch hooks are called
//  6. Metrics are recorded (if enabled)
package dispatcher
