// Package event provides synchronous change notification for the editor
// engine.
//
// An Emitter delivers typed notifications to its listeners on the caller's
// goroutine, in registration order, before Emit returns. Hosts rely on this
// ordering: a command observes every notification caused by its own edits
// before the next command is dispatched.
//
//	var changed event.Emitter[TextChange]
//	sub := changed.Subscribe(func(c TextChange) { ... })
//	defer sub.Dispose()
//
// A Group collects several subscriptions so an owner can release all of them
// at once when it is disposed.
package event
