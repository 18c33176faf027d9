// Package engine provides the in-memory document host used by the kill ring.
//
// The engine package serves as the main facade, combining buffer storage,
// selections, undo, and change notification into one thread-safe API that
// satisfies the editor contract consumed by the yank package.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: line-oriented text storage with atomic edit batches
//   - cursor: selections and their transformation through edits
//   - history: undo stack of applied edit batches
//
// # Notifications
//
// ApplyEdits and Undo emit exactly one text change notification per
// successful call, followed by a selection change notification when the
// selections moved. SetSelections emits a selection change notification.
// Notifications are delivered synchronously after the engine lock has been
// released, so listeners may call back into the engine.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("aaa bbb"))
//	e.SetSelections(cursor.NewCursorSelection(buffer.Point{Column: 3}))
//
//	err := e.ApplyEdits([]buffer.Edit{
//	    buffer.NewInsert(buffer.Point{Column: 3}, "!"),
//	})
//
//	e.Undo() // back to "aaa bbb"
package engine
