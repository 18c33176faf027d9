// Package history provides the undo stack for the text editor engine.
//
// Every edit batch applied to the engine is recorded as one Entry holding
// the inverse edits and the selections before and after the batch:
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//	h.Push(history.Entry{Inverse: inv, SelectionsBefore: before})
//
//	entry, err := h.Pop()
//
// Popping returns the most recent entry; the caller reverts the buffer with
// entry.Inverse and restores entry.SelectionsBefore.
package history
