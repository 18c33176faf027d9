// Package buffer provides the line-oriented text store used by the editor
// engine.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Line/column positions (Point) and ranges (PointRange)
//   - Atomic application of edit batches with inverse edits for undo
//   - Line ending normalization
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Replace "World" with "Kill Ring"
//	inv, err := buf.Apply([]buffer.Edit{
//	    buffer.NewEdit(buffer.NewPointRange(buffer.Point{Column: 7}, buffer.Point{Column: 12}), "Kill Ring"),
//	})
//
//	// Revert restores the previous content
//	err = buf.Revert(inv)
//
// Position Types:
//
// Columns are measured in runes from the start of the line, so a rectangle
// spanning columns 2-4 covers the same characters on every line regardless
// of how many bytes each character occupies.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock.
package buffer
