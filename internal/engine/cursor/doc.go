// Package cursor provides selection values and their transformation through
// buffer edits.
//
// Selection Model:
//
// Selections use an anchor/active model where:
//   - Anchor: The position where the selection started
//   - Active: The current cursor position (where typing would occur)
//
// When Anchor == Active, the selection represents just a cursor with no
// selected text. Multiple selections are kept in the order the host created
// them; that order is the cursor index used by kill and yank.
//
// Transformation:
//
// After an edit batch is applied, every selection is mapped through the
// applied edits in application order:
//
//	sels = cursor.TransformSelections(sels, applied)
//
// A position inside a replaced range lands at the end of the new text, and an
// insertion exactly at a cursor pushes the cursor past the inserted text.
package cursor
