// Package killring implements the Emacs-style kill ring: a bounded history of
// killed text with a traversal pointer that is independent of insertion
// order.
//
// # Entities
//
// Every ring entry is an Entity, a closed sum type with two variants:
//
//   - ClipboardText: flat text that entered the ring from the system
//     clipboard. It is never appended to.
//   - EditorText: text killed from the editor, one AppendedRegion per cursor
//     of the originating kill. Consecutive kills from the same cursors merge
//     into it region by region.
//
// Consumers switch on the concrete type:
//
//	switch e := entity.(type) {
//	case *killring.ClipboardText:
//	case *killring.EditorText:
//	}
//
// EditorText.String flattens the regions into one insertable string: regions
// are ordered by buffer position and joined with the line ending whenever two
// neighbours start on different lines.
//
// # Ring
//
// Ring keeps the newest entry at index 0. Push resets the pointer to the
// newest entry and silently drops entries beyond the capacity. PopNext walks
// towards older entries and wraps around, so Len consecutive calls return to
// the starting entry. The ring never mutates an entity; kill-append builds a
// merged entity and installs it with ReplaceTop.
package killring
