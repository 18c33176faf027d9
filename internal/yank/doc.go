// Package yank implements Emacs-style kill and yank on top of a kill ring.
//
// A KillYanker sits between the command layer and two external capabilities:
// an Editor that owns the document and its selections, and a Clipboard that
// mirrors the most recent kill to the operating system.
//
// Kill records the killed text and deletes it. Consecutive kills at an
// unmoved cursor merge into one ring entry (kill-append). Yank pastes the
// current ring entry, first adopting any text another application placed on
// the clipboard. YankPop replaces the text just yanked with the next older
// entry, but only while nothing else has touched the document or the
// selections since the yank.
//
// The yanker listens to the editor's change notifications to detect
// interruptions. Notifications must be delivered synchronously on the
// goroutine that issued the edit, and commands must be serialized by the
// host. A KillYanker is not safe for concurrent use.
package yank
