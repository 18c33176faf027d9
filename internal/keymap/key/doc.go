// Package key parses Emacs key notation.
//
// A Chord is one key press with its modifiers, written the way Emacs
// documentation writes it: "C-k", "M-y", "C-M-w", "M-DEL", "RET". A
// Sequence is a space separated list of chords such as "C-x r k".
//
// Parsing is case-sensitive for letters ("M-y" and "M-Y" differ) and
// produces a canonical form, so two specs bind the same keys exactly when
// their String values are equal.
package key
