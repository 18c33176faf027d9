package key

import (
	"fmt"
	"strings"
)

// Key identifies a non-character key. Character keys use KeyRune.
type Key uint8

const (
	// KeyRune is a character key; the character is in Chord.Rune.
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeySpace
	KeyEscape
	// KeyBackspace is Emacs' DEL.
	KeyBackspace
	KeyDelete
)

// keyNames holds the canonical Emacs name of each special key.
var keyNames = map[Key]string{
	KeyEnter:     "RET",
	KeyTab:       "TAB",
	KeySpace:     "SPC",
	KeyEscape:    "ESC",
	KeyBackspace: "DEL",
	KeyDelete:    "<delete>",
}

// keyByName maps accepted spellings to keys.
var keyByName = map[string]Key{
	"RET":          KeyEnter,
	"<return>":     KeyEnter,
	"TAB":          KeyTab,
	"<tab>":        KeyTab,
	"SPC":          KeySpace,
	"ESC":          KeyEscape,
	"<escape>":     KeyEscape,
	"DEL":          KeyBackspace,
	"<backspace>":  KeyBackspace,
	"<delete>":     KeyDelete,
	"<deletechar>": KeyDelete,
}

// String returns the canonical name of k.
func (k Key) String() string {
	if k == KeyRune {
		return "Rune"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModMeta
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the Emacs prefix for m, e.g. "C-M-".
func (m Modifier) String() string {
	var sb strings.Builder
	if m.Has(ModCtrl) {
		sb.WriteString("C-")
	}
	if m.Has(ModMeta) {
		sb.WriteString("M-")
	}
	return sb.String()
}

// Chord is a single key press.
type Chord struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// Rune returns an unmodified character chord.
func Rune(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r}
}

// String returns the canonical Emacs notation.
func (c Chord) String() string {
	if c.Key == KeyRune {
		return c.Mods.String() + string(c.Rune)
	}
	return c.Mods.String() + c.Key.String()
}

// IsDigit returns true for an unmodified 0-9 chord.
func (c Chord) IsDigit() bool {
	return c.Key == KeyRune && c.Mods == ModNone && c.Rune >= '0' && c.Rune <= '9'
}
