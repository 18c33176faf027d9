package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// ParseChord parses one chord such as "C-k", "M-DEL" or "C-M-w".
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	var mods Modifier
	rest := spec
	// "C--" is Control with the "-" key.
	for len(rest) >= 3 && rest[1] == '-' {
		switch rest[0] {
		case 'C':
			mods |= ModCtrl
		case 'M':
			mods |= ModMeta
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, rest[:1], spec)
		}
		rest = rest[2:]
	}

	if k, ok := keyByName[rest]; ok {
		return Chord{Key: k, Mods: mods}, nil
	}
	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		if r == ' ' {
			return Chord{Key: KeySpace, Mods: mods}, nil
		}
		return Chord{Key: KeyRune, Rune: r, Mods: mods}, nil
	}
	return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, rest, spec)
}

// MustParseChord is ParseChord for known-valid specs. It panics on error.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// Sequence is a series of chords forming one command.
type Sequence []Chord

// ParseSequence parses space separated chords, e.g. "C-x r k".
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		c, err := ParseChord(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, c)
	}
	return seq, nil
}

// String returns the canonical notation, chords joined by spaces.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// HasPrefix returns true if s starts with prefix.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, c := range prefix {
		if s[i] != c {
			return false
		}
	}
	return true
}

// Normalize parses spec and returns its canonical form.
func Normalize(spec string) (string, error) {
	seq, err := ParseSequence(spec)
	if err != nil {
		return "", err
	}
	return seq.String(), nil
}
