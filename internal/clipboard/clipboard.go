// Package clipboard provides the operating system clipboard backends used by
// the kill ring.
package clipboard

import (
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by New.
const (
	BackendSystem = "system"
	BackendOSC52  = "osc52"
	BackendMemory = "memory"
)

var (
	// ErrUnsupported is returned when no clipboard tool is available.
	ErrUnsupported = errors.New("clipboard not supported")

	// ErrUnknownBackend is returned by New for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown clipboard backend")
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// New returns the clipboard for a backend name. An empty name selects the
// system clipboard.
func New(backend string) (Clipboard, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSystem:
		return NewSystem(), nil
	case BackendOSC52:
		return NewOSC52(nil), nil
	case BackendMemory:
		return &Memory{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
