package keymap

import (
	"fmt"

	"github.com/dshills/killring/internal/keymap/key"
)

// Binding maps a key sequence to an action.
type Binding struct {
	// Keys is the key sequence in Emacs notation, e.g. "C-x r k".
	Keys string `toml:"keys" yaml:"keys"`

	// Action is the dispatcher action name, e.g. "killring.yank".
	Action string `toml:"action" yaml:"action"`

	// Args are fixed arguments for the action.
	Args map[string]any `toml:"args,omitempty" yaml:"args,omitempty"`

	// Description documents the binding.
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Keymap is a named set of bindings.
type Keymap struct {
	Name string `toml:"name" yaml:"name"`

	// Source records where the keymap came from, e.g. "default" or a path.
	Source string `toml:"source,omitempty" yaml:"source,omitempty"`

	Bindings []Binding `toml:"bindings" yaml:"bindings"`
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// Add adds a binding to the keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// AddBinding adds a fully configured binding to the keymap.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Validate checks that every binding has keys that parse and an action.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if _, err := key.ParseSequence(b.Keys); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}
