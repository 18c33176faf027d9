package keymap

import (
	"fmt"

	"github.com/dshills/killring/internal/config/loader"
)

// LoadFile reads a keymap from a TOML or YAML file:
//
//	name = "user"
//
//	[[bindings]]
//	keys = "C-c C-k"
//	action = "killring.killLine"
//	args = { count = 2 }
func LoadFile(path string) (*Keymap, error) {
	return LoadFileFS(loader.DefaultFS(), path)
}

// LoadFileFS is LoadFile with an injectable file system.
func LoadFileFS(fsys loader.FileSystem, path string) (*Keymap, error) {
	km := &Keymap{}
	if err := loader.LoadFile(fsys, path, km); err != nil {
		return nil, fmt.Errorf("loading keymap: %w", err)
	}
	if km.Name == "" {
		km.Name = path
	}
	if km.Source == "" {
		km.Source = path
	}
	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return km, nil
}
