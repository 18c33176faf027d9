package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/killring/internal/config/loader"
	"github.com/dshills/killring/internal/dispatcher/handlers/killring"
	"github.com/dshills/killring/internal/keymap/key"
)

func newDefaultRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Register(Default()); err != nil {
		t.Fatalf("Register(Default()): %v", err)
	}
	return r
}

func TestKeymapValidate(t *testing.T) {
	tests := []struct {
		name    string
		keymap  *Keymap
		wantErr bool
	}{
		{"valid", NewKeymap("ok").Add("C-k", "killring.killLine"), false},
		{"empty keys", NewKeymap("bad").Add("", "killring.killLine"), true},
		{"empty action", NewKeymap("bad").Add("C-k", ""), true},
		{"bad keys", NewKeymap("bad").Add("Q-k", "killring.killLine"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keymap.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultBindings(t *testing.T) {
	r := newDefaultRegistry(t)

	tests := map[string]string{
		"C-k":       killring.ActionKillLine,
		"M-d":       killring.ActionKillWord,
		"M-DEL":     killring.ActionBackwardKillWord,
		"C-w":       killring.ActionKillRegion,
		"M-w":       killring.ActionCopyRegion,
		"C-x r k":   killring.ActionKillRectangle,
		"C-x r M-w": killring.ActionCopyRectangle,
		"C-y":       killring.ActionYank,
		"M-y":       killring.ActionYankPop,
		"C-c y":     killring.ActionBrowse,
		"C-g":       killring.ActionCancelAppend,
	}
	for keys, want := range tests {
		action, err := r.Resolve(keys)
		if err != nil {
			t.Errorf("Resolve(%q): %v", keys, err)
			continue
		}
		if action.Name != want {
			t.Errorf("Resolve(%q) = %q, want %q", keys, action.Name, want)
		}
		if action.Count != 1 {
			t.Errorf("Resolve(%q).Count = %d", keys, action.Count)
		}
	}
}

func TestLookupMatch(t *testing.T) {
	r := newDefaultRegistry(t)

	tests := []struct {
		keys string
		want Match
	}{
		{"C-x", MatchPrefix},
		{"C-x r", MatchPrefix},
		{"C-x r k", MatchExact},
		{"C-x r z", MatchNone},
		{"C-z", MatchNone},
	}
	for _, tt := range tests {
		seq, err := key.ParseSequence(tt.keys)
		if err != nil {
			t.Fatal(err)
		}
		if _, got := r.Lookup(seq); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.keys, got, tt.want)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	r := newDefaultRegistry(t)

	if _, err := r.Resolve("C-x r"); !errors.Is(err, ErrIncomplete) {
		t.Errorf("C-x r: err = %v, want ErrIncomplete", err)
	}
	if _, err := r.Resolve("C-u 4"); !errors.Is(err, ErrIncomplete) {
		t.Errorf("C-u 4: err = %v, want ErrIncomplete", err)
	}
	if _, err := r.Resolve("C-z"); !errors.Is(err, ErrUnbound) {
		t.Errorf("C-z: err = %v, want ErrUnbound", err)
	}
	if _, err := r.Resolve("Q-z"); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("Q-z: err = %v, want ErrInvalidSpec", err)
	}
}

func TestResolveUniversalArgument(t *testing.T) {
	r := newDefaultRegistry(t)

	tests := []struct {
		keys  string
		count int
	}{
		{"C-u C-k", 4},
		{"C-u C-u C-k", 16},
		{"C-u 3 C-k", 3},
		{"C-u 1 2 M-y", 12},
		{"C-u 0 C-k", 4},
	}
	for _, tt := range tests {
		action, err := r.Resolve(tt.keys)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.keys, err)
		}
		if action.Count != tt.count {
			t.Errorf("Resolve(%q).Count = %d, want %d", tt.keys, action.Count, tt.count)
		}
	}
}

func TestRegisterOverrides(t *testing.T) {
	r := newDefaultRegistry(t)
	user := NewKeymap("user").
		AddBinding(Binding{Keys: "C-y", Action: killring.ActionBrowse, Args: map[string]any{"index": int64(1)}}).
		AddBinding(Binding{Keys: "C-c C-k", Action: killring.ActionKillLine, Args: map[string]any{"count": int64(2)}})
	if err := r.Register(user); err != nil {
		t.Fatal(err)
	}

	action, err := r.Resolve("C-y")
	if err != nil {
		t.Fatal(err)
	}
	if action.Name != killring.ActionBrowse {
		t.Errorf("C-y = %q, want browse", action.Name)
	}
	if idx, ok := action.Args.GetInt("index"); !ok || idx != 1 {
		t.Errorf("index = %d, %v", idx, ok)
	}

	action, err = r.Resolve("C-c C-k")
	if err != nil {
		t.Fatal(err)
	}
	if action.Count != 2 {
		t.Errorf("Count = %d, want 2 from args", action.Count)
	}
	action, _ = r.Resolve("C-u 5 C-c C-k")
	if action.Count != 5 {
		t.Errorf("Count = %d, want universal argument to win", action.Count)
	}

	if got := r.Keymaps(); len(got) != 2 || got[1] != "user" {
		t.Errorf("Keymaps() = %v", got)
	}
	if got := len(r.Bindings()); got != len(Default().Bindings)+1 {
		t.Errorf("len(Bindings()) = %d", got)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	content := `
name = "user"

[[bindings]]
keys = "C-c k"
action = "killring.killLine"
args = { count = 3 }
description = "Kill three lines"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	km, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if km.Name != "user" || km.Source != path {
		t.Errorf("Name/Source = %q/%q", km.Name, km.Source)
	}

	r := NewRegistry()
	if err := r.Register(km); err != nil {
		t.Fatal(err)
	}
	action, err := r.Resolve("C-c k")
	if err != nil {
		t.Fatal(err)
	}
	if action.Name != killring.ActionKillLine || action.Count != 3 {
		t.Errorf("action = %+v", action)
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	content := `
bindings:
  - keys: "C-c b"
    action: killring.browse
    args:
      query: foo
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	km, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if km.Name != path {
		t.Errorf("Name = %q, want path", km.Name)
	}
	if q, _ := km.Bindings[0].Args["query"].(string); q != "foo" {
		t.Errorf("query = %v", km.Bindings[0].Args["query"])
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[bindings]]\nkeys = \"C-k\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("binding without action should fail")
	}

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("color = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var pe *loader.ParseError
	if _, err := LoadFile(unknown); !errors.As(err, &pe) {
		t.Errorf("unknown key: err = %v, want ParseError", err)
	}
}
