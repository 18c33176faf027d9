package keymap

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/dshills/killring/internal/dispatcher/handler"
	"github.com/dshills/killring/internal/keymap/key"
)

// Match reports how a sequence relates to the registered bindings.
type Match uint8

const (
	// MatchNone means nothing is bound to the sequence or starts with it.
	MatchNone Match = iota
	// MatchPrefix means longer bindings start with the sequence.
	MatchPrefix
	// MatchExact means the sequence is bound.
	MatchExact
)

// String returns the match name.
func (m Match) String() string {
	switch m {
	case MatchPrefix:
		return "prefix"
	case MatchExact:
		return "exact"
	default:
		return "none"
	}
}

// universalArgument is Emacs' C-u.
var universalArgument = key.MustParseChord("C-u")

// Registry merges keymaps and looks up bindings.
type Registry struct {
	mu sync.RWMutex

	// bindings is keyed by canonical sequence.
	bindings map[string]Binding

	// prefixes counts the bindings under each proper prefix.
	prefixes map[string]int

	keymaps []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[string]Binding),
		prefixes: make(map[string]int),
	}
}

// Register validates km and adds its bindings, replacing existing bindings
// for the same keys.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	if err := km.Validate(); err != nil {
		return fmt.Errorf("keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range km.Bindings {
		seq, _ := key.ParseSequence(b.Keys)
		canon := seq.String()
		if _, exists := r.bindings[canon]; !exists {
			for i := 1; i < len(seq); i++ {
				r.prefixes[seq[:i].String()]++
			}
		}
		b.Keys = canon
		r.bindings[canon] = b
	}
	r.keymaps = append(r.keymaps, km.Name)
	return nil
}

// Lookup finds the binding for seq.
func (r *Registry) Lookup(seq key.Sequence) (Binding, Match) {
	canon := seq.String()

	r.mu.RLock()
	defer r.mu.RUnlock()

	if b, ok := r.bindings[canon]; ok {
		return b, MatchExact
	}
	if r.prefixes[canon] > 0 {
		return Binding{}, MatchPrefix
	}
	return Binding{}, MatchNone
}

// Bindings returns every binding sorted by keys.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Keymaps returns the registered keymap names in registration order.
func (r *Registry) Keymaps() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.keymaps...)
}

// Resolve parses spec, applies any leading universal argument and returns
// the bound action.
func (r *Registry) Resolve(spec string) (handler.Action, error) {
	seq, err := key.ParseSequence(spec)
	if err != nil {
		return handler.Action{}, err
	}

	count, rest, universal := universalCount(seq)
	if len(rest) == 0 {
		return handler.Action{}, fmt.Errorf("%w: %s", ErrIncomplete, seq)
	}

	b, match := r.Lookup(rest)
	switch match {
	case MatchPrefix:
		return handler.Action{}, fmt.Errorf("%w: %s", ErrIncomplete, rest)
	case MatchNone:
		return handler.Action{}, fmt.Errorf("%w: %s", ErrUnbound, rest)
	}

	action := handler.Action{Name: b.Action, Count: count}
	for k, v := range b.Args {
		action = action.WithArg(k, v)
	}
	if s, ok := action.Args.GetString("text"); ok {
		action.Args.Text = s
	}
	if n, ok := action.Args.GetInt("count"); ok && !universal && n > 0 {
		action.Count = n
	}
	return action, nil
}

// universalCount consumes leading C-u chords and digits. Each bare C-u
// multiplies the count by four; digits after C-u replace it.
func universalCount(seq key.Sequence) (int, key.Sequence, bool) {
	count := 1
	i := 0
	for i < len(seq) && seq[i] == universalArgument {
		count *= 4
		i++
	}
	if i == 0 {
		return 1, seq, false
	}

	start := i
	var digits []rune
	for i < len(seq) && seq[i].IsDigit() {
		digits = append(digits, seq[i].Rune)
		i++
	}
	if i > start {
		if n, err := strconv.Atoi(string(digits)); err == nil && n > 0 {
			count = n
		}
	}
	return count, seq[i:], true
}
