package killring

import (
	"context"
	"fmt"
	"sync"
)

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 60

// Picker presents ring entries to the user. entries are newest first and
// initial is the index to highlight. It returns the chosen index, or false
// when the user dismissed the picker.
type Picker interface {
	Pick(ctx context.Context, entries []Entity, initial int) (int, bool, error)
}

// Ring is a bounded history of killed text with a traversal pointer.
// Index 0 holds the newest entry.
type Ring struct {
	mu       sync.Mutex
	capacity int
	entries  []Entity
	pointer  int // -1 when empty
}

// NewRing creates an empty ring. A non-positive capacity selects
// DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity, pointer: -1}
}

// Push inserts e as the newest entry, drops entries beyond the capacity and
// points at e.
func (r *Ring) Push(e Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, nil)
	copy(r.entries[1:], r.entries)
	r.entries[0] = e
	if len(r.entries) > r.capacity {
		clear(r.entries[r.capacity:])
		r.entries = r.entries[:r.capacity]
	}
	r.pointer = 0
}

// Top returns the entry at the pointer.
func (r *Ring) Top() (Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pointer < 0 {
		return nil, false
	}
	return r.entries[r.pointer], true
}

// ReplaceTop installs e in place of the entry at the pointer.
func (r *Ring) ReplaceTop(e Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pointer < 0 {
		return ErrEmptyRing
	}
	r.entries[r.pointer] = e
	return nil
}

// PopNext advances the pointer to the next older entry, wrapping to the
// newest after the oldest, and returns it.
func (r *Ring) PopNext() (Entity, bool) {
	return r.AddPointer(1)
}

// AddPointer moves the pointer by delta positions, wrapping in both
// directions, and returns the entry it lands on.
func (r *Ring) AddPointer(delta int) (Entity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pointer < 0 {
		return nil, false
	}
	n := len(r.entries)
	r.pointer = ((r.pointer+delta)%n + n) % n
	return r.entries[r.pointer], true
}

// SetPointer points at entry i.
func (r *Ring) SetPointer(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.entries) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	r.pointer = i
	return nil
}

// Pointer returns the pointer, or false when the ring is empty.
func (r *Ring) Pointer() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointer, r.pointer >= 0
}

// Entries returns the entries, newest first.
func (r *Ring) Entries() []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entity, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Capacity returns the maximum number of entries.
func (r *Ring) Capacity() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capacity
}

// SetCapacity changes the capacity, dropping the oldest entries when the ring
// shrinks. The pointer is clamped to the remaining entries.
func (r *Ring) SetCapacity(capacity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r.capacity = capacity
	if len(r.entries) > capacity {
		clear(r.entries[capacity:])
		r.entries = r.entries[:capacity]
	}
	if r.pointer >= len(r.entries) {
		r.pointer = len(r.entries) - 1
	}
}

// Browse lets the user pick an entry. The picker starts on the current
// pointer; choosing an entry moves the pointer there without reordering the
// ring. It returns false when the ring is empty or the picker was dismissed.
func (r *Ring) Browse(ctx context.Context, p Picker) (Entity, bool, error) {
	r.mu.Lock()
	entries := make([]Entity, len(r.entries))
	copy(entries, r.entries)
	pointer := r.pointer
	r.mu.Unlock()
	if pointer < 0 {
		return nil, false, nil
	}

	idx, chosen, err := p.Pick(ctx, entries, pointer)
	if err != nil {
		return nil, false, fmt.Errorf("browse kill ring: %w", err)
	}
	if !chosen {
		return nil, false, nil
	}
	e, err := r.selectIfSame(entries, idx)
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// selectIfSame points at entry idx of snapshot provided the ring still holds
// that entry at the same index.
func (r *Ring) selectIfSame(snapshot []Entity, idx int) (Entity, error) {
	if idx < 0 || idx >= len(snapshot) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if idx >= len(r.entries) || r.entries[idx] != snapshot[idx] {
		return nil, fmt.Errorf("%w: entry %d", ErrRingChanged, idx)
	}
	r.pointer = idx
	return r.entries[idx], nil
}
