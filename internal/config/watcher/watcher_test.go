package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Operation(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name     string
		existing Operation
		next     Operation
		want     Operation
	}{
		{"write then remove", OpWrite, OpRemove, OpRemove},
		{"create then write", OpCreate, OpWrite, OpCreate},
		{"write then write", OpWrite, OpWrite, OpWrite},
		{"remove then create", OpRemove, OpCreate, OpCreate},
		{"rename then write", OpRename, OpWrite, OpWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coalesce(tt.existing, tt.next); got != tt.want {
				t.Errorf("coalesce(%v, %v) = %v, want %v", tt.existing, tt.next, got, tt.want)
			}
		})
	}
}

func TestWatchDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[killring]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := os.WriteFile(path, []byte("[killring]\ncapacity = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		abs, _ := filepath.Abs(path)
		if ev.Path != abs {
			t.Errorf("event path = %q, want %q", ev.Path, abs)
		}
		if ev.Op != OpWrite && ev.Op != OpCreate {
			t.Errorf("event op = %v, want write or create", ev.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		t.Errorf("unexpected event for %q", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDebounceCoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(150 * time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
	select {
	case ev := <-events:
		t.Errorf("burst produced a second event: %v", ev.Op)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")

	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a): %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b): %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatalf("second Watch(a): %v", err)
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Fatalf("WatchedFiles = %d, want 2", got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch(a): %v", err)
	}
	if got := len(w.WatchedFiles()); got != 1 {
		t.Errorf("WatchedFiles after unwatch = %d, want 1", got)
	}
}

func TestClosedWatcher(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := w.Watch(filepath.Join(t.TempDir(), "x.toml")); err != ErrClosed {
		t.Errorf("Watch after Close = %v, want ErrClosed", err)
	}
}

func TestHandlerPanicDoesNotStopDelivery(t *testing.T) {
	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	got := make(chan struct{}, 1)
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(Event) { got <- struct{}{} })

	w.emit(Event{Path: "/x", Op: OpWrite})
	select {
	case <-got:
	default:
		t.Error("second handler was not called")
	}
}
