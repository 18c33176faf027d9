package browse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/killring/internal/killring"
)

// ErrNoMatch is returned by QueryPicker when nothing matches its query.
var ErrNoMatch = errors.New("no kill ring entry matches")

// TUIPicker lets the user choose an entry in the terminal.
type TUIPicker struct {
	// Input defaults to the program's standard input.
	Input io.Reader
	// Output defaults to os.Stderr.
	Output io.Writer
	// Width bounds label width; zero uses DefaultLabelWidth.
	Width int
	// AltScreen runs the picker in the alternate screen buffer.
	AltScreen bool
}

// Pick runs the picker until the user accepts, dismisses, or ctx ends.
func (p TUIPicker) Pick(ctx context.Context, entries []killring.Entity, initial int) (int, bool, error) {
	model := NewModel(Items(entries, p.Width), initial)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.Input != nil {
		opts = append(opts, tea.WithInput(p.Input))
	}
	out := p.Output
	if out == nil {
		out = os.Stderr
	}
	opts = append(opts, tea.WithOutput(out))
	if p.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return 0, false, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return 0, false, nil
	}
	idx, accepted := m.Result()
	return idx, accepted, nil
}

// IndexPicker always chooses the entry at Index.
type IndexPicker struct {
	Index int
}

// Pick implements killring.Picker.
func (p IndexPicker) Pick(_ context.Context, entries []killring.Entity, _ int) (int, bool, error) {
	if p.Index < 0 || p.Index >= len(entries) {
		return 0, false, fmt.Errorf("%w: %d", killring.ErrIndexOutOfRange, p.Index)
	}
	return p.Index, true, nil
}

// QueryPicker chooses the best fuzzy match for Query.
type QueryPicker struct {
	Query string
}

// Pick implements killring.Picker.
func (p QueryPicker) Pick(_ context.Context, entries []killring.Entity, initial int) (int, bool, error) {
	matches := Filter(p.Query, Items(entries, 0))
	if len(matches) == 0 {
		return 0, false, fmt.Errorf("%w %q", ErrNoMatch, p.Query)
	}
	if p.Query == "" {
		return initial, true, nil
	}
	return matches[0].Index, true, nil
}
