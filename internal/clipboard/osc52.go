package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52 writes to the terminal's clipboard with the OSC 52 escape sequence.
// Terminals rarely answer clipboard queries, so reads return the last text
// written through this clipboard.
type OSC52 struct {
	out    io.Writer
	tmux   bool
	screen bool
	last   Memory
}

// NewOSC52 writes escape sequences to out, or to os.Stderr when out is nil.
// The sequence is wrapped for tmux or screen when running inside them.
func NewOSC52(out io.Writer) *OSC52 {
	if out == nil {
		out = os.Stderr
	}
	return &OSC52{
		out:    out,
		tmux:   os.Getenv("TMUX") != "",
		screen: strings.HasPrefix(os.Getenv("TERM"), "screen"),
	}
}

// ReadText returns the last written text.
func (o *OSC52) ReadText() (string, error) {
	return o.last.ReadText()
}

// WriteText emits text as an OSC 52 clipboard sequence.
func (o *OSC52) WriteText(text string) error {
	seq := osc52.New(text)
	switch {
	case o.tmux:
		seq = seq.Tmux()
	case o.screen:
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.out); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return o.last.WriteText(text)
}
