package clipboard

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// command is an external program and its arguments.
type command struct {
	name string
	args []string
}

func (c command) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// runner executes a command, feeding stdin and returning stdout.
type runner func(c command, stdin string) (string, error)

func execRunner(c command, stdin string) (string, error) {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(stdin)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	return out.String(), nil
}

// System uses the platform clipboard tools: pbcopy and pbpaste on macOS,
// wl-copy and wl-paste under Wayland, xclip elsewhere on Linux.
type System struct {
	copyCmd  command
	pasteCmd command
	run      runner
}

// NewSystem detects the clipboard tools for the current platform.
func NewSystem() *System {
	copyCmd, pasteCmd := detectCommands(runtime.GOOS, os.Getenv("WAYLAND_DISPLAY") != "")
	return &System{copyCmd: copyCmd, pasteCmd: pasteCmd, run: execRunner}
}

func detectCommands(goos string, wayland bool) (copyCmd, pasteCmd command) {
	switch {
	case goos == "darwin":
		return command{name: "pbcopy"}, command{name: "pbpaste"}
	case goos == "linux" && wayland:
		return command{name: "wl-copy"}, command{name: "wl-paste", args: []string{"--no-newline"}}
	case goos == "linux":
		return command{name: "xclip", args: []string{"-selection", "clipboard"}},
			command{name: "xclip", args: []string{"-selection", "clipboard", "-o"}}
	default:
		return command{}, command{}
	}
}

// ReadText returns the clipboard contents.
func (s *System) ReadText() (string, error) {
	if s.pasteCmd.name == "" {
		return "", fmt.Errorf("%w on %s", ErrUnsupported, runtime.GOOS)
	}
	return s.run(s.pasteCmd, "")
}

// WriteText replaces the clipboard contents.
func (s *System) WriteText(text string) error {
	if s.copyCmd.name == "" {
		return fmt.Errorf("%w on %s", ErrUnsupported, runtime.GOOS)
	}
	_, err := s.run(s.copyCmd, text)
	return err
}
