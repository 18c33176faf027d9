package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/killring/internal/dispatcher/handler"
	"github.com/dshills/killring/internal/dispatcher/handlers/killring"
	"github.com/dshills/killring/internal/engine/buffer"
)

// errEmptyCommand is returned for blank and comment lines.
var errEmptyCommand = errors.New("empty command")

// parseAction parses "name [count=N] [index=N] [query=S] [text=S]".
// Names without a namespace get "killring.". Indexes are 1-based.
func parseAction(line string) (handler.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return handler.Action{}, errEmptyCommand
	}

	name := fields[0]
	if !strings.Contains(name, ".") {
		name = killring.Namespace + "." + name
	}
	action := handler.Action{Name: name}

	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return handler.Action{}, fmt.Errorf("argument %q: want key=value", f)
		}
		switch key {
		case "count":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return handler.Action{}, fmt.Errorf("count %q: want a positive integer", value)
			}
			action.Count = n
		case "index":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return handler.Action{}, fmt.Errorf("index %q: want a positive integer", value)
			}
			action = action.WithArg(killring.ArgIndex, n-1)
		case "query":
			action = action.WithArg(killring.ArgQuery, value)
		case "text":
			action.Args.Text = value
		default:
			return handler.Action{}, fmt.Errorf("unknown argument %q", key)
		}
	}
	return action, nil
}

// parsePoint parses a 1-based "line:col" position.
func parsePoint(s string) (buffer.Point, error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return buffer.Point{}, fmt.Errorf("position %q: want line:col", s)
	}
	line, err := strconv.Atoi(l)
	if err != nil || line < 1 {
		return buffer.Point{}, fmt.Errorf("position %q: bad line", s)
	}
	col, err := strconv.Atoi(c)
	if err != nil || col < 1 {
		return buffer.Point{}, fmt.Errorf("position %q: bad column", s)
	}
	return buffer.Point{Line: uint32(line - 1), Column: uint32(col - 1)}, nil
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// step is one batch command: an action line or a key sequence.
type step struct {
	keys bool
	text string
}

// stepList lets -e and -k share one ordered list.
type stepList struct {
	steps *[]step
	keys  bool
}

func (l stepList) String() string {
	if l.steps == nil {
		return ""
	}
	parts := make([]string, 0, len(*l.steps))
	for _, s := range *l.steps {
		if s.keys == l.keys {
			parts = append(parts, s.text)
		}
	}
	return strings.Join(parts, ", ")
}

func (l stepList) Set(v string) error {
	*l.steps = append(*l.steps, step{keys: l.keys, text: v})
	return nil
}
