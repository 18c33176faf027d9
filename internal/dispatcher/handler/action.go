package handler

// Action is a named command with arguments.
type Action struct {
	// Name is the command identifier (e.g., "killring.yank").
	Name string

	// Args contains command-specific arguments.
	Args Args

	// Count is the repeat count. Zero means once.
	Count int
}

// WithCount returns a copy of the action with the specified count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// WithArg returns a copy of the action with an extra argument set.
func (a Action) WithArg(key string, value any) Action {
	extra := make(map[string]any, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}

// Args holds action arguments.
type Args struct {
	// Text for commands that take a string operand.
	Text string

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]any
}

// Get retrieves a value from Extra.
func (a Args) Get(key string) (any, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a Args) GetString(key string) (string, bool) {
	v, ok := a.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt retrieves an integer value from Extra. Float values, as produced by
// scripting bridges, are truncated.
func (a Args) GetInt(key string) (int, bool) {
	v, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
