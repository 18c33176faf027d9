package plugin

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/killring/internal/logging"
	"github.com/dshills/killring/internal/plugin/api"
	plua "github.com/dshills/killring/internal/plugin/lua"
)

// Runner executes scripts with the ks API bound to one session.
type Runner struct {
	api     *api.Context
	timeout time.Duration
	out     io.Writer
	logger  *logging.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds each script run. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithOutput sends print output to w instead of the logger.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger used for print output and run diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		if l == nil {
			l = logging.Null()
		}
		r.logger = l
	}
}

// NewRunner creates a Runner for the given API context.
func NewRunner(ctx *api.Context, opts ...Option) *Runner {
	if ctx == nil {
		ctx = &api.Context{}
	}
	r := &Runner{
		api:     ctx,
		timeout: plua.DefaultExecutionTimeout,
		logger:  logging.Null(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("plugin")
	return r
}

// RunString runs code. name identifies the chunk in errors and logs.
func (r *Runner) RunString(ctx context.Context, name, code string) error {
	return r.run(ctx, name, func(s *plua.State) error {
		return s.DoString(ctx, code)
	})
}

// RunFile runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, filepath.Base(path), func(s *plua.State) error {
		return s.DoFile(ctx, path)
	})
}

func (r *Runner) run(ctx context.Context, name string, exec func(*plua.State) error) error {
	state, err := plua.NewState(plua.WithExecutionTimeout(r.timeout))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, err)
	}
	defer state.Close()

	reg, err := api.DefaultRegistry(r.api)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, err)
	}
	if err := reg.InjectAll(state.LuaState()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, err)
	}
	state.RegisterFunc("print", r.print)

	start := time.Now()
	r.logger.Debug("running %s", name)
	if err := exec(state); err != nil {
		r.logger.Warn("%s failed: %v", name, err)
		return fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, err)
	}
	r.logger.Debug("%s finished in %s", name, time.Since(start))
	return nil
}

// print mirrors Lua's print: arguments converted with tostring, joined by
// tabs, one line per call.
func (r *Runner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	line := strings.Join(parts, "\t")

	if r.out != nil {
		fmt.Fprintln(r.out, line)
		return 0
	}
	r.logger.Info("%s", line)
	return 0
}
