package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dshills/killring/internal/browse"
	"github.com/dshills/killring/internal/clipboard"
	"github.com/dshills/killring/internal/config"
	"github.com/dshills/killring/internal/dispatcher"
	"github.com/dshills/killring/internal/dispatcher/handler"
	krhandler "github.com/dshills/killring/internal/dispatcher/handlers/killring"
	"github.com/dshills/killring/internal/engine"
	"github.com/dshills/killring/internal/engine/buffer"
	"github.com/dshills/killring/internal/engine/cursor"
	"github.com/dshills/killring/internal/keymap"
	"github.com/dshills/killring/internal/killring"
	"github.com/dshills/killring/internal/logging"
	"github.com/dshills/killring/internal/plugin"
	"github.com/dshills/killring/internal/plugin/api"
	"github.com/dshills/killring/internal/yank"
)

// session ties one document to a kill ring, a yanker and a dispatcher.
type session struct {
	mu      sync.Mutex
	cfg     *config.Config
	eng     *engine.Engine
	ring    *killring.Ring
	yanker  *yank.KillYanker
	disp    *dispatcher.Dispatcher
	scripts *plugin.Runner
	keys    *keymap.Registry
	logger  *logging.Logger
}

type sessionOptions struct {
	// clip overrides the configured clipboard backend.
	clip clipboard.Clipboard
	// picker serves browse actions that carry no index or query.
	picker killring.Picker
	// out receives script print output.
	out io.Writer
	// keymaps are loaded on top of the default bindings, in order.
	keymaps []string
}

func newSession(cfg *config.Config, doc io.Reader, logger *logging.Logger, opts sessionOptions) (*session, error) {
	eng, err := engine.NewFromReader(doc)
	if err != nil {
		return nil, err
	}

	clip := opts.clip
	if clip == nil {
		clip, err = clipboard.New(cfg.Clipboard.Backend)
		if err != nil {
			return nil, err
		}
	}

	var ring *killring.Ring
	if cfg.KillRing.Enabled {
		ring = killring.NewRing(cfg.KillRing.Capacity)
	}

	y := yank.New(eng, clip, ring,
		yank.WithDeleteAttempts(cfg.KillRing.DeleteAttempts),
		yank.WithMaxYankPopUndo(cfg.KillRing.YankPopUndoLimit),
		yank.WithLogger(logger.WithComponent("yank")),
	)

	d := dispatcher.NewWithDefaults()
	d.SetLogger(logger)
	d.SetEditor(eng)
	d.SetYanker(y)
	if opts.picker == nil {
		opts.picker = browse.TUIPicker{}
	}
	d.SetPicker(opts.picker)
	d.RegisterNamespace(krhandler.NewHandler())

	keys := keymap.NewRegistry()
	if err := keys.Register(keymap.Default()); err != nil {
		return nil, err
	}
	for _, path := range opts.keymaps {
		km, err := keymap.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := keys.Register(km); err != nil {
			return nil, err
		}
	}

	s := &session{
		cfg:    cfg,
		eng:    eng,
		ring:   ring,
		yanker: y,
		disp:   d,
		keys:   keys,
		logger: logger,
	}

	runnerOpts := []plugin.Option{plugin.WithLogger(logger)}
	if opts.out != nil {
		runnerOpts = append(runnerOpts, plugin.WithOutput(opts.out))
	}
	s.scripts = plugin.NewRunner(&api.Context{
		Buffer:     eng,
		Cursor:     eng,
		Ring:       ring,
		Dispatcher: s,
	}, runnerOpts...)

	return s, nil
}

// Dispatch runs an action through the dispatcher.
func (s *session) Dispatch(action handler.Action) handler.Result {
	return s.disp.Dispatch(action)
}

// exec parses and dispatches one command line.
func (s *session) exec(line string) error {
	action, err := parseAction(line)
	if err != nil {
		return err
	}
	return s.run(action)
}

// press resolves a key sequence and dispatches its action.
func (s *session) press(keys string) error {
	action, err := s.keys.Resolve(keys)
	if err != nil {
		return err
	}
	return s.run(action)
}

func (s *session) run(action handler.Action) error {
	result := s.Dispatch(action)
	switch {
	case result.IsError():
		if result.Error != nil {
			return fmt.Errorf("%s: %w", action.Name, result.Error)
		}
		return fmt.Errorf("%s: %s", action.Name, result.Message)
	case result.Message != "":
		s.logger.Info("%s: %s", action.Name, result.Message)
	}
	return nil
}

// moveTo collapses the selections to a single cursor at p.
func (s *session) moveTo(p buffer.Point) error {
	return s.eng.SetSelections(cursor.NewCursorSelection(p))
}

// runScript runs a Lua file against the session.
func (s *session) runScript(ctx context.Context, path string) error {
	return s.scripts.RunFile(ctx, path)
}

// reload applies the settings that can change while running.
func (s *session) reload(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lvl := logging.ParseLevel(cfg.Logging.Level); lvl != s.logger.Level() {
		s.logger.SetLevel(lvl)
	}
	s.yanker.SetLimits(cfg.KillRing.DeleteAttempts, cfg.KillRing.YankPopUndoLimit)
	if s.ring != nil {
		s.ring.SetCapacity(cfg.KillRing.Capacity)
	}
	if cfg.KillRing.Enabled != s.cfg.KillRing.Enabled {
		s.logger.Warn("killring.enabled changed; restart to apply")
	}
	if cfg.Clipboard.Backend != s.cfg.Clipboard.Backend {
		s.logger.Warn("clipboard.backend changed; restart to apply")
	}
	s.cfg = cfg
	s.logger.Info("configuration reloaded")
}

// reloadError reports a failed reload without changing the session.
func (s *session) reloadError(err error) {
	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			s.logger.Warn("config: %v", e)
		}
		return
	}
	s.logger.Warn("config reload: %v", err)
}

// text returns the document.
func (s *session) text() string {
	return s.eng.Text()
}

func (s *session) close() {
	s.yanker.Dispose()
}
