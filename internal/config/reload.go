package config

import (
	"fmt"
	"time"

	"github.com/dshills/killring/internal/config/watcher"
)

// Reloader reloads a config file whenever it changes on disk.
type Reloader struct {
	path string
	opts Options
	w    *watcher.Watcher
}

// ReloadFunc receives each successfully reloaded configuration.
type ReloadFunc func(cfg *Config)

// WatchFile watches path and calls onReload with the freshly loaded
// configuration after every settled change. Load or validation failures are
// passed to onError and the previous configuration stays in effect. A removed
// file is reported as ErrFileNotFound.
func WatchFile(path string, opts Options, debounce time.Duration, onReload ReloadFunc, onError func(error)) (*Reloader, error) {
	w, err := watcher.New(watcher.WithDebounce(debounce))
	if err != nil {
		return nil, err
	}

	r := &Reloader{path: path, opts: opts, w: w}
	if onError == nil {
		onError = func(error) {}
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			onError(fmt.Errorf("%w: %s", ErrFileNotFound, r.path))
			return
		}
		cfg, err := LoadWithOptions(r.path, r.opts)
		if err != nil {
			onError(err)
			return
		}
		onReload(cfg)
	})
	w.OnError(onError)

	if err := w.Watch(path); err != nil {
		w.Close()
		return nil, err
	}
	return r, nil
}

// Path returns the watched file.
func (r *Reloader) Path() string {
	return r.path
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.w.Close()
}
