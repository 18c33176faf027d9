package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/dshills/killring/internal/config/loader"
)

// Default values.
const (
	DefaultCapacity         = 60
	DefaultDeleteAttempts   = 3
	DefaultYankPopUndoLimit = 2
	DefaultClipboardBackend = "system"
	DefaultLogLevel         = "info"

	// MaxCapacity bounds the kill ring size.
	MaxCapacity = 10000
	// MaxAttempts bounds delete retries and yank-pop undo.
	MaxAttempts = 10
)

// Config is the complete configuration.
type Config struct {
	KillRing  KillRingConfig  `toml:"killring" yaml:"killring"`
	Clipboard ClipboardConfig `toml:"clipboard" yaml:"clipboard"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
}

// KillRingConfig configures the kill ring and the kill/yank commands.
type KillRingConfig struct {
	// Enabled false runs in clipboard-only mode.
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Capacity is the number of entries kept.
	Capacity int `toml:"capacity" yaml:"capacity"`
	// DeleteAttempts is how often a kill retries a rejected deletion.
	DeleteAttempts int `toml:"delete_attempts" yaml:"delete_attempts"`
	// YankPopUndoLimit bounds the changes undone by yank-pop.
	YankPopUndoLimit int `toml:"yank_pop_undo_limit" yaml:"yank_pop_undo_limit"`
}

// ClipboardConfig selects the clipboard backend.
type ClipboardConfig struct {
	// Backend is one of "system", "osc52" or "memory".
	Backend string `toml:"backend" yaml:"backend"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		KillRing: KillRingConfig{
			Enabled:          true,
			Capacity:         DefaultCapacity,
			DeleteAttempts:   DefaultDeleteAttempts,
			YankPopUndoLimit: DefaultYankPopUndoLimit,
		},
		Clipboard: ClipboardConfig{Backend: DefaultClipboardBackend},
		Logging:   LoggingConfig{Level: DefaultLogLevel},
	}
}

// Options customizes Load.
type Options struct {
	// FS reads the config file. Defaults to the OS file system.
	FS loader.FileSystem
	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds the configuration from defaults, the file at path and the
// environment, then validates it. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	return LoadWithOptions(path, Options{})
}

// LoadWithOptions is Load with injectable file system and environment.
func LoadWithOptions(path string, opts Options) (*Config, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	cfg := Default()
	if path != "" {
		if err := loader.LoadFile(opts.FS, path, cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, err
		}
	}

	if err := applyEnv(cfg, opts.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads a configuration document of the given format on top of the
// defaults and validates it. The environment is not consulted.
func Decode(r io.Reader, format loader.Format) (*Config, error) {
	cfg := Default()
	if err := loader.Decode("<reader>", format, r, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and reports all failures at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	kr := c.KillRing
	check(kr.Capacity >= 1 && kr.Capacity <= MaxCapacity,
		"killring.capacity", fmt.Sprintf("must be between 1 and %d", MaxCapacity), kr.Capacity)
	check(kr.DeleteAttempts >= 1 && kr.DeleteAttempts <= MaxAttempts,
		"killring.delete_attempts", fmt.Sprintf("must be between 1 and %d", MaxAttempts), kr.DeleteAttempts)
	check(kr.YankPopUndoLimit >= 1 && kr.YankPopUndoLimit <= MaxAttempts,
		"killring.yank_pop_undo_limit", fmt.Sprintf("must be between 1 and %d", MaxAttempts), kr.YankPopUndoLimit)

	check(oneOf(c.Clipboard.Backend, "system", "osc52", "memory"),
		"clipboard.backend", `must be "system", "osc52" or "memory"`, c.Clipboard.Backend)
	check(oneOf(c.Logging.Level, "debug", "info", "warn", "warning", "error"),
		"logging.level", `must be "debug", "info", "warn" or "error"`, c.Logging.Level)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
