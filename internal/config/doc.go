// Package config provides the configuration for the kill ring tools.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML, by extension
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: Configuration file decoding (TOML, YAML)
//   - watcher: File watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load("killring.toml")
//	if err != nil {
//	    return err
//	}
//	ring := killring.NewRing(cfg.KillRing.Capacity)
//
// # Example File
//
//	[killring]
//	enabled = true
//	capacity = 60
//	delete_attempts = 3
//	yank_pop_undo_limit = 2
//
//	[clipboard]
//	backend = "system"
//
//	[logging]
//	level = "info"
//
// # Environment
//
// KILLRING_CAPACITY, KILLRING_DELETE_ATTEMPTS, KILLRING_YANKPOP_UNDO,
// KILLRING_ENABLED, KILLRING_CLIPBOARD and KILLRING_LOG_LEVEL override the
// matching file settings. EnvVars lists them.
//
// # Live Reload
//
//	r, err := config.WatchFile(path, config.Options{}, 200*time.Millisecond,
//	    func(cfg *config.Config) { ring.SetCapacity(cfg.KillRing.Capacity) },
//	    func(err error) { logger.Warn("config: %v", err) })
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
package config
