package config

import (
	"sort"
	"strconv"
	"strings"
)

// envSetter applies one environment variable to the configuration.
type envSetter func(c *Config, value string) error

// envMapping maps environment variables to settings.
var envMapping = map[string]envSetter{
	"KILLRING_CAPACITY":        intSetter(func(c *Config) *int { return &c.KillRing.Capacity }),
	"KILLRING_DELETE_ATTEMPTS": intSetter(func(c *Config) *int { return &c.KillRing.DeleteAttempts }),
	"KILLRING_YANKPOP_UNDO":    intSetter(func(c *Config) *int { return &c.KillRing.YankPopUndoLimit }),
	"KILLRING_ENABLED":         boolSetter(func(c *Config) *bool { return &c.KillRing.Enabled }),
	"KILLRING_CLIPBOARD":       stringSetter(func(c *Config) *string { return &c.Clipboard.Backend }),
	"KILLRING_LOG_LEVEL":       stringSetter(func(c *Config) *string { return &c.Logging.Level }),
}

// EnvVars returns the recognized environment variable names, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	for _, name := range EnvVars() {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := envMapping[name](c, strings.TrimSpace(val)); err != nil {
			return &ParseError{Path: "$" + name, Message: err.Error(), Err: err}
		}
	}
	return nil
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// boolSetter accepts the same spellings as strconv.ParseBool plus yes/no and
// on/off.
func boolSetter(field func(*Config) *bool) envSetter {
	return func(c *Config, value string) error {
		switch strings.ToLower(value) {
		case "yes", "on":
			*field(c) = true
			return nil
		case "no", "off":
			*field(c) = false
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}
