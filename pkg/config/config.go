// Package config loads densitool settings from a TOML file.
//
// The configuration file lives at $XDG_CONFIG_HOME/densitool/densitool.toml
// (falling back to ~/.config/densitool/densitool.toml) unless an explicit
// path is given. A missing file is not an error: built-in defaults apply.
// Command-line flags override configuration values.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/densitool/pkg/errors"
)

const (
	appName  = "densitool"
	fileName = "densitool.toml"
)

// Cache backend names accepted in the configuration file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds file-level settings.
type Config struct {
	// Input is the default listing path used when a command gets no file
	// argument.
	Input string `toml:"input"`

	// Strict fails loads on malformed rows instead of skipping them.
	Strict bool `toml:"strict"`

	// Top limits report output to the N densest designs (0 = all).
	Top int `toml:"top"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects the parse-cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis" or "none". Empty means "file".
	Backend string `toml:"backend"`

	// Addr is the Redis address (host:port) for the redis backend.
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{Backend: BackendFile},
	}
}

// Load reads the configuration file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault reads the configuration from the default path. A missing file
// yields the built-in defaults without error.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

// DefaultPath returns the default configuration file location following the
// XDG convention.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q requires an addr", BackendRedis)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be %s, %s or %s)",
			c.Cache.Backend, BackendFile, BackendRedis, BackendNone)
	}
	if c.Top < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "top must not be negative, got %d", c.Top)
	}
	return nil
}
