// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultDatabase = "~/.todoweb/todo.db"
	DefaultAddr     = ":5000"
	DefaultLogLevel = "info"
	DefaultFile     = "~/.todoweb/config.toml"
)

// Config holds the full configuration for todoweb.
type Config struct {
	// Database is the SQLite file holding the task table
	Database string `toml:"database"`

	// Addr is the listen address of the web server
	Addr string `toml:"addr"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. Config file (path, or ~/.todoweb/config.toml when path is empty and the file exists)
// 3. Environment variables
//
// Command-line flags are applied by the caller on top of the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Config file
	explicit := path != ""
	if !explicit {
		path = expandPath(DefaultFile)
	}
	if err := loadConfigFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// 3. Override from environment
	loadFromEnv(cfg)

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Database = DefaultDatabase
	cfg.Addr = DefaultAddr
	cfg.LogLevel = DefaultLogLevel
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODOWEB_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("TODOWEB_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TODOWEB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// SetDatabase overrides the database path, expanding ~
func (c *Config) SetDatabase(path string) {
	c.Database = expandPath(path)
}

func (c *Config) finalize() error {
	c.Database = expandPath(c.Database)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.LogLevel)
	}
	if c.Database == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}

// expandPath expands a leading ~ to the home directory.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
