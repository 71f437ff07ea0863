// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the command
// terminal host.
//
// Settings live in a TOML file with sensible defaults and
// validation. The engine itself is configured programmatically; this
// package only covers host concerns such as the prompt, the log
// capacity and persistence.
//
// Default location: ~/.command-terminal/config.toml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete host configuration.
type Config struct {
	// Terminal settings
	Terminal TerminalConfig `toml:"terminal"`

	// Persistence settings
	Persistence PersistenceConfig `toml:"persistence"`
}

// TerminalConfig configures the shell and its REPL.
type TerminalConfig struct {
	// Prompt is printed before each input line.
	Prompt string `toml:"prompt"`

	// LogCapacity bounds the ring of retained messages.
	LogCapacity int `toml:"log_capacity"`

	// StrictErrors excludes warnings when deciding whether a
	// dispatch failed.
	StrictErrors bool `toml:"strict_errors"`

	// HistoryLimit is how many history lines the REPL preloads.
	HistoryLimit int `toml:"history_limit"`
}

// PersistenceConfig configures the SQLite-backed session store.
type PersistenceConfig struct {
	// Enabled turns history and variable persistence on.
	Enabled bool `toml:"enabled"`

	// DatabasePath overrides the default database location.
	DatabasePath string `toml:"database_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Terminal: TerminalConfig{
			Prompt:       "> ",
			LogCapacity:  512,
			StrictErrors: false,
			HistoryLimit: 200,
		},
		Persistence: PersistenceConfig{
			Enabled: true,
		},
	}
}

// Dir returns the configuration directory, ~/.command-terminal.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".command-terminal"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultDatabasePath returns the default session database location.
func DefaultDatabasePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.db"), nil
}

// =============================================================================
// LOAD AND SAVE
// =============================================================================

// Load reads the config at path, filling defaults for anything the
// file leaves out. A missing file is not an error: it yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating the parent directory if
// needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open config for writing: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// fillDefaults replaces zero values a partial file left behind.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Terminal.Prompt == "" {
		c.Terminal.Prompt = def.Terminal.Prompt
	}
	if c.Terminal.LogCapacity == 0 {
		c.Terminal.LogCapacity = def.Terminal.LogCapacity
	}
	if c.Terminal.HistoryLimit == 0 {
		c.Terminal.HistoryLimit = def.Terminal.HistoryLimit
	}
}

// Validate rejects configurations the host cannot run with.
func (c *Config) Validate() error {
	if c.Terminal.LogCapacity < 0 {
		return fmt.Errorf("terminal.log_capacity must be positive, got %d", c.Terminal.LogCapacity)
	}
	if c.Terminal.HistoryLimit < 0 {
		return fmt.Errorf("terminal.history_limit cannot be negative, got %d", c.Terminal.HistoryLimit)
	}
	return nil
}
