// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the command
// terminal host.
//
// Settings live in a single TOML file with sensible defaults and
// validation: the REPL prompt, log capacity, error strictness and
// persistence options.
//
// # Key Types
//
//   - Config: complete host configuration
//   - TerminalConfig: prompt, log capacity, error strictness
//   - PersistenceConfig: history/variable database settings
//
// # Usage
//
//	path, _ := config.DefaultPath()
//	cfg, err := config.Load(path)
//	if err != nil {
//	    return err
//	}
package config
