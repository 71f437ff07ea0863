// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the command
// terminal host.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Terminal.Prompt, cfg.Terminal.Prompt)
	assert.Equal(t, def.Terminal.LogCapacity, cfg.Terminal.LogCapacity)
	assert.True(t, cfg.Persistence.Enabled)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[terminal]
prompt = "$ "
strict_errors = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "$ ", cfg.Terminal.Prompt)
	assert.True(t, cfg.Terminal.StrictErrors)
	// Unset values come from the defaults.
	assert.Equal(t, Default().Terminal.LogCapacity, cfg.Terminal.LogCapacity)
	assert.Equal(t, Default().Terminal.HistoryLimit, cfg.Terminal.HistoryLimit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[terminal]
log_capacity = -5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Terminal.Prompt = ">> "
	cfg.Terminal.LogCapacity = 64
	cfg.Persistence.Enabled = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ">> ", loaded.Terminal.Prompt)
	assert.Equal(t, 64, loaded.Terminal.LogCapacity)
	assert.False(t, loaded.Persistence.Enabled)
}
