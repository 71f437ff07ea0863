// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli hosts the shell engine behind an interactive line
// editor. It owns everything the engine deliberately does not:
// reading lines, rendering log entries with severity styling,
// persisting history and variables, and reloading the config file
// while the session runs.
package cli
