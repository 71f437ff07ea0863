// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists terminal session state between runs.
//
// A single SQLite database holds the command history and the session
// variable table, so `$name` bindings survive a restart. The engine
// itself never touches this package; the REPL host loads variables at
// startup and writes back as they change.
//
// # Key Types
//
//   - Store: the open database with history and variable operations
package storage
