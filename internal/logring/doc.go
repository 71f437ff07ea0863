// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logring provides the terminal's message store: a
// fixed-capacity ring buffer of severity-tagged messages.
//
// Every diagnostic the shell produces ends up here. Once the buffer
// is full, each new message evicts the oldest one, so the store holds
// a sliding window of the most recent output.
//
// # Key Types
//
//   - Severity: message severity (Info, Warning, Error)
//   - SeveritySet: small set of severities with union semantics
//   - Entry: one stored message
//   - Buffer: the ring store itself
//   - Sink: the write-side interface consumed by the shell
package logring
