// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
//
// A single line of text goes through scanning, variable substitution,
// arity validation and typed argument parsing before it reaches a
// registered handler. All diagnostics are reported through a message
// sink; nothing inside a dispatch ever escapes as a panic or error to
// the caller.
//
// # Key Types
//
//   - Scanner: cursor tokenizer with atomic token attempts
//   - Parser: named string-to-value converter
//   - Context: per-invocation arguments, options and session variables
//   - Command: name, arity bounds, help text and handler
//   - Shell: registry plus the dispatch state machine
//   - Autocomplete: prefix matching with cyclic navigation
//
// # Usage
//
// Build a shell from a registration table and dispatch lines:
//
//	sh := shell.New(shell.Options{Commands: table})
//	sh.Dispatch(`add 1 2`)
//	sh.Log().Each(func(e logring.Entry) { fmt.Println(e.Text) })
//
// Handlers read typed values out of the context:
//
//	func handleAdd(ctx *shell.Context) {
//	    a := shell.ParseArg(ctx, 0, "a", shell.Int)
//	    b := shell.ParseArg(ctx, 1, "b", shell.Int)
//	    ctx.EndParsing()
//	    if ctx.HasErrors() {
//	        return
//	    }
//	    ctx.LogInfo(strconv.Itoa(a + b))
//	}
package shell
