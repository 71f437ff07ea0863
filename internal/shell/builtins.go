// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import (
	"fmt"
	"strings"

	"github.com/AntonC9018/command-terminal/internal/util"
)

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

// registerBuiltins installs the commands every shell carries
// regardless of the host's registration table.
func (s *Shell) registerBuiltins() {
	s.registry.Register(&Command{
		Name:         "help",
		MinArgs:      0,
		MaxArgs:      1,
		Help:         "List commands, or show detailed help for one",
		ExtendedHelp: "Usage: help [command]\nWithout arguments, lists every command with its summary.",
		Handler:      s.handleHelp,
	})

	s.registry.Register(&Command{
		Name:         "clear",
		MinArgs:      0,
		MaxArgs:      0,
		Help:         "Clear the message log",
		ExtendedHelp: "Usage: clear",
		Handler:      s.handleClear,
	})

	s.registry.Register(&Command{
		Name:         "set-var",
		MinArgs:      2,
		MaxArgs:      2,
		Help:         "Bind a session variable",
		ExtendedHelp: "Usage: set-var <name> <value>\nThe variable can then be referenced as $name.",
		Handler:      handleSetVar,
	})

	s.registry.Register(&Command{
		Name:         "remove-var",
		MinArgs:      1,
		MaxArgs:      1,
		Help:         "Unbind a session variable",
		ExtendedHelp: "Usage: remove-var <name>",
		Handler:      handleRemoveVar,
	})

	s.registry.Register(&Command{
		Name:         "vars",
		MinArgs:      0,
		MaxArgs:      0,
		Help:         "List bound session variables",
		ExtendedHelp: "Usage: vars",
		Handler:      handleVars,
	})

	// echo must reproduce the trailing text literally, quotes and
	// option markers included, so dispatch intercepts it before
	// scanning. The plain registration below is what makes it show up
	// in help listings and completion; its handler is unreachable.
	s.registry.RegisterIntercepted("echo", handleEcho)
	s.registry.Register(&Command{
		Name:         "echo",
		MinArgs:      0,
		MaxArgs:      Unbounded,
		Help:         "Print the rest of the line verbatim",
		ExtendedHelp: "Usage: echo <text>",
		Handler:      func(*Context) {},
	})
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Shell) handleHelp(ctx *Context) {
	ctx.EndParsing()
	if ctx.HasErrors() {
		return
	}

	if ctx.ArgCount() == 0 {
		entries := s.registry.HelpEntries()
		names := make([]string, len(entries))
		for i, entry := range entries {
			names[i] = entry.Name
		}
		width := util.MaxWidth(names)
		for _, entry := range entries {
			ctx.LogInfo(fmt.Sprintf("%s  %s", util.PadRight(entry.Name, width), entry.Help))
		}
		return
	}

	name := ctx.Arg(0, "command")
	cmd, ok := s.registry.Get(name)
	if !ok {
		ctx.LogError(fmt.Sprintf("Command '%s' could not be found.", name))
		return
	}
	ctx.LogInfo(cmd.Usage())
}

func (s *Shell) handleClear(ctx *Context) {
	ctx.EndParsing()
	if ctx.HasErrors() {
		return
	}
	s.log.Clear()
}

func handleSetVar(ctx *Context) {
	name := ctx.Arg(0, "name")
	value := ctx.Arg(1, "value")
	ctx.EndParsing()
	if ctx.HasErrors() {
		return
	}

	// Accept "set-var $x v" as a convenience; the binding is by name.
	name = strings.TrimPrefix(name, VarMarker)
	if name == "" {
		ctx.LogError("Variable names cannot be empty.")
		return
	}
	ctx.SetVariable(name, value)
}

func handleRemoveVar(ctx *Context) {
	name := ctx.Arg(0, "name")
	ctx.EndParsing()
	if ctx.HasErrors() {
		return
	}

	name = strings.TrimPrefix(name, VarMarker)
	if !ctx.RemoveVariable(name) {
		ctx.LogError(fmt.Sprintf("No variable named %s", name))
	}
}

func handleVars(ctx *Context) {
	ctx.EndParsing()
	if ctx.HasErrors() {
		return
	}
	ctx.EachVariable(func(name, value string) {
		ctx.LogInfo(fmt.Sprintf("%s%s = %s", VarMarker, name, value))
	})
}

func handleEcho(ctx *Context, raw string) {
	ctx.LogInfo(strings.TrimLeft(raw, " \t"))
}
