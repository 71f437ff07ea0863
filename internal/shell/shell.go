// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import (
	"fmt"

	"github.com/AntonC9018/command-terminal/internal/logring"
)

// HelpOption is the reserved option name that shows a command's
// usage instead of invoking it. Handlers cannot override it.
const HelpOption = "help"

// defaultLogCapacity bounds the ring store when the host does not
// configure one.
const defaultLogCapacity = 512

// =============================================================================
// SHELL
// =============================================================================

// Shell owns the command registry, the reusable invocation context
// and the message store, and runs the dispatch pipeline. It is
// single-threaded: one dispatch runs to completion before the next
// may start, and hosts driving it concurrently must serialize access.
type Shell struct {
	registry *Registry
	ctx      *Context
	log      *logring.Buffer
}

// Options configures a new shell.
type Options struct {
	// LogCapacity bounds the ring store (default 512).
	LogCapacity int

	// StrictErrors excludes warnings from the failure set.
	StrictErrors bool

	// Commands is the startup registration table, assembled by the
	// host ahead of time.
	Commands []*Command
}

// New creates a shell with the built-in commands plus the supplied
// registration table.
func New(opts Options) *Shell {
	capacity := opts.LogCapacity
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}

	log := logring.NewBuffer(capacity)
	s := &Shell{
		registry: NewRegistry(),
		ctx:      NewContext(log),
		log:      log,
	}
	s.ctx.SetStrictErrors(opts.StrictErrors)

	s.registerBuiltins()
	for _, cmd := range opts.Commands {
		s.registry.Register(cmd)
	}
	return s
}

// Registry returns the command table for runtime registration.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Context returns the shell's invocation context. Between dispatches
// it still holds the session variable table.
func (s *Shell) Context() *Context {
	return s.ctx
}

// Log returns the message store.
func (s *Shell) Log() *logring.Buffer {
	return s.log
}

// HasErrors reports whether the last dispatch logged anything
// classified as an error.
func (s *Shell) HasErrors() bool {
	return s.ctx.HasErrors()
}

// =============================================================================
// DISPATCH
// =============================================================================

// Dispatch runs one raw line through the scan, validate and invoke
// pipeline. All diagnostics go to the log store; Dispatch itself
// never fails, and a panicking handler is caught at this boundary.
func (s *Shell) Dispatch(line string) {
	s.ctx.Reset()
	s.ctx.SetInput(line)

	// Empty or whitespace-only input aborts silently. A failed
	// command-name substitution has already logged its error.
	if !s.ctx.ScanCommandName() {
		return
	}

	// Intercepted builtins consume the raw remainder and skip
	// scanning, validation and arity entirely.
	if fn, ok := s.registry.Intercepted(s.ctx.Command); ok {
		fn(s.ctx, s.ctx.Remainder())
		return
	}

	cmd, ok := s.registry.Get(s.ctx.Command)
	if !ok {
		s.ctx.LogError(fmt.Sprintf("Command '%s' could not be found.", s.ctx.Command))
		return
	}

	s.ctx.ScanArguments()
	if s.ctx.HasErrors() {
		return
	}

	s.ctx.ScanOptions()
	if s.ctx.HasErrors() {
		return
	}

	// The reserved help option wins over validation and the handler.
	if s.ctx.HasOption(HelpOption) {
		s.ctx.takeOption(HelpOption)
		s.ctx.LogInfo(cmd.Usage())
		return
	}

	if s.ctx.HasErrors() {
		return
	}

	if !s.validateArity(cmd) {
		return
	}

	s.invoke(cmd)
}

// validateArity enforces the command's argument bounds. It returns
// false when dispatch must stop, which includes the non-error usage
// shortcut for bare invocations of commands that need arguments.
func (s *Shell) validateArity(cmd *Command) bool {
	n := s.ctx.ArgCount()

	// Bare invocation of a command that requires arguments shows
	// usage instead of an arity error.
	if cmd.MinArgs > 0 && n == 0 && s.ctx.OptionCount() == 0 {
		s.ctx.LogInfo(cmd.Usage())
		return false
	}

	switch {
	case n < cmd.MinArgs:
		s.logArityError(cmd, n, cmd.MinArgs, "at least")
		return false
	case cmd.MaxArgs >= 0 && n > cmd.MaxArgs:
		s.logArityError(cmd, n, cmd.MaxArgs, "at most")
		return false
	}

	// Informational excess reporting for hosts that register bounded
	// commands but tolerate extra tokens.
	if cmd.MaxArgs >= 0 {
		for i := cmd.MaxArgs; i < n; i++ {
			s.ctx.LogWarning(fmt.Sprintf("Extra argument ignored: '%s'.", s.ctx.Args()[i]))
		}
	}

	return true
}

func (s *Shell) logArityError(cmd *Command, got, bound int, qualifier string) {
	if cmd.MinArgs == cmd.MaxArgs {
		qualifier = "exactly"
	}
	plural := "arguments"
	if bound == 1 {
		plural = "argument"
	}
	s.ctx.LogError(fmt.Sprintf("Command '%s' expects %s %d %s, got %d.",
		cmd.Name, qualifier, bound, plural, got))
}

// invoke runs the handler with fault isolation: a panic inside a
// handler becomes a logged error and never propagates to the host.
func (s *Shell) invoke(cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			s.ctx.LogError(fmt.Sprintf("Command '%s' failed: %v", cmd.Name, r))
		}
	}()
	cmd.Handler(s.ctx)
}
