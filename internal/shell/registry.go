// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import "sort"

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Unbounded marks a command that accepts any number of arguments.
const Unbounded = -1

// HandlerFunc executes one invocation against the context.
type HandlerFunc func(ctx *Context)

// InterceptFunc executes an intercepted builtin: a command that must
// see the unscanned remainder of the line verbatim because ordinary
// scanning would strip quoting and reinterpret option markers.
type InterceptFunc func(ctx *Context, raw string)

// Command is a registered command. Names are unique
// case-insensitively; MaxArgs of Unbounded lifts the upper arity
// bound.
type Command struct {
	// Name is the primary command name (e.g., "help").
	Name string

	// MinArgs and MaxArgs bound the positional argument count.
	MinArgs int
	MaxArgs int

	// Help is the one-line summary shown in listings.
	Help string

	// ExtendedHelp is the full usage text shown by `cmd -help` and by
	// the zero-argument usage shortcut. Falls back to Help when empty.
	ExtendedHelp string

	// Handler executes the command.
	Handler HandlerFunc
}

// Usage returns the extended help, falling back to the short help.
func (c *Command) Usage() string {
	if c.ExtendedHelp != "" {
		return c.ExtendedHelp
	}
	return c.Help
}

// =============================================================================
// REGISTRY
// =============================================================================

// HelpEntry pairs a command name with its one-line help for listings.
type HelpEntry struct {
	Name string
	Help string
}

// Registry is the case-insensitive name-to-command table. Commands
// are registered at shell initialization from an external table and
// may additionally be registered at runtime; they live for the
// shell's lifetime.
type Registry struct {
	commands    *caseMap[*Command]
	intercepted *caseMap[InterceptFunc]

	// helpCache is rebuilt lazily; nil means stale.
	helpCache []HelpEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:    newCaseMap[*Command](),
		intercepted: newCaseMap[InterceptFunc](),
	}
}

// Register inserts a command, replacing any previous registration
// under the same normalized name, and invalidates the help listing.
func (r *Registry) Register(cmd *Command) {
	r.commands.set(cmd.Name, cmd)
	r.helpCache = nil
}

// RegisterIntercepted inserts an intercepted builtin. Intercepted
// names bypass scanning, validation and arity checks entirely.
func (r *Registry) RegisterIntercepted(name string, fn InterceptFunc) {
	r.intercepted.set(name, fn)
}

// Get looks up a command by case-insensitive name.
func (r *Registry) Get(name string) (*Command, bool) {
	return r.commands.get(name)
}

// Intercepted looks up an intercepted builtin.
func (r *Registry) Intercepted(name string) (InterceptFunc, bool) {
	return r.intercepted.get(name)
}

// Names returns all registered command names in registration order.
func (r *Registry) Names() []string {
	return r.commands.names()
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return r.commands.len()
}

// HelpEntries returns the cached name/help listing, sorted by name,
// rebuilding it if a registration invalidated the cache.
func (r *Registry) HelpEntries() []HelpEntry {
	if r.helpCache == nil {
		entries := make([]HelpEntry, 0, r.commands.len())
		r.commands.each(func(name string, cmd *Command) {
			entries = append(entries, HelpEntry{Name: cmd.Name, Help: cmd.Help})
		})
		sort.Slice(entries, func(i, j int) bool {
			return normalize(entries[i].Name) < normalize(entries[j].Name)
		})
		r.helpCache = entries
	}
	return r.helpCache
}
