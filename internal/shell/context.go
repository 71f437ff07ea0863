// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import (
	"fmt"
	"strings"

	"github.com/AntonC9018/command-terminal/internal/logring"
)

// VarMarker prefixes a token that references a session variable.
const VarMarker = "$"

// optValue is a scanned option value; has is false for flag-style
// options written without '='.
type optValue struct {
	value string
	has   bool
}

// =============================================================================
// INVOCATION CONTEXT
// =============================================================================

// Context carries the state of one command invocation: the scanned
// positional arguments, the scanned options, the session variable
// table and the severities logged so far.
//
// A context is created once per shell and reset between dispatches;
// its containers are cleared, not reallocated, to keep dispatch
// allocation-light. Variables are session state and survive resets.
type Context struct {
	scanner *Scanner
	sink    logring.Sink

	// Command is the scanned (and possibly variable-substituted)
	// command name of the current dispatch.
	Command string

	args    []string
	options *caseMap[optValue]
	vars    *caseMap[string]

	seen     logring.SeveritySet
	errorSet logring.SeveritySet
}

// NewContext creates a context reporting through sink. By default
// both warnings and errors count as dispatch failures; see
// SetStrictErrors.
func NewContext(sink logring.Sink) *Context {
	return &Context{
		sink:     sink,
		options:  newCaseMap[optValue](),
		vars:     newCaseMap[string](),
		errorSet: logring.ErrorClassified,
	}
}

// Reset clears the per-invocation state: arguments, options and the
// severity set. Variables persist.
func (c *Context) Reset() {
	c.Command = ""
	c.args = c.args[:0]
	c.options.clear()
	c.seen = 0
	c.scanner = nil
}

// SetInput wraps line in a fresh scanner and skips leading
// whitespace.
func (c *Context) SetInput(line string) {
	c.scanner = NewScanner(line)
	c.scanner.SkipSpace()
}

// Remainder returns the unscanned rest of the input line verbatim.
// Intercepted builtins read it instead of going through scanning.
func (c *Context) Remainder() string {
	if c.scanner == nil {
		return ""
	}
	return c.scanner.Remainder()
}

// =============================================================================
// LOGGING AND SEVERITY TRACKING
// =============================================================================

// Log reports one message and records its severity.
func (c *Context) Log(text string, severity logring.Severity) {
	c.sink.Append(text, severity)
	c.seen = c.seen.With(severity)
}

// LogInfo reports a message at info severity.
func (c *Context) LogInfo(text string) { c.Log(text, logring.Info) }

// LogWarning reports a message at warning severity.
func (c *Context) LogWarning(text string) { c.Log(text, logring.Warning) }

// LogError reports a message at error severity.
func (c *Context) LogError(text string) { c.Log(text, logring.Error) }

// HasErrors reports whether any severity classified as an error has
// been logged since the last reset.
func (c *Context) HasErrors() bool {
	return c.seen.Intersects(c.errorSet)
}

// SetStrictErrors toggles whether warnings count as dispatch
// failures. The default is to count them.
func (c *Context) SetStrictErrors(strict bool) {
	if strict {
		c.errorSet = logring.StrictErrors
	} else {
		c.errorSet = logring.ErrorClassified
	}
}

// =============================================================================
// SCANNING
// =============================================================================

// ScanCommandName scans and substitutes the command name. It returns
// false on empty input and on a failed substitution; the latter has
// already logged an error.
func (c *Context) ScanCommandName() bool {
	name, ok := c.scanner.ScanName()
	if !ok {
		return false
	}
	name, ok = c.substitute(name)
	if !ok {
		return false
	}
	c.Command = name
	return true
}

// ScanArguments collects string tokens until none scan. Each token is
// variable-substituted before being appended. A failed substitution
// aborts immediately, leaving the arguments collected so far intact
// for diagnostics.
func (c *Context) ScanArguments() {
	for {
		token, ok := c.scanner.ScanString()
		if !ok {
			return
		}
		token, ok = c.substitute(token)
		if !ok {
			return
		}
		c.args = append(c.args, token)
	}
}

// ScanOptions collects options until none scan, substituting each
// present value. A failed substitution aborts immediately; options
// collected before the failure stay committed.
func (c *Context) ScanOptions() {
	for {
		opt, ok := c.scanner.ScanOption()
		if !ok {
			return
		}
		if opt.HasValue {
			value, ok := c.substitute(opt.Value)
			if !ok {
				return
			}
			opt.Value = value
		}
		c.options.set(opt.Name, optValue{value: opt.Value, has: opt.HasValue})
	}
}

// substitute resolves a $name token against the variable table.
// Tokens without the marker pass through unchanged. An unbound name
// logs an error and reports failure, which scanning treats as a hard
// stop.
func (c *Context) substitute(token string) (string, bool) {
	if !strings.HasPrefix(token, VarMarker) {
		return token, true
	}
	name := token[len(VarMarker):]
	value, ok := c.vars.get(name)
	if !ok {
		c.LogError(fmt.Sprintf("No variable named %s", name))
		return "", false
	}
	return value, true
}

// =============================================================================
// VARIABLES
// =============================================================================

// SetVariable binds a session variable. Names are case-insensitive.
func (c *Context) SetVariable(name, value string) {
	c.vars.set(name, value)
}

// Variable looks up a session variable.
func (c *Context) Variable(name string) (string, bool) {
	return c.vars.get(name)
}

// RemoveVariable unbinds a variable, reporting whether it existed.
func (c *Context) RemoveVariable(name string) bool {
	return c.vars.delete(name)
}

// VariableNames returns all bound names in first-insertion order.
func (c *Context) VariableNames() []string {
	return c.vars.names()
}

// EachVariable visits all bindings in first-insertion order.
func (c *Context) EachVariable(fn func(name, value string)) {
	c.vars.each(fn)
}

// =============================================================================
// POSITIONAL ACCESS
// =============================================================================

// Args returns the scanned positional arguments in scan order. The
// slice is owned by the context and only valid until the next reset.
func (c *Context) Args() []string {
	return c.args
}

// ArgCount returns the number of scanned positional arguments.
func (c *Context) ArgCount() int {
	return len(c.args)
}

// OptionCount returns the number of pending (not yet consumed)
// options.
func (c *Context) OptionCount() int {
	return c.options.len()
}

// HasOption reports whether an option is pending, without consuming
// it.
func (c *Context) HasOption(name string) bool {
	_, ok := c.options.get(name)
	return ok
}

// Arg returns the raw argument at index. An out-of-range index logs
// an error and returns the empty string.
func (c *Context) Arg(index int, name string) string {
	if index < 0 || index >= len(c.args) {
		c.LogError(fmt.Sprintf("Missing %s argument '%s'", ordinal(index+1), name))
		return ""
	}
	return c.args[index]
}

// takeOption removes and returns a pending option. Typed accessors
// consume what they look up so EndParsing can flag leftovers.
func (c *Context) takeOption(name string) (optValue, bool) {
	v, ok := c.options.get(name)
	if ok {
		c.options.delete(name)
	}
	return v, ok
}

// EndParsing warns once for every option no typed accessor consumed.
// Handlers that deliberately accept an open option set skip calling
// it.
func (c *Context) EndParsing() {
	c.options.each(func(name string, _ optValue) {
		c.LogWarning(fmt.Sprintf("Unknown argument: %s.", name))
	})
	c.options.clear()
}

// =============================================================================
// TYPED ACCESSORS
// =============================================================================

// ParseArg parses the argument at index with the given parser. An
// out-of-range index logs an error; a parser rejection logs the
// parser's diagnostic. Both still return a value (the type's zero
// value) so handlers can keep reading and report every problem in one
// pass before checking HasErrors.
func ParseArg[T any](c *Context, index int, name string, p Parser[T]) T {
	var zero T
	if index < 0 || index >= len(c.args) {
		c.LogError(fmt.Sprintf("Missing %s argument '%s'", ordinal(index+1), name))
		return zero
	}
	v, err := p.Parse(c.args[index])
	if err != nil {
		c.LogError(err.Error())
	}
	return v
}

// Opt parses a required option. Absence and flag-style use are both
// errors.
func Opt[T any](c *Context, name string, p Parser[T]) T {
	var zero T
	raw, ok := c.takeOption(name)
	if !ok {
		c.LogError(fmt.Sprintf("Missing required option '%s'.", name))
		return zero
	}
	if !raw.has {
		c.LogError(fmt.Sprintf("The option '%s' cannot be used like a flag.", name))
		return zero
	}
	v, err := p.Parse(raw.value)
	if err != nil {
		c.LogError(err.Error())
		return zero
	}
	return v
}

// OptOr parses an optional option: absence yields def silently.
// Flag-style use is still an error, since a value-producing parse was
// requested.
func OptOr[T any](c *Context, name string, def T, p Parser[T]) T {
	raw, ok := c.takeOption(name)
	if !ok {
		return def
	}
	if !raw.has {
		c.LogError(fmt.Sprintf("The option '%s' cannot be used like a flag.", name))
		return def
	}
	v, err := p.Parse(raw.value)
	if err != nil {
		c.LogError(err.Error())
		return def
	}
	return v
}

// Flag reads a boolean option: absent is false, present without a
// value is true, and an explicit value is parsed as a Bool.
func Flag(c *Context, name string) bool {
	return FlagWith(c, name, false, true, Bool)
}

// FlagOr is Flag with configurable absent and present values.
func FlagOr(c *Context, name string, def, flagValue bool) bool {
	return FlagWith(c, name, def, flagValue, Bool)
}

// FlagWith is the fully general flag accessor: absent yields def,
// present without a value yields flagValue, and a present value runs
// through p, falling back to def (with a logged error) on rejection.
func FlagWith(c *Context, name string, def, flagValue bool, p Parser[bool]) bool {
	raw, ok := c.takeOption(name)
	if !ok {
		return def
	}
	if !raw.has {
		return flagValue
	}
	v, err := p.Parse(raw.value)
	if err != nil {
		c.LogError(err.Error())
		return def
	}
	return v
}

// ordinal renders a 1-based position as "1st", "2nd", "3rd", "4th"...
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
