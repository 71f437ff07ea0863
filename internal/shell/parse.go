// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PARSE ERROR
// =============================================================================

// ParseError reports a raw token a parser could not convert. It is a
// value, never a panic: the parser framework communicates failure
// exclusively through returned errors.
type ParseError struct {
	Type string // display name of the target type
	Raw  string // the rejected input
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Expected input compatible with type %s, got '%s'.", e.Type, e.Raw)
}

// =============================================================================
// PARSER
// =============================================================================

// Parser converts a raw token into a typed value. Parsers are named
// so diagnostics and help text can refer to them; several parsers may
// share a target type under different names (Bool and OnOff both
// produce bool), and the caller selects by passing the parser value,
// which directs the type.
type Parser[T any] struct {
	Name string
	Fn   func(raw string) (T, error)
}

// Parse applies the parser to raw.
func (p Parser[T]) Parse(raw string) (T, error) {
	return p.Fn(raw)
}

// =============================================================================
// BUILT-IN PARSERS
// =============================================================================

// String is the identity parser.
var String = Parser[string]{
	Name: "string",
	Fn: func(raw string) (string, error) {
		return raw, nil
	},
}

// Bool accepts case-insensitive "true" and "false".
var Bool = Parser[bool]{
	Name: "bool",
	Fn: func(raw string) (bool, error) {
		switch strings.ToLower(raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, &ParseError{Type: "bool", Raw: raw}
	},
}

// OnOff accepts case-insensitive "on" and "off". It exists so flags
// can use a switch-like vocabulary instead of true/false.
var OnOff = Parser[bool]{
	Name: "onoff",
	Fn: func(raw string) (bool, error) {
		switch strings.ToLower(raw) {
		case "on":
			return true, nil
		case "off":
			return false, nil
		}
		return false, &ParseError{Type: "bool", Raw: raw}
	},
}

// Int parses a decimal integer.
var Int = Parser[int]{
	Name: "int",
	Fn: func(raw string) (int, error) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, &ParseError{Type: "int", Raw: raw}
		}
		return v, nil
	},
}

// Float parses a floating point number.
var Float = Parser[float64]{
	Name: "float",
	Fn: func(raw string) (float64, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &ParseError{Type: "float", Raw: raw}
		}
		return v, nil
	},
}

// Duration parses a Go duration string such as "1.5s" or "300ms".
var Duration = Parser[time.Duration]{
	Name: "duration",
	Fn: func(raw string) (time.Duration, error) {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return 0, &ParseError{Type: "duration", Raw: raw}
		}
		return v, nil
	},
}
