// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logring provides the terminal's message store.
package logring

// =============================================================================
// SEVERITY
// =============================================================================

// Severity classifies a logged message.
type Severity uint8

const (
	// Info is normal command output.
	Info Severity = iota

	// Warning flags suspicious but non-fatal conditions, such as an
	// option no handler ever looked at.
	Warning

	// Error flags conditions that abort dispatch.
	Error
)

// String returns the display name of the severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// SEVERITY SET
// =============================================================================

// SeveritySet is a set of severities. The zero value is the empty set.
type SeveritySet uint8

// SetOf builds a set from the given severities.
func SetOf(severities ...Severity) SeveritySet {
	var set SeveritySet
	for _, s := range severities {
		set = set.With(s)
	}
	return set
}

// With returns the set extended by s.
func (set SeveritySet) With(s Severity) SeveritySet {
	return set | 1<<s
}

// Union returns the union of both sets.
func (set SeveritySet) Union(other SeveritySet) SeveritySet {
	return set | other
}

// Has reports whether s is in the set.
func (set SeveritySet) Has(s Severity) bool {
	return set&(1<<s) != 0
}

// Intersects reports whether the two sets share any severity.
func (set SeveritySet) Intersects(other SeveritySet) bool {
	return set&other != 0
}

// IsEmpty reports whether the set contains no severities.
func (set SeveritySet) IsEmpty() bool {
	return set == 0
}

// ErrorClassified is the default set of severities that count as
// errors when deciding whether a dispatch failed. Warnings are
// included; use StrictErrors to count only hard errors.
var ErrorClassified = SetOf(Warning, Error)

// StrictErrors counts only hard errors as failures.
var StrictErrors = SetOf(Error)
