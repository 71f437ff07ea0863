// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import "golang.org/x/text/cases"

// normalize canonicalizes a name for case-insensitive comparison.
// Every command, option and variable name goes through this one
// function; no map in the package compares keys any other way.
func normalize(s string) string {
	return cases.Fold().String(s)
}

// =============================================================================
// CASE-INSENSITIVE ORDERED MAP
// =============================================================================

// caseMap is a thin map wrapper that case-folds every key on every
// operation and remembers first-insertion order. Writing to an
// existing key overwrites the value but keeps the key's position and
// original spelling, so diagnostics can echo names the way the user
// typed them.
type caseMap[V any] struct {
	order   []string // normalized keys, first-insertion order
	values  map[string]V
	display map[string]string // normalized key -> original spelling
}

func newCaseMap[V any]() *caseMap[V] {
	return &caseMap[V]{
		values:  make(map[string]V),
		display: make(map[string]string),
	}
}

func (m *caseMap[V]) get(name string) (V, bool) {
	v, ok := m.values[normalize(name)]
	return v, ok
}

func (m *caseMap[V]) set(name string, value V) {
	key := normalize(name)
	if _, exists := m.values[key]; !exists {
		m.order = append(m.order, key)
		m.display[key] = name
	}
	m.values[key] = value
}

func (m *caseMap[V]) delete(name string) bool {
	key := normalize(name)
	if _, exists := m.values[key]; !exists {
		return false
	}
	delete(m.values, key)
	delete(m.display, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func (m *caseMap[V]) len() int {
	return len(m.values)
}

// each visits entries in first-insertion order with their original
// spelling.
func (m *caseMap[V]) each(fn func(name string, value V)) {
	for _, key := range m.order {
		fn(m.display[key], m.values[key])
	}
}

// names returns the original spellings in first-insertion order.
func (m *caseMap[V]) names() []string {
	out := make([]string, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.display[key])
	}
	return out
}

func (m *caseMap[V]) clear() {
	m.order = m.order[:0]
	for k := range m.values {
		delete(m.values, k)
	}
	for k := range m.display {
		delete(m.display, k)
	}
}
