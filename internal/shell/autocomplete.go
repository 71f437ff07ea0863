// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// AUTOCOMPLETE
// =============================================================================

// Autocomplete produces prefix completions for a partially typed line
// and cycles through them. It queries the shell's command table, or
// its variable table when the partial word references a variable,
// independently of normal dispatch.
//
// The engine has two states: idle, and matching once SetInput has
// built a candidate list.
type Autocomplete struct {
	shell *Shell

	// fixedPrefix is everything up to and including the last
	// whitespace of the input; candidates replace only the partial
	// word after it.
	fixedPrefix string
	partialWord string
	candidates  []string
	index       int
	matching    bool
}

// NewAutocomplete creates an idle engine backed by the given shell.
func NewAutocomplete(s *Shell) *Autocomplete {
	return &Autocomplete{shell: s}
}

// SetInput rebuilds the candidate list for text and enters the
// matching state with the first candidate selected.
//
// Candidates come from variable names when the partial word starts
// with the variable marker or is empty, and from command names
// otherwise. They are sorted by ascending length (equal lengths keep
// discovery order), and the partial word itself is appended last
// when absent so cycling can always return to the original text and
// the list is never empty.
func (a *Autocomplete) SetInput(text string) {
	cut := strings.LastIndexFunc(text, unicode.IsSpace)
	a.fixedPrefix = text[:cut+1]
	a.partialWord = text[cut+1:]
	a.candidates = a.collect()

	sort.SliceStable(a.candidates, func(i, j int) bool {
		return len(a.candidates[i]) < len(a.candidates[j])
	})

	if !a.contains(a.partialWord) {
		a.candidates = append(a.candidates, a.partialWord)
	}

	a.index = 0
	a.matching = true
}

// collect gathers the raw candidate words for the current partial.
func (a *Autocomplete) collect() []string {
	partial := a.partialWord

	if partial == "" || strings.HasPrefix(partial, VarMarker) {
		// Variable names; candidates keep the marker so the
		// completed line still references the variable.
		want := normalize(strings.TrimPrefix(partial, VarMarker))
		var out []string
		for _, name := range a.shell.Context().VariableNames() {
			if strings.HasPrefix(normalize(name), want) {
				out = append(out, VarMarker+name)
			}
		}
		return out
	}

	want := normalize(partial)
	var out []string
	for _, name := range a.shell.Registry().Names() {
		if strings.HasPrefix(normalize(name), want) {
			out = append(out, name)
		}
	}
	return out
}

func (a *Autocomplete) contains(word string) bool {
	want := normalize(word)
	for _, c := range a.candidates {
		if normalize(c) == want {
			return true
		}
	}
	return false
}

// Matching reports whether the engine holds a candidate list.
func (a *Autocomplete) Matching() bool {
	return a.matching
}

// Candidates returns the current candidate words. Valid only while
// matching.
func (a *Autocomplete) Candidates() []string {
	return a.candidates
}

// Current returns the full line for the selected candidate: the
// fixed prefix plus the candidate word.
func (a *Autocomplete) Current() string {
	if !a.matching || len(a.candidates) == 0 {
		return a.fixedPrefix + a.partialWord
	}
	return a.fixedPrefix + a.candidates[a.index]
}

// Move cycles the selection by direction (+1 forward, -1 backward),
// wrapping at both ends.
func (a *Autocomplete) Move(direction int) {
	if !a.matching || len(a.candidates) == 0 {
		return
	}
	n := len(a.candidates)
	a.index = ((a.index+direction)%n + n) % n
}

// MoveTo selects the candidate at index i directly.
func (a *Autocomplete) MoveTo(i int) {
	if !a.matching || i < 0 || i >= len(a.candidates) {
		return
	}
	a.index = i
}

// Index returns the selected candidate position.
func (a *Autocomplete) Index() int {
	return a.index
}

// Reset returns the engine to the idle state. Other fields are
// overwritten by the next SetInput rather than cleared eagerly.
func (a *Autocomplete) Reset() {
	a.matching = false
}
