// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import (
	"reflect"
	"testing"
)

func newCompletionShell(t *testing.T) *Shell {
	t.Helper()
	sh := New(Options{LogCapacity: 16})
	sh.Registry().Register(&Command{Name: "hello", Help: "greet", Handler: func(*Context) {}})
	// "help" is already present as a builtin.
	return sh
}

// =============================================================================
// CANDIDATE CONSTRUCTION TESTS
// =============================================================================

func TestAutocompleteCommands(t *testing.T) {
	sh := newCompletionShell(t)
	ac := NewAutocomplete(sh)

	ac.SetInput("he")

	// Ascending length: help (4) before hello (5); the partial itself
	// is appended last because no command is literally "he".
	want := []string{"help", "hello", "he"}
	if !reflect.DeepEqual(ac.Candidates(), want) {
		t.Fatalf("Candidates() = %v, want %v", ac.Candidates(), want)
	}
	if ac.Current() != "help" {
		t.Errorf("Current() = %q, want \"help\"", ac.Current())
	}
}

func TestAutocompleteCyclesBackToStart(t *testing.T) {
	sh := newCompletionShell(t)
	ac := NewAutocomplete(sh)
	ac.SetInput("he")

	first := ac.Current()
	ac.Move(1)
	ac.Move(1)
	ac.Move(1)
	if ac.Current() != first {
		t.Errorf("three forward moves over three candidates should return to %q, got %q", first, ac.Current())
	}

	ac.Move(-1)
	if ac.Current() != ac.fixedPrefix+"he" {
		t.Errorf("one backward move should land on the literal partial, got %q", ac.Current())
	}
}

func TestAutocompleteExactMatchNotDuplicated(t *testing.T) {
	sh := newCompletionShell(t)
	ac := NewAutocomplete(sh)

	ac.SetInput("help")

	// "help" is an exact command, so the literal partial is not
	// appended a second time.
	want := []string{"help"}
	if !reflect.DeepEqual(ac.Candidates(), want) {
		t.Errorf("Candidates() = %v, want %v", ac.Candidates(), want)
	}
}

func TestAutocompletePreservesFixedPrefix(t *testing.T) {
	sh := newCompletionShell(t)
	ac := NewAutocomplete(sh)

	ac.SetInput("set-var greeting he")

	if ac.Current() != "set-var greeting help" {
		t.Errorf("Current() = %q", ac.Current())
	}
}

func TestAutocompleteNoMatchFallsBackToPartial(t *testing.T) {
	sh := newCompletionShell(t)
	ac := NewAutocomplete(sh)

	ac.SetInput("zzz")

	// The candidate list is never empty: the partial itself remains.
	if got := ac.Candidates(); len(got) != 1 || got[0] != "zzz" {
		t.Errorf("Candidates() = %v", got)
	}
	if ac.Current() != "zzz" {
		t.Errorf("Current() = %q", ac.Current())
	}
}

func TestAutocompleteCaseInsensitive(t *testing.T) {
	sh := newCompletionShell(t)
	ac := NewAutocomplete(sh)

	ac.SetInput("HE")

	got := ac.Candidates()
	if len(got) != 3 || got[0] != "help" || got[1] != "hello" {
		t.Errorf("Candidates() = %v", got)
	}
}

// =============================================================================
// VARIABLE COMPLETION TESTS
// =============================================================================

func TestAutocompleteVariables(t *testing.T) {
	sh := newCompletionShell(t)
	sh.Context().SetVariable("world", "earth")
	sh.Context().SetVariable("word", "w")

	ac := NewAutocomplete(sh)
	ac.SetInput("echo $wor")

	// Candidates keep the marker; ascending length puts $word first.
	want := []string{"$word", "$world", "$wor"}
	if !reflect.DeepEqual(ac.Candidates(), want) {
		t.Fatalf("Candidates() = %v, want %v", ac.Candidates(), want)
	}
	if ac.Current() != "echo $word" {
		t.Errorf("Current() = %q", ac.Current())
	}
}

func TestAutocompleteEmptyPartialOffersVariables(t *testing.T) {
	sh := newCompletionShell(t)
	sh.Context().SetVariable("alpha", "1")
	sh.Context().SetVariable("beta", "2")

	ac := NewAutocomplete(sh)
	ac.SetInput("echo ")

	got := ac.Candidates()
	// All variables sorted by length, then the empty partial appended
	// as the literal fallback.
	want := []string{"$beta", "$alpha", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

// =============================================================================
// STATE MACHINE TESTS
// =============================================================================

func TestAutocompleteMoveToAndReset(t *testing.T) {
	sh := newCompletionShell(t)
	ac := NewAutocomplete(sh)

	if ac.Matching() {
		t.Fatal("engine should start idle")
	}

	ac.SetInput("he")
	if !ac.Matching() {
		t.Fatal("SetInput should enter the matching state")
	}

	ac.MoveTo(1)
	if ac.Current() != "hello" {
		t.Errorf("MoveTo(1) landed on %q", ac.Current())
	}

	ac.MoveTo(99) // out of range, ignored
	if ac.Index() != 1 {
		t.Errorf("out-of-range MoveTo should be ignored")
	}

	ac.Reset()
	if ac.Matching() {
		t.Errorf("Reset should return to idle")
	}
	ac.Move(1) // no-op while idle
}
