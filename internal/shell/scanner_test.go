// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import "testing"

// =============================================================================
// BARE AND QUOTED TOKEN TESTS
// =============================================================================

func TestScanBare(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"hello", "hello", true},
		{"  hello  ", "hello", true},
		{"one two", "one", true},
		{"", "", false},
		{"   ", "", false},
		{"-5", "-5", true},
	}

	for _, tc := range tests {
		got, ok := NewScanner(tc.input).ScanBare()
		if got != tc.want || ok != tc.ok {
			t.Errorf("ScanBare(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestScanStringQuoted(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{`"a b"`, "a b", true},
		{`  "a b"  `, "a b", true},
		{`""`, "", true},
		{`"unterminated`, "", false},
		{`plain`, "plain", true},
		{`-5`, "-5", true},    // minus not followed by a letter is token text
		{`-flag`, "", false},  // option territory
		{`--`, "--", true},    // second '-' is not a letter
	}

	for _, tc := range tests {
		got, ok := NewScanner(tc.input).ScanString()
		if got != tc.want || ok != tc.ok {
			t.Errorf("ScanString(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestScanStringRewindOnFailure(t *testing.T) {
	s := NewScanner(`  "unterminated`)
	if _, ok := s.ScanString(); ok {
		t.Fatal("unterminated quote should fail")
	}
	if s.Pos() != 0 {
		t.Errorf("cursor = %d after failed scan, want 0", s.Pos())
	}
}

func TestScanStringQuotesStripped(t *testing.T) {
	s := NewScanner(`"a b" rest`)
	got, ok := s.ScanString()
	if !ok || got != "a b" {
		t.Fatalf("ScanString = (%q, %v), want (\"a b\", true)", got, ok)
	}
	if rest, ok := s.ScanBare(); !ok || rest != "rest" {
		t.Errorf("cursor did not advance past the closing quote: next token %q", rest)
	}
}

// =============================================================================
// OPTION TESTS
// =============================================================================

func TestScanOption(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantVal  string
		hasVal   bool
		ok       bool
	}{
		{"-cc=5", "cc", "5", true, true},
		{"-flag", "flag", "", false, true},
		{`-msg="a b"`, "msg", "a b", true, true},
		{"-cc= 5", "cc", "5", true, true}, // whitespace after '=' is skipped
		{"plain", "", "", false, false},
		{"", "", "", false, false},
		{"-", "", "", false, false},
		{"-cc=", "", "", false, false}, // missing value fails the whole option
	}

	for _, tc := range tests {
		opt, ok := NewScanner(tc.input).ScanOption()
		if ok != tc.ok {
			t.Errorf("ScanOption(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if opt.Name != tc.wantName || opt.Value != tc.wantVal || opt.HasValue != tc.hasVal {
			t.Errorf("ScanOption(%q) = %+v, want {%q %q %v}", tc.input, opt, tc.wantName, tc.wantVal, tc.hasVal)
		}
	}
}

func TestScanOptionAtomicRewind(t *testing.T) {
	// The value fails to scan; the cursor must return to before the
	// leading '-', not just to before the value.
	s := NewScanner("-cc=")
	if _, ok := s.ScanOption(); ok {
		t.Fatal("option with missing value should fail")
	}
	if s.Pos() != 0 {
		t.Errorf("cursor = %d after failed option, want 0", s.Pos())
	}

	s = NewScanner(`  -cc="unterminated`)
	if _, ok := s.ScanOption(); ok {
		t.Fatal("option with unterminated value should fail")
	}
	if s.Pos() != 0 {
		t.Errorf("cursor = %d after failed option, want 0", s.Pos())
	}
}

func TestScanOptionStopsAtWhitespace(t *testing.T) {
	s := NewScanner("-verbose next")
	opt, ok := s.ScanOption()
	if !ok || opt.Name != "verbose" || opt.HasValue {
		t.Fatalf("ScanOption = (%+v, %v)", opt, ok)
	}
	if next, ok := s.ScanBare(); !ok || next != "next" {
		t.Errorf("next token = %q, want \"next\"", next)
	}
}

// =============================================================================
// CURSOR AND REMAINDER TESTS
// =============================================================================

func TestScanNameThenRemainder(t *testing.T) {
	s := NewScanner(`echo  -x="not an option" $v`)
	name, ok := s.ScanName()
	if !ok || name != "echo" {
		t.Fatalf("ScanName = (%q, %v)", name, ok)
	}
	if got := s.Remainder(); got != `  -x="not an option" $v` {
		t.Errorf("Remainder = %q", got)
	}
}

func TestSkipSpaceAtEnd(t *testing.T) {
	s := NewScanner("   ")
	s.SkipSpace()
	if !s.AtEnd() {
		t.Errorf("scanner should be at end after skipping trailing space")
	}
	if _, ok := s.ScanName(); ok {
		t.Errorf("ScanName at end should fail")
	}
}
