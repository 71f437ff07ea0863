// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell implements the embedded command shell engine.
package shell

import (
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// OPTION TOKEN
// =============================================================================

// Option is a scanned option token. HasValue distinguishes `-name=v`
// from the flag form `-name`.
type Option struct {
	Name     string
	Value    string
	HasValue bool
}

// =============================================================================
// SCANNER
// =============================================================================

// Scanner is a cursor over an immutable input line. Every scan
// operation is atomic: on success the cursor sits past the consumed
// text, on failure it is rewound to exactly where it was before the
// attempt. A scanner is created fresh per dispatch and discarded.
type Scanner struct {
	src string
	cur int
}

// NewScanner creates a scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Pos returns the current cursor position in bytes.
func (s *Scanner) Pos() int {
	return s.cur
}

// AtEnd reports whether the whole input has been consumed.
func (s *Scanner) AtEnd() bool {
	return s.cur >= len(s.src)
}

// Remainder returns the unscanned rest of the input verbatim.
func (s *Scanner) Remainder() string {
	return s.src[s.cur:]
}

// mark captures a checkpoint for rewind. Every multi-character scan
// wraps its work in a mark/rewind pair instead of ad hoc cursor
// bookkeeping.
func (s *Scanner) mark() int {
	return s.cur
}

// rewind restores the cursor to a previous checkpoint.
func (s *Scanner) rewind(mark int) {
	s.cur = mark
}

// peek decodes the rune at the cursor without consuming it.
func (s *Scanner) peek() (rune, int) {
	if s.AtEnd() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.src[s.cur:])
}

// =============================================================================
// SCAN OPERATIONS
// =============================================================================

// SkipSpace advances past whitespace. It has no failure mode.
func (s *Scanner) SkipSpace() {
	for {
		r, size := s.peek()
		if size == 0 || !unicode.IsSpace(r) {
			return
		}
		s.cur += size
	}
}

// ScanName scans a command name: the maximal run of non-whitespace
// characters. Fails without moving the cursor if the input is
// exhausted.
func (s *Scanner) ScanName() (string, bool) {
	return s.ScanBare()
}

// ScanBare scans an unquoted token: the maximal run of non-whitespace
// characters after leading whitespace. Fails with the cursor
// unchanged if the run is empty.
func (s *Scanner) ScanBare() (string, bool) {
	m := s.mark()
	s.SkipSpace()

	start := s.cur
	for {
		r, size := s.peek()
		if size == 0 || unicode.IsSpace(r) {
			break
		}
		s.cur += size
	}
	if s.cur == start {
		s.rewind(m)
		return "", false
	}
	return s.src[start:s.cur], true
}

// ScanString scans one argument-position token: a quoted string or a
// bare token.
//
// Three special cases:
//   - an unterminated quote fails with a full rewind to before the
//     opening quote
//   - `-` followed by a letter is option territory, not a string;
//     the scan fails without moving so the caller can try ScanOption
//   - `-` followed by anything else (a negative number, say) is
//     ordinary token text
func (s *Scanner) ScanString() (string, bool) {
	m := s.mark()
	s.SkipSpace()

	r, size := s.peek()
	if size == 0 {
		s.rewind(m)
		return "", false
	}

	if r == '"' {
		s.cur += size
		start := s.cur
		for {
			q, qsize := s.peek()
			if qsize == 0 {
				// Unterminated quote.
				s.rewind(m)
				return "", false
			}
			if q == '"' {
				text := s.src[start:s.cur]
				s.cur += qsize
				return text, true
			}
			s.cur += qsize
		}
	}

	if r == '-' {
		next, nsize := utf8.DecodeRuneInString(s.src[s.cur+size:])
		if nsize > 0 && unicode.IsLetter(next) {
			s.rewind(m)
			return "", false
		}
	}

	s.rewind(m)
	return s.ScanBare()
}

// ScanOption scans `-name` or `-name=value`. The attempt is atomic
// across the whole option: if the value after `=` fails to scan, the
// cursor is rewound to before the leading `-`.
func (s *Scanner) ScanOption() (Option, bool) {
	m := s.mark()
	s.SkipSpace()

	r, size := s.peek()
	if size == 0 || r != '-' {
		s.rewind(m)
		return Option{}, false
	}
	s.cur += size

	// Identifier run up to whitespace or '='.
	start := s.cur
	for {
		r, size = s.peek()
		if size == 0 || unicode.IsSpace(r) || r == '=' {
			break
		}
		s.cur += size
	}
	name := s.src[start:s.cur]
	if name == "" {
		s.rewind(m)
		return Option{}, false
	}

	if r != '=' {
		// Flag-style option.
		return Option{Name: name}, true
	}
	s.cur += size
	s.SkipSpace()

	value, ok := s.ScanString()
	if !ok {
		s.rewind(m)
		return Option{}, false
	}
	return Option{Name: name, Value: value, HasValue: true}, true
}
