// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logring provides the terminal's message store.
package logring

import "fmt"

// =============================================================================
// SINK
// =============================================================================

// Sink is the write side of a message store. The shell only ever
// appends; reading is a host concern.
type Sink interface {
	// Append stores one message with its severity.
	Append(text string, severity Severity)
}

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one stored message.
type Entry struct {
	Text     string
	Severity Severity
}

// =============================================================================
// RING BUFFER
// =============================================================================

// Buffer is a fixed-capacity ring of entries. Once full, each append
// evicts the oldest entry. Logical index 0 is always the oldest entry
// still retained, regardless of physical wraparound.
//
// Buffer is not safe for concurrent use; the shell is single-threaded
// by design and hosts driving it from multiple goroutines must
// serialize access themselves.
type Buffer struct {
	entries []Entry
	write   int // physical slot of the newest entry
	count   int // logical length, saturates at capacity

	total uint64 // appends over the buffer's lifetime, never decremented
}

// NewBuffer creates a ring buffer holding at most capacity entries.
// Capacity must be positive.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		panic(fmt.Sprintf("logring: invalid capacity %d", capacity))
	}
	return &Buffer{
		entries: make([]Entry, capacity),
		write:   capacity - 1,
	}
}

// Append stores one message, evicting the oldest entry if the buffer
// is full. Implements Sink.
func (b *Buffer) Append(text string, severity Severity) {
	b.write = (b.write + 1) % len(b.entries)
	b.entries[b.write] = Entry{Text: text, Severity: severity}
	if b.count < len(b.entries) {
		b.count++
	}
	b.total++
}

// Len returns the number of entries currently retained.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns the buffer's fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.entries)
}

// Total returns the number of appends over the buffer's lifetime,
// including entries that have since been evicted. Hosts use it to
// detect output produced by the latest dispatch.
func (b *Buffer) Total() uint64 {
	return b.total
}

// At returns the entry at logical index i, where 0 is the oldest
// retained entry. Indexing outside [0, Len()) is a programmer error
// and panics.
func (b *Buffer) At(i int) Entry {
	if i < 0 || i >= b.count {
		panic(fmt.Sprintf("logring: index %d out of range [0, %d)", i, b.count))
	}
	return b.entries[b.physical(i)]
}

// Tail returns the newest n entries, oldest first. If fewer than n
// are retained, all of them are returned.
func (b *Buffer) Tail(n int) []Entry {
	if n > b.count {
		n = b.count
	}
	out := make([]Entry, 0, n)
	for i := b.count - n; i < b.count; i++ {
		out = append(out, b.At(i))
	}
	return out
}

// Each calls fn for every retained entry, oldest first.
func (b *Buffer) Each(fn func(Entry)) {
	for i := 0; i < b.count; i++ {
		fn(b.entries[b.physical(i)])
	}
}

// Clear drops every retained entry. The lifetime total is preserved.
func (b *Buffer) Clear() {
	b.count = 0
	b.write = len(b.entries) - 1
}

// physical maps a logical index (0 = oldest) to a slot in entries.
func (b *Buffer) physical(i int) int {
	c := len(b.entries)
	return ((b.write-b.count+1+i)%c + c) % c
}
