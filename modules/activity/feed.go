// Package activity keeps a bounded feed of marketplace events.
package activity

import (
	"sync"
	"time"

	"github.com/example/condo-marketplace/domain/ident"
)

// DefaultCapacity is the number of entries kept before the oldest are dropped.
const DefaultCapacity = 200

// Entry is one line of the activity feed.
type Entry struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Feed is a fixed-size, newest-first log of entries.
type Feed struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	newID    ident.Generator
}

// NewFeed creates a feed holding at most capacity entries.
func NewFeed(capacity int, newID ident.Generator) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		newID:    newID,
	}
}

// Append records an entry and returns it.
func (f *Feed) Append(kind, subject, message string, at time.Time) Entry {
	e := Entry{
		ID:      f.newID(),
		Kind:    kind,
		Subject: subject,
		Message: message,
		At:      at,
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) == f.capacity {
		copy(f.entries, f.entries[1:])
		f.entries = f.entries[:len(f.entries)-1]
	}
	f.entries = append(f.entries, e)
	return e
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (f *Feed) Recent(limit int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := len(f.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, f.entries[i])
	}
	return out
}

// Len returns the number of entries held.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}
