// Package history implements the bounded, most-recent-first log of completed
// computations kept for one interactive session.
//
// The store is a fixed-capacity ring: recording is O(1), and once the ring is
// full each new entry overwrites the oldest one. It is deliberately not a
// cache — there is no deduplication by index and no lookup of stored values;
// replay only hands the caller back an index to feed through the full
// validation and computation pipeline again.
//
// The store has no locking of its own. It is owned and mutated by a single
// session controller; transports that share a session across goroutines must
// serialize access at that level.
package history

import (
	"math/big"
	"time"

	"github.com/agbru/fibpad/internal/validate"
)

// Entry is one completed computation: the validated index, the exact value,
// and the moment it was recorded. Entries are immutable once created; the
// constructor and accessors copy the big.Int so no caller can mutate a
// recorded value after the fact.
type Entry struct {
	index validate.Index
	value *big.Int
	at    time.Time
}

// NewEntry creates an immutable history entry, taking a private copy of
// value.
//
// Parameters:
//   - index: The validated index that was computed.
//   - value: The exact computed value (copied, never retained).
//   - at: The recording timestamp.
//
// Returns:
//   - Entry: The immutable entry.
func NewEntry(index validate.Index, value *big.Int, at time.Time) Entry {
	return Entry{
		index: index,
		value: new(big.Int).Set(value),
		at:    at,
	}
}

// Index returns the validated index this entry was computed for.
func (e Entry) Index() validate.Index { return e.index }

// Value returns a copy of the exact computed value. The copy keeps the
// stored value immutable even if the caller mutates the result.
func (e Entry) Value() *big.Int { return new(big.Int).Set(e.value) }

// ValueString returns the exact value in decimal form without copying the
// underlying integer.
func (e Entry) ValueString() string { return e.value.String() }

// At returns the recording timestamp.
func (e Entry) At() time.Time { return e.at }

// Store retains the last K entries in most-recent-first order. The zero
// value is not usable; construct with NewStore.
type Store struct {
	entries []Entry
	head    int
	size    int
}

// NewStore creates a Store holding at most capacity entries. It panics when
// capacity is not positive, since a history that cannot hold anything is a
// configuration mistake the caller should have rejected.
//
// Parameters:
//   - capacity: The maximum number of retained entries (K).
//
// Returns:
//   - *Store: An empty store.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		panic("history: capacity must be positive")
	}
	return &Store{entries: make([]Entry, capacity)}
}

// Record inserts e at the most-recent position. When the store is at
// capacity, the oldest entry is discarded in the same step; the operation is
// O(1) regardless of fill level. Entries are never deduplicated: recording
// the same index twice keeps two distinct entries with their own timestamps.
//
// Parameters:
//   - e: The entry to record.
func (s *Store) Record(e Entry) {
	s.head = (s.head + 1) % cap(s.entries)
	s.entries[s.head] = e
	if s.size < cap(s.entries) {
		s.size++
	}
}

// Entries returns a snapshot of the log, most-recent-first. The returned
// slice is owned by the caller; mutating it never affects the store.
//
// Returns:
//   - []Entry: At most Cap() entries, newest at position 0.
func (s *Store) Entries() []Entry {
	max := cap(s.entries)
	snapshot := make([]Entry, s.size)
	for i := 0; i < s.size; i++ {
		idx := (s.head - i) % max
		if idx < 0 {
			idx += max
		}
		snapshot[i] = s.entries[idx]
	}
	return snapshot
}

// Replay returns n unchanged. It exists as an explicit pre-fill affordance:
// the caller takes the returned index and runs it through the full
// validation and computation pipeline again. Replay never recomputes and
// never looks up a previously stored value — the store is a log, not a
// cache.
//
// Parameters:
//   - n: The index the user picked to replay.
//
// Returns:
//   - validate.Index: The same index, ready to prime the next cycle.
func (s *Store) Replay(n validate.Index) validate.Index {
	return n
}

// Len returns the number of retained entries, never above Cap.
func (s *Store) Len() int { return s.size }

// Cap returns the configured capacity K.
func (s *Store) Cap() int { return cap(s.entries) }
