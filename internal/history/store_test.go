package history

import (
	"math/big"
	"testing"
	"time"

	"github.com/agbru/fibpad/internal/validate"
)

// fib returns the n-th Fibonacci number for test fixtures.
func fib(n uint64) *big.Int {
	if n == 0 {
		return big.NewInt(0)
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}

func entryAt(n uint64, at time.Time) Entry {
	return NewEntry(validate.Index(n), fib(n), at)
}

// TestRecordEvictsOldest walks the canonical capacity scenario: recording
// indices 0 through 6 into a store of capacity 5 must leave exactly
// [6,5,4,3,2], with 0 and 1 evicted.
func TestRecordEvictsOldest(t *testing.T) {
	t.Parallel()
	s := NewStore(5)
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for n := uint64(0); n <= 6; n++ {
		s.Record(entryAt(n, base.Add(time.Duration(n)*time.Second)))
	}

	got := s.Entries()
	want := []uint64{6, 5, 4, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("Entries() returned %d entries, want %d", len(got), len(want))
	}
	for i, n := range want {
		if uint64(got[i].Index()) != n {
			t.Errorf("Entries()[%d].Index() = %d, want %d", i, got[i].Index(), n)
		}
		if got[i].ValueString() != fib(n).String() {
			t.Errorf("Entries()[%d] value = %s, want F(%d) = %s", i, got[i].ValueString(), n, fib(n))
		}
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

// TestRecordKeepsDuplicates verifies there is no deduplication: the same
// index recorded twice yields two distinct entries, each with its own
// timestamp.
func TestRecordKeepsDuplicates(t *testing.T) {
	t.Parallel()
	s := NewStore(5)
	first := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	second := first.Add(3 * time.Second)
	s.Record(entryAt(10, first))
	s.Record(entryAt(10, second))

	got := s.Entries()
	if len(got) != 2 {
		t.Fatalf("Entries() returned %d entries, want 2", len(got))
	}
	if got[0].Index() != 10 || got[1].Index() != 10 {
		t.Fatalf("expected both entries for index 10, got %d and %d", got[0].Index(), got[1].Index())
	}
	if !got[0].At().Equal(second) || !got[1].At().Equal(first) {
		t.Errorf("timestamps not preserved per entry: got [%v, %v], want [%v, %v]",
			got[0].At(), got[1].At(), second, first)
	}
}

// TestEntriesOrderOnPartialFill checks most-recent-first ordering before the
// ring wraps.
func TestEntriesOrderOnPartialFill(t *testing.T) {
	t.Parallel()
	s := NewStore(5)
	now := time.Now()
	for _, n := range []uint64{3, 8, 21} {
		s.Record(entryAt(n, now))
	}
	got := s.Entries()
	want := []uint64{21, 8, 3}
	if len(got) != len(want) {
		t.Fatalf("Entries() returned %d entries, want %d", len(got), len(want))
	}
	for i, n := range want {
		if uint64(got[i].Index()) != n {
			t.Errorf("Entries()[%d].Index() = %d, want %d", i, got[i].Index(), n)
		}
	}
}

// TestEntriesSnapshotIsolation makes sure the returned slice is a true
// snapshot: neither reordering it nor mutating values obtained from it can
// disturb the store.
func TestEntriesSnapshotIsolation(t *testing.T) {
	t.Parallel()
	s := NewStore(5)
	now := time.Now()
	s.Record(entryAt(7, now))
	s.Record(entryAt(9, now))

	snapshot := s.Entries()
	snapshot[0], snapshot[1] = snapshot[1], snapshot[0]
	snapshot[0].Value().SetInt64(-1)

	fresh := s.Entries()
	if fresh[0].Index() != 9 || fresh[1].Index() != 7 {
		t.Errorf("store order disturbed by snapshot mutation: got [%d, %d]", fresh[0].Index(), fresh[1].Index())
	}
	if fresh[0].ValueString() != "34" {
		t.Errorf("stored value disturbed by snapshot mutation: got %s, want 34", fresh[0].ValueString())
	}
}

// TestEntryImmutability verifies both copy directions of NewEntry: mutating
// the source after construction and mutating the accessor result must leave
// the entry unchanged.
func TestEntryImmutability(t *testing.T) {
	t.Parallel()
	source := fib(12)
	e := NewEntry(12, source, time.Now())

	source.SetInt64(0)
	if e.ValueString() != "144" {
		t.Errorf("entry tracked source mutation: got %s, want 144", e.ValueString())
	}

	e.Value().SetInt64(0)
	if e.ValueString() != "144" {
		t.Errorf("entry tracked accessor mutation: got %s, want 144", e.ValueString())
	}
}

// TestReplayReturnsIndexUnchanged pins the pre-fill contract: replay hands
// back the index as-is and leaves the store untouched — no lookup, no
// recompute, no mutation.
func TestReplayReturnsIndexUnchanged(t *testing.T) {
	t.Parallel()
	s := NewStore(5)
	s.Record(entryAt(30, time.Now()))

	for _, n := range []validate.Index{0, 30, 45} {
		if got := s.Replay(n); got != n {
			t.Errorf("Replay(%d) = %d, want %d", n, got, n)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Replay mutated the store: Len() = %d, want 1", s.Len())
	}
}

// TestNewStorePanicsOnBadCapacity documents that a non-positive capacity is
// a programming error, not a runtime condition.
func TestNewStorePanicsOnBadCapacity(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewStore(0) should have panicked")
		}
	}()
	_ = NewStore(0)
}

// TestLenAndCap covers the accessors across fill levels.
func TestLenAndCap(t *testing.T) {
	t.Parallel()
	s := NewStore(3)
	if s.Cap() != 3 || s.Len() != 0 {
		t.Fatalf("fresh store: Len=%d Cap=%d, want 0 and 3", s.Len(), s.Cap())
	}
	now := time.Now()
	for n := uint64(0); n < 7; n++ {
		s.Record(entryAt(n, now))
		if s.Len() > s.Cap() {
			t.Fatalf("Len() = %d exceeded Cap() = %d after %d records", s.Len(), s.Cap(), n+1)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d after overfill, want 3", s.Len())
	}
}
