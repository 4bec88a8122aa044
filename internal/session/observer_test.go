package session

import (
	"sync"
	"testing"
)

// ─────────────────────────────────────────────────────────────────────────────
// EventSubject Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestNewEventSubject verifies subject construction.
func TestNewEventSubject(t *testing.T) {
	t.Parallel()

	subject := NewEventSubject()
	if subject == nil {
		t.Fatal("NewEventSubject returned nil")
	}
	if subject.ObserverCount() != 0 {
		t.Errorf("new subject should have 0 observers, got %d", subject.ObserverCount())
	}
}

// TestEventSubject_Register verifies observer registration.
func TestEventSubject_Register(t *testing.T) {
	t.Parallel()

	subject := NewEventSubject()

	// Register nil should be no-op
	subject.Register(nil)
	if subject.ObserverCount() != 0 {
		t.Errorf("registering nil should not add observer, got %d", subject.ObserverCount())
	}

	// Register valid observer
	subject.Register(NewNoOpObserver())
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer, got %d", subject.ObserverCount())
	}

	// Register second observer
	subject.Register(NewNoOpObserver())
	if subject.ObserverCount() != 2 {
		t.Errorf("expected 2 observers, got %d", subject.ObserverCount())
	}
}

// TestEventSubject_Unregister verifies observer removal.
func TestEventSubject_Unregister(t *testing.T) {
	t.Parallel()

	subject := NewEventSubject()
	// Use recordingObserver instead of NoOpObserver because empty structs
	// may share the same address, breaking pointer comparison
	observer1 := &recordingObserver{}
	observer2 := &recordingObserver{}

	subject.Register(observer1)
	subject.Register(observer2)

	if subject.ObserverCount() != 2 {
		t.Fatalf("expected 2 observers, got %d", subject.ObserverCount())
	}

	// Unregister nil should be no-op
	subject.Unregister(nil)
	if subject.ObserverCount() != 2 {
		t.Errorf("unregistering nil should not remove observer, got %d", subject.ObserverCount())
	}

	// Unregister first observer
	subject.Unregister(observer1)
	if subject.ObserverCount() != 1 {
		t.Errorf("expected 1 observer after unregister, got %d", subject.ObserverCount())
	}

	// Unregister non-existent observer should be no-op
	subject.Unregister(observer1)
	if subject.ObserverCount() != 1 {
		t.Errorf("unregistering non-existent should not change count, got %d", subject.ObserverCount())
	}

	// Unregister remaining observer
	subject.Unregister(observer2)
	if subject.ObserverCount() != 0 {
		t.Errorf("expected 0 observers after unregister, got %d", subject.ObserverCount())
	}
}

// TestEventSubject_Notify verifies notification delivery.
func TestEventSubject_Notify(t *testing.T) {
	t.Parallel()

	subject := NewEventSubject()
	rec1 := &recordingObserver{}
	rec2 := &recordingObserver{}

	subject.Register(rec1)
	subject.Register(rec2)

	subject.Notify(Event{Kind: EventComputed, Index: 10, Value: "55"})
	subject.Notify(Event{Kind: EventHistoryChanged})

	// Verify both observers received events
	if len(rec1.kinds()) != 2 {
		t.Errorf("rec1 expected 2 events, got %d", len(rec1.kinds()))
	}
	if len(rec2.kinds()) != 2 {
		t.Errorf("rec2 expected 2 events, got %d", len(rec2.kinds()))
	}

	// Verify event payloads
	events := rec1.snapshot()
	if events[0].Index != 10 || events[0].Value != "55" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Kind != EventHistoryChanged {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

// TestEventSubject_ConcurrentAccess verifies thread safety.
func TestEventSubject_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	subject := NewEventSubject()
	var wg sync.WaitGroup

	// Concurrent registration
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject.Register(NewNoOpObserver())
		}()
	}

	// Concurrent notification
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			subject.Notify(Event{Kind: EventComputed, Index: uint64(idx)})
		}(i)
	}

	wg.Wait()

	// Should have 10 observers registered
	if subject.ObserverCount() != 10 {
		t.Errorf("expected 10 observers, got %d", subject.ObserverCount())
	}
}

// TestEventKindString verifies stable label names.
func TestEventKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind EventKind
		want string
	}{
		{EventComputed, "computed"},
		{EventRejected, "rejected"},
		{EventHistoryChanged, "history_changed"},
		{EventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EventKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
