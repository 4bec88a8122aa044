package session

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/fibpad/internal/validate"
)

// ─────────────────────────────────────────────────────────────────────────────
// ChannelObserver Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestChannelObserver_Handle verifies channel delivery.
func TestChannelObserver_Handle(t *testing.T) {
	t.Parallel()

	ch := make(chan Event, 10)
	observer := NewChannelObserver(ch)

	observer.Handle(Event{Kind: EventComputed, Index: 10, Value: "55"})
	observer.Handle(Event{Kind: EventHistoryChanged})

	event1 := <-ch
	if event1.Kind != EventComputed || event1.Index != 10 || event1.Value != "55" {
		t.Errorf("unexpected event1: %+v", event1)
	}

	event2 := <-ch
	if event2.Kind != EventHistoryChanged {
		t.Errorf("unexpected event2: %+v", event2)
	}
}

// TestChannelObserver_NilChannel verifies nil handling.
func TestChannelObserver_NilChannel(t *testing.T) {
	t.Parallel()

	observer := NewChannelObserver(nil)
	// Should not panic
	observer.Handle(Event{Kind: EventComputed})
}

// TestChannelObserver_FullChannel verifies non-blocking behavior.
func TestChannelObserver_FullChannel(t *testing.T) {
	t.Parallel()

	ch := make(chan Event) // Unbuffered = full
	observer := NewChannelObserver(ch)

	// Should not block - use timeout to verify
	done := make(chan bool, 1)
	go func() {
		observer.Handle(Event{Kind: EventComputed})
		done <- true
	}()

	select {
	case <-done:
		// Good, didn't block
	case <-time.After(100 * time.Millisecond):
		t.Error("observer.Handle should not block on full channel")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// LoggingObserver Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestLoggingObserver_Computed verifies debug logging of computations.
func TestLoggingObserver_Computed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	observer := NewLoggingObserver(logger)

	observer.Handle(Event{Kind: EventComputed, SessionID: "s1", Index: 10, Value: "55"})

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`"n":10`)) {
		t.Errorf("expected index in log output, got %s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("value computed")) {
		t.Errorf("expected computed message, got %s", out)
	}
}

// TestLoggingObserver_Rejected verifies warn logging of rejections.
func TestLoggingObserver_Rejected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	observer := NewLoggingObserver(logger)

	rejection := validate.Error{Kind: validate.KindNegative, Raw: "-1", Max: 45}
	observer.Handle(Event{Kind: EventRejected, SessionID: "s1", Rejection: &rejection})

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"kind":"negative"`, `"raw":"-1"`, "submission rejected"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("expected %s in log output, got %s", want, out)
		}
	}
}

// TestLoggingObserver_RejectedWithoutPayload verifies nil rejection handling.
func TestLoggingObserver_RejectedWithoutPayload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	observer := NewLoggingObserver(logger)

	// Should not panic
	observer.Handle(Event{Kind: EventRejected, SessionID: "s1"})

	if !bytes.Contains(buf.Bytes(), []byte("submission rejected")) {
		t.Errorf("expected rejection message, got %s", buf.String())
	}
}

// TestLoggingObserver_HistoryChanged verifies history logging.
func TestLoggingObserver_HistoryChanged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	observer := NewLoggingObserver(logger)

	observer.Handle(Event{Kind: EventHistoryChanged, SessionID: "s1"})

	if !bytes.Contains(buf.Bytes(), []byte("history changed")) {
		t.Errorf("expected history message, got %s", buf.String())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// MetricsObserver Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestMetricsObserver_Handle verifies Prometheus integration.
func TestMetricsObserver_Handle(t *testing.T) {
	t.Parallel()

	observer := NewMetricsObserver()

	// Should not panic
	observer.Handle(Event{Kind: EventComputed, Index: 10})
	observer.Handle(Event{Kind: EventRejected})
	observer.Handle(Event{Kind: EventHistoryChanged, Entries: nil})
}

// ─────────────────────────────────────────────────────────────────────────────
// NoOpObserver Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestNoOpObserver_Handle verifies no-op behavior.
func TestNoOpObserver_Handle(t *testing.T) {
	t.Parallel()

	observer := NewNoOpObserver()
	// Should not panic
	observer.Handle(Event{Kind: EventComputed})
	observer.Handle(Event{Kind: EventRejected})
}

// ─────────────────────────────────────────────────────────────────────────────
// Integration Tests
// ─────────────────────────────────────────────────────────────────────────────

// TestMultipleObserversIntegration verifies multiple observers work together.
func TestMultipleObserversIntegration(t *testing.T) {
	t.Parallel()

	subject := NewEventSubject()

	ch := make(chan Event, 10)
	channelObs := NewChannelObserver(ch)

	var logBuf bytes.Buffer
	loggingObs := NewLoggingObserver(zerolog.New(&logBuf).Level(zerolog.DebugLevel))

	metricsObs := NewMetricsObserver()

	rec := &recordingObserver{}

	subject.Register(channelObs)
	subject.Register(loggingObs)
	subject.Register(metricsObs)
	subject.Register(rec)

	subject.Notify(Event{Kind: EventComputed, Index: 5, Value: "5"})
	subject.Notify(Event{Kind: EventHistoryChanged})

	if len(ch) != 2 {
		t.Errorf("expected 2 channel events, got %d", len(ch))
	}
	if len(rec.kinds()) != 2 {
		t.Errorf("expected 2 recorded events, got %d", len(rec.kinds()))
	}
	if logBuf.Len() == 0 {
		t.Error("expected log output from logging observer")
	}
}
