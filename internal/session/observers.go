// This file contains concrete observer implementations for session events.
package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver adapts the Observer pattern to channel-based communication.
// Interactive front ends select on the channel to refresh their display as
// events arrive.
type ChannelObserver struct {
	channel chan<- Event
}

// NewChannelObserver creates an observer that sends events to a channel.
// The channel should have sufficient buffer capacity to avoid dropped events.
//
// Parameters:
//   - ch: The channel to send events to. If nil, events are discarded.
//
// Returns:
//   - *ChannelObserver: A new observer that forwards to the channel.
func NewChannelObserver(ch chan<- Event) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Handle implements Observer by sending to the channel.
// Uses non-blocking send to avoid deadlocks when the channel is full.
//
// Parameters:
//   - event: The session event to forward.
func (o *ChannelObserver) Handle(event Event) {
	if o.channel == nil {
		return
	}

	// Non-blocking send to avoid deadlocks
	select {
	case o.channel <- event:
	default:
		// Channel full, drop event (the consumer can resync from Entries)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs session events using zerolog. Computations and history
// changes are logged at debug level; rejections are logged at warn level so
// repeated bad input stands out in the session log.
type LoggingObserver struct {
	logger zerolog.Logger
}

// NewLoggingObserver creates an observer that logs session events.
//
// Parameters:
//   - logger: The zerolog logger to use.
//
// Returns:
//   - *LoggingObserver: A new observer that logs to zerolog.
func NewLoggingObserver(logger zerolog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Handle implements Observer by logging the event.
//
// Parameters:
//   - event: The session event to log.
func (o *LoggingObserver) Handle(event Event) {
	switch event.Kind {
	case EventComputed:
		o.logger.Debug().
			Str("session", event.SessionID).
			Uint64("n", event.Index).
			Int("digits", len(event.Value)).
			Msg("value computed")
	case EventRejected:
		log := o.logger.Warn().Str("session", event.SessionID)
		if event.Rejection != nil {
			log = log.Str("kind", event.Rejection.Kind.String()).Str("raw", event.Rejection.Raw)
		}
		log.Msg("submission rejected")
	case EventHistoryChanged:
		o.logger.Debug().
			Str("session", event.SessionID).
			Int("entries", len(event.Entries)).
			Msg("history changed")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// sessionEvents counts published session events by kind.
	// Registered once globally to avoid duplicate registration errors.
	sessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibpad_session_events_total",
			Help: "Total number of session events published, by kind",
		},
		[]string{"kind"},
	)

	// historyEntries tracks how many entries the session history currently holds.
	historyEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fibpad_history_entries",
			Help: "Number of entries currently retained in the session history",
		},
	)
)

// MetricsObserver exports session events to Prometheus. It counts events by
// kind and tracks the current history size.
type MetricsObserver struct {
	events  *prometheus.CounterVec
	entries prometheus.Gauge
}

// NewMetricsObserver creates an observer that updates Prometheus metrics.
//
// Returns:
//   - *MetricsObserver: A new observer that exports to Prometheus.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		events:  sessionEvents,
		entries: historyEntries,
	}
}

// Handle implements Observer by updating the Prometheus collectors.
//
// Parameters:
//   - event: The session event to export.
func (o *MetricsObserver) Handle(event Event) {
	o.events.WithLabelValues(event.Kind.String()).Inc()
	if event.Kind == EventHistoryChanged {
		o.entries.Set(float64(len(event.Entries)))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer (Null Object Pattern)
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver is a null object that discards all events.
// Useful for testing or when event handling is not needed.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer that discards events.
//
// Returns:
//   - *NoOpObserver: A new no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Handle implements Observer by doing nothing.
func (o *NoOpObserver) Handle(event Event) {
	// Intentionally empty - Null Object pattern
}
