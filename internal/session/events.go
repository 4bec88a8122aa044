package session

import (
	"time"

	"github.com/agbru/fibpad/internal/history"
	"github.com/agbru/fibpad/internal/validate"
)

// EventKind identifies the type of a session event.
type EventKind int

const (
	// EventComputed is published after a submission was validated and its
	// Fibonacci value computed and recorded.
	EventComputed EventKind = iota
	// EventRejected is published when a submission fails validation.
	EventRejected
	// EventHistoryChanged is published after the session history gained an
	// entry. It carries a snapshot of the retained entries.
	EventHistoryChanged
)

// String returns the stable textual name of the event kind, suitable for
// logging and metric labels.
func (k EventKind) String() string {
	switch k {
	case EventComputed:
		return "computed"
	case EventRejected:
		return "rejected"
	case EventHistoryChanged:
		return "history_changed"
	default:
		return "unknown"
	}
}

// Event is the notification published to session observers. It is a flat
// value: fields that do not apply to the event kind are left at their zero
// value.
type Event struct {
	// Kind discriminates the event.
	Kind EventKind
	// SessionID identifies the session that produced the event.
	SessionID string
	// Index is the computed Fibonacci index (EventComputed only).
	Index uint64
	// Value is the decimal representation of the computed number
	// (EventComputed only).
	Value string
	// Rejection describes why a submission was refused (EventRejected only).
	Rejection *validate.Error
	// Entries is a snapshot of the history, most recent first
	// (EventHistoryChanged only).
	Entries []history.Entry
	// At is the time the event was produced.
	At time.Time
}
