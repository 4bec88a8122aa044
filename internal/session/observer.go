// Package session coordinates one interactive Fibonacci session: it validates
// raw input, drives the computation engine, maintains the bounded history and
// publishes session events to registered observers.
//
// This file contains the Observer pattern implementation for event delivery.
package session

import (
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Observer Pattern Interfaces
// ─────────────────────────────────────────────────────────────────────────────

// Observer defines the interface for observing session events.
// Implementations receive notifications when submissions are computed or
// rejected and when the history changes, enabling decoupled handling of
// events for UI, logging, metrics, etc.
type Observer interface {
	// Handle is called for every published event.
	//
	// Parameters:
	//   - event: The session event. Observers must not retain or mutate the
	//     Entries slice beyond the call.
	Handle(event Event)
}

// ─────────────────────────────────────────────────────────────────────────────
// Event Subject (Observable)
// ─────────────────────────────────────────────────────────────────────────────

// EventSubject manages observer registration and notification for session
// events. It implements the Subject part of the Observer pattern, allowing
// multiple observers to be notified without tight coupling between the
// controller and its consumers.
//
// EventSubject is safe for concurrent use.
type EventSubject struct {
	observers []Observer
	mu        sync.RWMutex
}

// NewEventSubject creates a new subject for managing session observers.
//
// Returns:
//   - *EventSubject: A new, empty subject ready to accept observers.
func NewEventSubject() *EventSubject {
	return &EventSubject{
		observers: make([]Observer, 0),
	}
}

// Register adds an observer to receive session events.
// Observers are notified in the order they are registered.
//
// Parameters:
//   - observer: The observer to add. If nil, this call is a no-op.
func (s *EventSubject) Register(observer Observer) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes an observer from receiving events.
// If the observer is not found, this call is a no-op.
//
// Parameters:
//   - observer: The observer to remove.
func (s *EventSubject) Unregister(observer Observer) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.observers {
		if o == observer {
			// Remove observer while preserving order
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers an event to all registered observers.
// Observers are notified synchronously in registration order.
//
// Parameters:
//   - event: The event to deliver.
func (s *EventSubject) Notify(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, observer := range s.observers {
		observer.Handle(event)
	}
}

// ObserverCount returns the number of registered observers.
// This is primarily useful for testing and diagnostics.
//
// Returns:
//   - int: The number of registered observers.
func (s *EventSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}
