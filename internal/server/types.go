package server

import "time"

// ComputeRequest is the JSON body of POST /api/v1/compute. Input carries the
// raw index text exactly as the client typed it; the session's validator, not
// the transport, decides whether it is acceptable.
type ComputeRequest struct {
	// Input is the raw, unvalidated index text.
	Input string `json:"input"`
}

// ReplayRequest is the JSON body of POST /api/v1/replay. The pointer
// distinguishes a missing field from a literal zero, since replaying F(0) is
// a valid request.
type ReplayRequest struct {
	// Index is the previously computed index to resubmit.
	Index *uint64 `json:"index"`
}

// ResultResponse is the standardized JSON envelope for a successful
// computation.
type ResultResponse struct {
	// Index is the validated index that was computed.
	Index uint64 `json:"index"`
	// Value is the exact decimal representation of F(Index).
	Value string `json:"value"`
	// Digits is the decimal length of Value.
	Digits int `json:"digits"`
	// Duration is the formatted server-side execution time.
	Duration string `json:"duration"`
	// Engine is the name of the backend that produced the value.
	Engine string `json:"engine"`
	// Session identifies the session the computation was recorded in.
	Session string `json:"session"`
}

// HistoryEntryResponse is one history item in GET /api/v1/history, newest
// first.
type HistoryEntryResponse struct {
	// Position is the 1-based place in the listing (1 = most recent).
	Position int `json:"position"`
	// Index is the recorded Fibonacci index.
	Index uint64 `json:"index"`
	// Value is the exact decimal value that was computed.
	Value string `json:"value"`
	// At is the RFC 3339 timestamp of the computation.
	At time.Time `json:"at"`
}

// HistoryResponse is the JSON envelope for GET /api/v1/history.
type HistoryResponse struct {
	// Count is the number of entries currently retained.
	Count int `json:"count"`
	// Capacity is the retention limit of the history.
	Capacity int `json:"capacity"`
	// Entries lists the retained computations, newest first.
	Entries []HistoryEntryResponse `json:"entries"`
}

// SessionResponse is the JSON envelope for GET /api/v1/session.
type SessionResponse struct {
	// ID is the session identifier.
	ID string `json:"id"`
	// Engine is the computation backend bound to the session.
	Engine string `json:"engine"`
	// MaxIndex is the inclusive validation bound.
	MaxIndex uint64 `json:"max_index"`
	// HistoryCapacity is the retention limit of the history.
	HistoryCapacity int `json:"history_capacity"`
	// HistoryLen is the number of entries currently retained.
	HistoryLen int `json:"history_len"`
}

// ErrorResponse is the standardized JSON envelope for an API error. Kind is
// populated for validation rejections so clients can branch without parsing
// the message.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Kind is the machine-readable rejection kind ("not_a_number",
	// "negative", "too_large"); empty for non-validation errors.
	Kind string `json:"kind,omitempty"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	// Status is "ok" whenever the process can answer at all.
	Status string `json:"status"`
	// Session is the identifier of the session this instance serves.
	Session string `json:"session"`
	// Uptime is the time elapsed since the server was constructed.
	Uptime string `json:"uptime"`
}
