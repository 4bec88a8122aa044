package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/agbru/fibpad/internal/errors"
	"github.com/agbru/fibpad/internal/session"
	"github.com/agbru/fibpad/internal/validate"
)

// ───────────────────────────────────────────────────────────────────────────
// SECTION: API HANDLERS
// ───────────────────────────────────────────────────────────────────────────

// requestTimeout bounds one submission end to end. Computation is instant;
// the budget exists for configured artificial delays.
const requestTimeout = 25 * time.Second

// handleCompute serves POST /api/v1/compute. The request body carries the
// raw user input; classification is entirely the validator's job, so the
// handler forwards the text untouched and maps the outcome to a status code.
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	s.mu.Lock()
	res, err := s.session.Submit(ctx, req.Input)
	s.mu.Unlock()

	if err != nil {
		s.writeSubmitError(w, err)
		return
	}

	s.writeResult(w, res)
}

// handleReplay serves POST /api/v1/replay. The index is resubmitted through
// the full validation and computation pipeline; nothing is read back from
// the history.
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Index == nil {
		s.writeError(w, http.StatusBadRequest, "Missing 'index' field")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	s.mu.Lock()
	res, err := s.session.Replay(ctx, *req.Index)
	s.mu.Unlock()

	if err != nil {
		s.writeSubmitError(w, err)
		return
	}

	s.writeResult(w, res)
}

// handleHistory serves GET /api/v1/history with a most-recent-first snapshot
// of the session history.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	entries := s.session.Entries()
	capacity := s.session.Capacity()
	s.mu.Unlock()

	resp := HistoryResponse{
		Count:    len(entries),
		Capacity: capacity,
		Entries:  make([]HistoryEntryResponse, 0, len(entries)),
	}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, HistoryEntryResponse{
			Position: i + 1,
			Index:    uint64(e.Index()),
			Value:    e.ValueString(),
			At:       e.At(),
		})
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleSession serves GET /api/v1/session, describing the session limits a
// client must respect.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	resp := SessionResponse{
		ID:              s.session.ID(),
		Engine:          s.session.EngineName(),
		MaxIndex:        s.session.MaxIndex(),
		HistoryCapacity: s.session.Capacity(),
		HistoryLen:      len(s.session.Entries()),
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, resp)
}

// handleHealth serves GET /health for liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	id := s.session.ID()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Session: id,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

// ───────────────────────────────────────────────────────────────────────────
// SECTION: RESPONSE WRITERS
// ───────────────────────────────────────────────────────────────────────────

// writeResult renders a successful submission.
func (s *Server) writeResult(w http.ResponseWriter, res session.Result) {
	value := res.Value.String()

	s.mu.Lock()
	engine := s.session.EngineName()
	id := s.session.ID()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, ResultResponse{
		Index:    res.Index,
		Value:    value,
		Digits:   len(value),
		Duration: res.Duration.String(),
		Engine:   engine,
		Session:  id,
	})
}

// writeSubmitError maps a failed submission to an HTTP status. Rejections
// are client errors and carry the machine-readable kind; context errors mean
// the request budget ran out; anything else is a server fault.
func (s *Server) writeSubmitError(w http.ResponseWriter, err error) {
	var vErr validate.Error
	if errors.As(err, &vErr) {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Kind:    vErr.Kind.String(),
			Message: vErr.Error(),
		})
		return
	}

	if apperrors.IsContextError(err) {
		s.writeError(w, http.StatusServiceUnavailable, "Computation canceled or timed out")
		return
	}

	s.logger.Error("submission failed", err)
	s.writeError(w, http.StatusInternalServerError, "Internal server error")
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status line is already on the wire; all we can do is log.
		s.logger.Error("failed to encode response", err)
	}
}

// writeError writes a plain JSON error envelope.
func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, ErrorResponse{Error: message})
}
