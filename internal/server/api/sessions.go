package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/meghnad/studylens/internal/store"
)

// SessionsHandler handles HTTP requests for study session resources.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

type createSessionRequest struct {
	UserID string `json:"user_id"`
}

type sessionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StartedAt string `json:"started_at"`
}

type sessionResultResponse struct {
	Score     float64  `json:"score"`
	Behaviors []string `json:"behaviors"`
	Timestamp string   `json:"timestamp"`
}

type sessionResultsResponse struct {
	SessionID string                  `json:"session_id"`
	Results   []sessionResultResponse `json:"results"`
}

// ServeHTTP routes session requests.
// Expected paths: POST /api/sessions, GET /api/sessions/{id}/results.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.create(w, r)
		return
	}

	if id, ok := strings.CutSuffix(path, "/results"); ok {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.results(w, r, id)
		return
	}

	writeError(w, http.StatusNotFound, "Not found")
}

// create handles POST /api/sessions and mints a new session for a user.
func (h *SessionsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing user_id")
		return
	}

	sess := &store.Session{UserID: req.UserID}
	if err := h.store.Sessions().Create(sess); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:        sess.ID,
		UserID:    sess.UserID,
		StartedAt: sess.StartedAt.Format(time.RFC3339),
	})
}

// results handles GET /api/sessions/{id}/results and lists the session's
// persisted detection results in capture order.
func (h *SessionsHandler) results(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}

	rows, err := h.store.Detections().BySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load session results")
		return
	}

	response := sessionResultsResponse{
		SessionID: id,
		Results:   make([]sessionResultResponse, 0, len(rows)),
	}
	for _, row := range rows {
		behaviors := row.Behaviors
		if behaviors == nil {
			behaviors = []string{}
		}
		response.Results = append(response.Results, sessionResultResponse{
			Score:     row.Score,
			Behaviors: behaviors,
			Timestamp: row.Timestamp.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
