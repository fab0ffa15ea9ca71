package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/meghnad/studylens/internal/app"
	"github.com/meghnad/studylens/internal/behavior"
	"github.com/meghnad/studylens/internal/capture"
)

// ResultPublisher receives each produced detection result for live fan-out.
type ResultPublisher interface {
	Publish(result *behavior.Result)
}

// DetectHandler handles HTTP requests for frame detection.
type DetectHandler struct {
	app       *app.App
	publisher ResultPublisher
}

// NewDetectHandler creates a new DetectHandler. The publisher may be nil.
func NewDetectHandler(a *app.App, publisher ResultPublisher) *DetectHandler {
	return &DetectHandler{app: a, publisher: publisher}
}

type detectRequest struct {
	Image     string `json:"image"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type detectResponse struct {
	Score     float64  `json:"score"`
	Behaviors []string `json:"behaviors"`
	Timestamp string   `json:"timestamp"`
}

// ServeHTTP handles POST /api/detect. The response always carries either a
// complete detection result or a single error indicator, never a partial
// object.
func (h *DetectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Image == "" {
		writeError(w, http.StatusBadRequest, "Missing image data")
		return
	}

	result, err := h.app.DetectImage(req.Image, req.UserID, req.SessionID)
	if err != nil {
		if errors.Is(err, capture.ErrInvalidImage) {
			writeError(w, http.StatusBadRequest, "Invalid image data")
			return
		}
		log.Printf("Error processing detection request: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to process detection request")
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(result)
	}

	behaviors := result.Behaviors
	if behaviors == nil {
		behaviors = []string{}
	}

	writeJSON(w, http.StatusOK, detectResponse{
		Score:     result.Score,
		Behaviors: behaviors,
		Timestamp: result.Timestamp.Format(time.RFC3339),
	})
}
