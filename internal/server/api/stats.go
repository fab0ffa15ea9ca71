package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/meghnad/studylens/internal/stats"
)

// StatsHandler handles HTTP requests for user statistics.
type StatsHandler struct {
	aggregator *stats.Aggregator
}

// NewStatsHandler creates a new StatsHandler with the given aggregator.
func NewStatsHandler(a *stats.Aggregator) *StatsHandler {
	return &StatsHandler{aggregator: a}
}

type behaviorCountResponse struct {
	Behavior string `json:"behavior"`
	Count    int    `json:"count"`
}

type statsResponse struct {
	AvgProcrastinationScore float64                 `json:"avg_procrastination_score"`
	CommonBehaviors         []behaviorCountResponse `json:"common_behaviors"`
	SessionCount            int                     `json:"session_count"`
	TotalStudyHours         float64                 `json:"total_study_hours"`
	DaysAnalyzed            int                     `json:"days_analyzed"`
}

// ServeHTTP handles GET /api/stats/{user_id}. A fetch failure surfaces as
// a server error; zeroed stats mean an empty window, never a failure.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/api/stats/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "Missing user id")
		return
	}

	window, err := h.aggregator.UserWindow(userID)
	if err != nil {
		log.Printf("Error getting stats for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve user statistics")
		return
	}

	behaviors := make([]behaviorCountResponse, 0, len(window.CommonBehaviors))
	for _, bc := range window.CommonBehaviors {
		behaviors = append(behaviors, behaviorCountResponse{
			Behavior: bc.Behavior,
			Count:    bc.Count,
		})
	}

	writeJSON(w, http.StatusOK, statsResponse{
		AvgProcrastinationScore: window.AvgScore,
		CommonBehaviors:         behaviors,
		SessionCount:            window.SessionCount,
		TotalStudyHours:         window.TotalHours,
		DaysAnalyzed:            window.DaysAnalyzed,
	})
}
