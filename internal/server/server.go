// Package server provides the HTTP server for the StudyLens detection service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/meghnad/studylens/internal/app"
	"github.com/meghnad/studylens/internal/server/api"
	"github.com/meghnad/studylens/internal/stats"
	"github.com/meghnad/studylens/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store *store.Store
	App   *app.App
}

// Server represents the HTTP server for the StudyLens service.
type Server struct {
	config Config
	mux    *http.ServeMux
	live   *LiveHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		live:   NewLiveHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register the detect endpoint if the detection pipeline is configured
	if s.config.App != nil {
		detectHandler := api.NewDetectHandler(s.config.App, s.live)
		s.mux.Handle("/api/detect", detectHandler)
	}

	// Register stats and session endpoints if the store is configured
	if s.config.Store != nil {
		statsHandler := api.NewStatsHandler(stats.NewAggregator(s.config.Store.Detections()))
		s.mux.Handle("/api/stats/", statsHandler)

		sessionsHandler := api.NewSessionsHandler(s.config.Store)
		s.mux.Handle("/api/sessions", sessionsHandler)
		s.mux.Handle("/api/sessions/", sessionsHandler)
	}

	// Live result feed for connected dashboards
	s.mux.Handle("/api/live", s.live)
}

// ServeHTTP implements the http.Handler interface. The API is consumed by
// a browser frontend on another origin, so CORS headers are applied to
// every response.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
