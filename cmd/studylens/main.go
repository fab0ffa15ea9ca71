package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/meghnad/studylens/internal/app"
	"github.com/meghnad/studylens/internal/behavior"
	"github.com/meghnad/studylens/internal/config"
	"github.com/meghnad/studylens/internal/estimator"
	"github.com/meghnad/studylens/internal/server"
	"github.com/meghnad/studylens/internal/store"
)

func main() {
	fmt.Println("StudyLens - Study Attentiveness Detection")

	cfg := config.Load()

	dbPath := cfg.DBPath
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}

		dbDir := filepath.Join(homeDir, ".studylens")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "studylens.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Try the MediaPipe Holistic sidecar first, fall back to the mock
	// estimator so the API stays usable without Python installed.
	var est estimator.Estimator
	if holistic, err := estimator.NewHolisticEstimator(estimator.Config{
		MinDetectionConfidence: cfg.MinDetectionConfidence,
		MinTrackingConfidence:  cfg.MinTrackingConfidence,
	}); err == nil {
		est = holistic
		log.Println("Using MediaPipe Holistic landmark estimation")
	} else {
		log.Printf("MediaPipe Holistic not available (%v), using mock estimator", err)
		est = estimator.NewMockEstimator()
	}

	bank, err := buildBank(cfg)
	if err != nil {
		log.Fatalf("Failed to build detector bank: %v", err)
	}

	application := app.New(app.Config{
		Estimator:  est,
		Bank:       bank,
		Detections: st.Detections(),
	})
	defer application.Close()

	srv := server.New(server.Config{
		Store: st,
		App:   application,
	})

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildBank constructs the detector bank for the configured mode. The
// model and thresholds are loaded once here and shared read-only across
// all requests.
func buildBank(cfg *config.Config) (*behavior.Bank, error) {
	detectorCfg := behavior.DefaultConfig()
	detectorCfg.LookAwayThreshold = cfg.LookAwayThreshold
	detectorCfg.ModelThreshold = cfg.ModelThreshold

	switch cfg.DetectorMode {
	case config.ModeModel:
		model, err := behavior.LoadModel(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model %s: %w", cfg.ModelPath, err)
		}
		log.Printf("Using model-backed detectors from %s", cfg.ModelPath)
		return behavior.NewModelBank(detectorCfg, model), nil

	case config.ModeHeuristic:
		log.Println("Using heuristic detectors")
		return behavior.NewHeuristicBank(detectorCfg), nil

	default:
		return nil, fmt.Errorf("unknown detector mode %q", cfg.DetectorMode)
	}
}
