// Package config loads service configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Detector modes.
const (
	ModeHeuristic = "heuristic"
	ModeModel     = "model"
)

// Config holds the service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DBPath is the SQLite database file path. Empty means the default
	// under the user's home directory.
	DBPath string

	// DetectorMode selects the behavior detector variant: "heuristic" or
	// "model".
	DetectorMode string

	// ModelPath is the trained classifier artifact consumed in model mode.
	ModelPath string

	// Estimator confidence thresholds
	MinDetectionConfidence float64
	MinTrackingConfidence  float64

	// Heuristic thresholds
	LookAwayThreshold float64
	ModelThreshold    float64
}

// Load reads configuration from the environment, loading a .env file
// first if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:         getEnv("ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", ""),
		DetectorMode: getEnv("DETECTOR_MODE", ModeHeuristic),
		ModelPath:    getEnv("MODEL_PATH", "model/behavior_model.json"),

		MinDetectionConfidence: getEnvFloat("MIN_DETECTION_CONFIDENCE", 0.5),
		MinTrackingConfidence:  getEnvFloat("MIN_TRACKING_CONFIDENCE", 0.5),

		LookAwayThreshold: getEnvFloat("LOOK_AWAY_THRESHOLD", 0.2),
		ModelThreshold:    getEnvFloat("MODEL_THRESHOLD", 0.5),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}
