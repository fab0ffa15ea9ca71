package estimator

import "gocv.io/x/gocv"

// Estimator defines the interface for holistic landmark estimation implementations.
type Estimator interface {
	// Estimate analyzes a video frame and returns the detected landmark groups.
	// Groups the estimator found nothing for are nil in the result.
	Estimate(frame *gocv.Mat) (*Landmarks, error)

	// Close releases any resources held by the estimator.
	Close() error
}

// Config holds configuration options for landmark estimation.
type Config struct {
	// MinDetectionConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinDetectionConfidence float64

	// MinTrackingConfidence is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConfidence float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinDetectionConfidence: 0.5,
		MinTrackingConfidence:  0.5,
	}
}
