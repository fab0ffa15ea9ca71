// Package behavior runs a fixed bank of distraction detectors over a
// frame's feature vector and aggregates their verdicts into a score.
package behavior

import "github.com/meghnad/studylens/internal/feature"

// Behavior labels. The order of these constants is the bank's fixed
// evaluation order, which is also the insertion order of the result's
// behavior list.
const (
	LabelLookingAway = "Looking away from screen"
	LabelPhoneUse    = "Phone usage detected"
	LabelSlouching   = "Slouching posture"
	LabelYawning     = "Frequent yawning"
	LabelDistracted  = "Distracted hand movements"
)

// Labels returns the full label set in evaluation order.
func Labels() []string {
	return []string{
		LabelLookingAway,
		LabelPhoneUse,
		LabelSlouching,
		LabelYawning,
		LabelDistracted,
	}
}

// Detector evaluates one behavior against a frame's feature vector.
// Implementations are stateless across frames and deterministic given the
// same input and configuration. A detector fails closed (false verdict)
// when the landmark group it needs was absent from the frame.
type Detector interface {
	// Label returns the behavior label this detector emits.
	Label() string

	// Detect reports whether the behavior is present in the frame.
	Detect(v *feature.Vector) bool
}

// Config holds thresholds for the heuristic detectors.
type Config struct {
	// LookAwayThreshold is the horizontal deviation of the reference face
	// landmark from frame center beyond which the gaze counts as away.
	LookAwayThreshold float64

	// PhoneProximity is the maximum hand-to-mouth distance that counts as
	// holding a phone.
	PhoneProximity float64

	// SlouchDrop is the minimum nose-to-shoulder vertical distance below
	// which the posture counts as slouched.
	SlouchDrop float64

	// YawnRatio is the mouth aspect ratio (lip gap over mouth width) above
	// which the mouth counts as yawning.
	YawnRatio float64

	// ModelThreshold is the probability cutoff for model-backed detectors.
	ModelThreshold float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		LookAwayThreshold: 0.2,
		PhoneProximity:    0.25,
		SlouchDrop:        0.12,
		YawnRatio:         0.6,
		ModelThreshold:    0.5,
	}
}
