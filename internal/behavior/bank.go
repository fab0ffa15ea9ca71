package behavior

import (
	"time"

	"github.com/meghnad/studylens/internal/feature"
)

// MaxScore is the top of the attentiveness score range.
const MaxScore = 5.0

// Result is one frame's detection output. It is immutable once produced.
type Result struct {
	// Score is the attentiveness score in [0, MaxScore].
	Score float64

	// Behaviors lists the detected behavior labels in evaluation order.
	Behaviors []string

	// Timestamp is the capture instant the frame was evaluated at.
	Timestamp time.Time
}

// Bank is a fixed ordered set of independent detectors. The zero value is
// unusable; construct with NewBank.
type Bank struct {
	detectors []Detector
}

// NewBank creates a Bank evaluating the given detectors in order.
func NewBank(detectors []Detector) *Bank {
	return &Bank{detectors: detectors}
}

// NewHeuristicBank creates a Bank backed by geometric heuristics.
func NewHeuristicBank(cfg Config) *Bank {
	return NewBank(HeuristicDetectors(cfg))
}

// NewModelBank creates a Bank backed by a trained classifier.
func NewModelBank(cfg Config, m *Model) *Bank {
	return NewBank(ModelDetectors(cfg, m))
}

// Evaluate runs every detector over the vector and aggregates the verdicts.
// The behavior list preserves evaluation order and the score scales the
// count of true verdicts to the [0, MaxScore] range, so with five
// detectors it equals one point per detected behavior.
func (b *Bank) Evaluate(v *feature.Vector, capturedAt time.Time) *Result {
	behaviors := make([]string, 0, len(b.detectors))
	for _, d := range b.detectors {
		if d.Detect(v) {
			behaviors = append(behaviors, d.Label())
		}
	}

	score := 0.0
	if len(b.detectors) > 0 {
		score = float64(len(behaviors)) / float64(len(b.detectors)) * MaxScore
	}

	return &Result{
		Score:     score,
		Behaviors: behaviors,
		Timestamp: capturedAt,
	}
}
