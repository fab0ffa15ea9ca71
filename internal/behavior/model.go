package behavior

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/meghnad/studylens/internal/feature"
)

// Model is a multi-label linear classifier over the full feature vector,
// trained offline and exported as a JSON artifact. It is loaded once at
// startup and read-only thereafter, so it is safe to share across
// concurrent detections.
type Model struct {
	labels  []string
	weights *mat.Dense
	bias    *mat.VecDense

	// thresholds holds the per-label probability cutoffs calibrated during
	// training, or nil when the artifact carries none.
	thresholds []float64
}

// modelFile is the on-disk JSON form of a trained model. Thresholds are
// optional; an artifact without them uses the configured cutoff for every
// label.
type modelFile struct {
	Labels     []string    `json:"labels"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Thresholds []float64   `json:"thresholds,omitempty"`
}

// LoadModel reads a trained classifier artifact from path. The artifact
// must carry one weight row and bias per label, each row as wide as the
// feature vector, with labels in the bank's evaluation order.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return ParseModel(data)
}

// ParseModel builds a Model from the JSON artifact bytes.
func ParseModel(data []byte) (*Model, error) {
	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}

	want := Labels()
	if len(f.Labels) != len(want) {
		return nil, fmt.Errorf("model has %d labels, expected %d", len(f.Labels), len(want))
	}
	for i, label := range f.Labels {
		if label != want[i] {
			return nil, fmt.Errorf("model label %d is %q, expected %q", i, label, want[i])
		}
	}
	if len(f.Weights) != len(want) {
		return nil, fmt.Errorf("model has %d weight rows, expected %d", len(f.Weights), len(want))
	}
	if len(f.Bias) != len(want) {
		return nil, fmt.Errorf("model has %d bias terms, expected %d", len(f.Bias), len(want))
	}
	if f.Thresholds != nil && len(f.Thresholds) != len(want) {
		return nil, fmt.Errorf("model has %d thresholds, expected %d", len(f.Thresholds), len(want))
	}

	weights := mat.NewDense(len(want), feature.VectorSize, nil)
	for i, row := range f.Weights {
		if len(row) != feature.VectorSize {
			return nil, fmt.Errorf("model weight row %d has %d values, expected %d", i, len(row), feature.VectorSize)
		}
		weights.SetRow(i, row)
	}

	return &Model{
		labels:     append([]string(nil), f.Labels...),
		weights:    weights,
		bias:       mat.NewVecDense(len(want), f.Bias),
		thresholds: append([]float64(nil), f.Thresholds...),
	}, nil
}

// Probabilities computes the calibrated per-label probability for every
// behavior, in evaluation order.
func (m *Model) Probabilities(v *feature.Vector) []float64 {
	x := mat.NewVecDense(feature.VectorSize, v.Values())

	var logits mat.VecDense
	logits.MulVec(m.weights, x)
	logits.AddVec(&logits, m.bias)

	probs := make([]float64, len(m.labels))
	for i := range probs {
		probs[i] = sigmoid(logits.AtVec(i))
	}
	return probs
}

// Probability computes the calibrated probability for the label at index i.
// It evaluates only that label's weight row, so per-label detectors avoid
// redoing the full matrix product for every verdict.
func (m *Model) Probability(i int, v *feature.Vector) float64 {
	x := mat.NewVecDense(feature.VectorSize, v.Values())
	logit := mat.Dot(m.weights.RowView(i), x) + m.bias.AtVec(i)
	return sigmoid(logit)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// modelDetector evaluates one label of the shared classifier.
type modelDetector struct {
	model     *Model
	index     int
	threshold float64
}

func (d *modelDetector) Label() string { return d.model.labels[d.index] }

func (d *modelDetector) Detect(v *feature.Vector) bool {
	return d.model.Probability(d.index, v) >= d.threshold
}

// ModelDetectors returns the detector set in evaluation order with the
// looking-away detector kept geometric (it needs only the face reference
// landmark) and the remaining four backed by the classifier. A label's
// cutoff comes from the artifact's calibrated thresholds when present,
// otherwise from the configured one.
func ModelDetectors(cfg Config, m *Model) []Detector {
	detectors := []Detector{
		&lookingAwayDetector{threshold: cfg.LookAwayThreshold},
	}
	for i := 1; i < len(m.labels); i++ {
		threshold := cfg.ModelThreshold
		if m.thresholds != nil {
			threshold = m.thresholds[i]
		}
		detectors = append(detectors, &modelDetector{
			model:     m,
			index:     i,
			threshold: threshold,
		})
	}
	return detectors
}
