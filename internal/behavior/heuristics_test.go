package behavior

import (
	"testing"

	"github.com/meghnad/studylens/internal/estimator"
	"github.com/meghnad/studylens/internal/feature"
)

func buildVector(l *estimator.Landmarks) *feature.Vector {
	return feature.Build(l)
}

func TestLookingAwayDetector(t *testing.T) {
	d := &lookingAwayDetector{threshold: 0.2}

	tests := []struct {
		name      string
		landmarks *estimator.Landmarks
		want      bool
	}{
		{"face centered", estimator.AttentiveLandmarks(), false},
		{"face turned away", estimator.LookingAwayLandmarks(), true},
		{"no face fails closed", &estimator.Landmarks{Pose: estimator.AttentiveLandmarks().Pose}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(buildVector(tt.landmarks)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookingAwayDetector_ThresholdConfigurable(t *testing.T) {
	l := estimator.AttentiveLandmarks()
	l.Face[0].X = 0.62 // 0.12 off center

	loose := &lookingAwayDetector{threshold: 0.2}
	if loose.Detect(buildVector(l)) {
		t.Error("0.12 deviation should pass with threshold 0.2")
	}

	strict := &lookingAwayDetector{threshold: 0.1}
	if !strict.Detect(buildVector(l)) {
		t.Error("0.12 deviation should trigger with threshold 0.1")
	}
}

func TestPhoneUseDetector(t *testing.T) {
	d := &phoneUseDetector{proximity: 0.25}

	tests := []struct {
		name      string
		landmarks *estimator.Landmarks
		want      bool
	}{
		{"hand at mouth", estimator.PhoneUseLandmarks(), true},
		{"no hands", estimator.AttentiveLandmarks(), false},
		{"no face fails closed", &estimator.Landmarks{
			RightHand: estimator.PhoneUseLandmarks().RightHand,
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(buildVector(tt.landmarks)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPhoneUseDetector_HandFarFromMouth(t *testing.T) {
	d := &phoneUseDetector{proximity: 0.25}

	l := estimator.AttentiveLandmarks()
	l.LeftHand = make([]estimator.Point3D, estimator.NumHandLandmarks)
	for i := range l.LeftHand {
		l.LeftHand[i] = estimator.Point3D{X: 0.9, Y: 0.9, Z: 0.0}
	}

	if d.Detect(buildVector(l)) {
		t.Error("hand far from mouth should not count as phone use")
	}
}

func TestSlouchingDetector(t *testing.T) {
	d := &slouchingDetector{drop: 0.12}

	tests := []struct {
		name      string
		landmarks *estimator.Landmarks
		want      bool
	}{
		{"upright posture", estimator.AttentiveLandmarks(), false},
		{"head dropped", estimator.SlouchingLandmarks(), true},
		{"no pose fails closed", &estimator.Landmarks{Face: estimator.AttentiveLandmarks().Face}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(buildVector(tt.landmarks)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYawningDetector(t *testing.T) {
	d := &yawningDetector{ratio: 0.6}

	tests := []struct {
		name      string
		landmarks *estimator.Landmarks
		want      bool
	}{
		{"mouth closed", estimator.AttentiveLandmarks(), false},
		{"mouth wide open", estimator.YawningLandmarks(), true},
		{"no face fails closed", &estimator.Landmarks{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(buildVector(tt.landmarks)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistractedDetector(t *testing.T) {
	d := &distractedDetector{}

	tests := []struct {
		name      string
		landmarks *estimator.Landmarks
		want      bool
	}{
		{"wrists resting", estimator.AttentiveLandmarks(), false},
		{"wrist above shoulders", estimator.FidgetingLandmarks(), true},
		{"no pose fails closed", &estimator.Landmarks{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(buildVector(tt.landmarks)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeuristicDetectors_OrderAndLabels(t *testing.T) {
	detectors := HeuristicDetectors(DefaultConfig())

	want := Labels()
	if len(detectors) != len(want) {
		t.Fatalf("got %d detectors, want %d", len(detectors), len(want))
	}
	for i, d := range detectors {
		if d.Label() != want[i] {
			t.Errorf("detector %d label = %q, want %q", i, d.Label(), want[i])
		}
	}
}
