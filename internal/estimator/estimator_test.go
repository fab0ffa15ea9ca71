package estimator

import (
	"errors"
	"testing"
)

func TestMockEstimator_ReturnsConfiguredLandmarks(t *testing.T) {
	m := NewMockEstimator()
	m.SetLandmarks(AttentiveLandmarks())

	landmarks, err := m.Estimate(nil)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if !landmarks.HasFace() || !landmarks.HasPose() {
		t.Error("attentive fixture should carry face and pose groups")
	}
	if landmarks.HasLeftHand() || landmarks.HasRightHand() {
		t.Error("attentive fixture should carry no hands")
	}
}

func TestMockEstimator_ReturnsConfiguredError(t *testing.T) {
	m := NewMockEstimator()
	wantErr := errors.New("estimation failed")
	m.SetError(wantErr)

	_, err := m.Estimate(nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("Estimate() error = %v, want %v", err, wantErr)
	}
}

func TestFixtures_GroupSizes(t *testing.T) {
	fixtures := map[string]*Landmarks{
		"attentive":    AttentiveLandmarks(),
		"looking away": LookingAwayLandmarks(),
		"phone use":    PhoneUseLandmarks(),
		"slouching":    SlouchingLandmarks(),
		"yawning":      YawningLandmarks(),
		"fidgeting":    FidgetingLandmarks(),
	}

	for name, l := range fixtures {
		if len(l.Face) != NumFaceLandmarks {
			t.Errorf("%s: face has %d points, want %d", name, len(l.Face), NumFaceLandmarks)
		}
		if len(l.Pose) != NumPoseLandmarks {
			t.Errorf("%s: pose has %d points, want %d", name, len(l.Pose), NumPoseLandmarks)
		}
	}

	if len(PhoneUseLandmarks().RightHand) != NumHandLandmarks {
		t.Errorf("phone use fixture right hand size = %d, want %d",
			len(PhoneUseLandmarks().RightHand), NumHandLandmarks)
	}
}

func TestJSONLandmarks_NullGroupsBecomeNil(t *testing.T) {
	j := jsonLandmarks{
		Pose: []jsonPoint{{X: 0.1, Y: 0.2, Z: 0.3}},
	}

	l := j.toLandmarks()

	if l.HasFace() {
		t.Error("missing face group should stay absent")
	}
	if !l.HasPose() {
		t.Error("pose group should be present")
	}
	if l.Pose[0] != (Point3D{X: 0.1, Y: 0.2, Z: 0.3}) {
		t.Errorf("pose point = %+v", l.Pose[0])
	}
}

func TestDistance3D(t *testing.T) {
	a := Point3D{X: 0, Y: 0, Z: 0}
	b := Point3D{X: 3, Y: 4, Z: 0}

	if got := Distance3D(a, b); got != 5 {
		t.Errorf("Distance3D = %f, want 5", got)
	}
}
