package behavior

import (
	"math"

	"github.com/meghnad/studylens/internal/estimator"
	"github.com/meghnad/studylens/internal/feature"
)

// The heuristic detectors are geometric approximations of the behaviors a
// trained classifier would recognize. Each one keys off a small number of
// landmark positions and fails closed when its landmark group is absent.

// frameCenterX is the horizontal center of the normalized frame.
const frameCenterX = 0.5

// lookingAwayDetector flags a face whose reference landmark deviates
// horizontally from the frame center by more than the threshold.
type lookingAwayDetector struct {
	threshold float64
}

func (d *lookingAwayDetector) Label() string { return LabelLookingAway }

func (d *lookingAwayDetector) Detect(v *feature.Vector) bool {
	if !v.HasFace() {
		return false
	}
	faceX := v.FacePoint(0).X
	return math.Abs(faceX-frameCenterX) > d.threshold
}

// phoneUseDetector flags a hand held close to the mouth. Approximation:
// real phone use would be recognized by a classifier over the full vector.
type phoneUseDetector struct {
	proximity float64
}

func (d *phoneUseDetector) Label() string { return LabelPhoneUse }

func (d *phoneUseDetector) Detect(v *feature.Vector) bool {
	if !v.HasFace() {
		return false
	}
	if !v.HasLeftHand() && !v.HasRightHand() {
		return false
	}

	upper := v.FacePoint(estimator.FaceUpperLip)
	lower := v.FacePoint(estimator.FaceLowerLip)
	mouth := estimator.Point3D{
		X: (upper.X + lower.X) / 2,
		Y: (upper.Y + lower.Y) / 2,
		Z: (upper.Z + lower.Z) / 2,
	}

	if v.HasLeftHand() {
		wrist := v.LeftHandPoint(estimator.HandWrist)
		if estimator.Distance3D(wrist, mouth) < d.proximity {
			return true
		}
	}
	if v.HasRightHand() {
		wrist := v.RightHandPoint(estimator.HandWrist)
		if estimator.Distance3D(wrist, mouth) < d.proximity {
			return true
		}
	}
	return false
}

// slouchingDetector flags a head dropped toward the shoulder line.
// Approximation: shoulder-to-hip spine angle would be more robust.
type slouchingDetector struct {
	drop float64
}

func (d *slouchingDetector) Label() string { return LabelSlouching }

func (d *slouchingDetector) Detect(v *feature.Vector) bool {
	if !v.HasPose() {
		return false
	}

	nose := v.PosePoint(estimator.PoseNose)
	left := v.PosePoint(estimator.PoseLeftShoulder)
	right := v.PosePoint(estimator.PoseRightShoulder)
	shoulderY := (left.Y + right.Y) / 2

	// Y grows downward; an upright head keeps the nose well above the
	// shoulder line.
	return shoulderY-nose.Y < d.drop
}

// yawningDetector flags a mouth whose vertical opening is large relative
// to its width.
type yawningDetector struct {
	ratio float64
}

func (d *yawningDetector) Label() string { return LabelYawning }

func (d *yawningDetector) Detect(v *feature.Vector) bool {
	if !v.HasFace() {
		return false
	}

	gap := math.Abs(v.FacePoint(estimator.FaceLowerLip).Y - v.FacePoint(estimator.FaceUpperLip).Y)
	width := math.Abs(v.FacePoint(estimator.FaceMouthRight).X - v.FacePoint(estimator.FaceMouthLeft).X)
	if width < 1e-10 {
		return false
	}
	return gap/width > d.ratio
}

// distractedDetector flags a wrist raised above the shoulder line.
// Approximation: genuine fidget detection needs landmark motion across
// frames, which the per-frame contract does not carry.
type distractedDetector struct{}

func (d *distractedDetector) Label() string { return LabelDistracted }

func (d *distractedDetector) Detect(v *feature.Vector) bool {
	if !v.HasPose() {
		return false
	}

	left := v.PosePoint(estimator.PoseLeftShoulder)
	right := v.PosePoint(estimator.PoseRightShoulder)
	shoulderY := (left.Y + right.Y) / 2

	leftWrist := v.PosePoint(estimator.PoseLeftWrist)
	rightWrist := v.PosePoint(estimator.PoseRightWrist)
	return leftWrist.Y < shoulderY || rightWrist.Y < shoulderY
}

// HeuristicDetectors returns the full detector set in evaluation order,
// backed by geometric heuristics.
func HeuristicDetectors(cfg Config) []Detector {
	return []Detector{
		&lookingAwayDetector{threshold: cfg.LookAwayThreshold},
		&phoneUseDetector{proximity: cfg.PhoneProximity},
		&slouchingDetector{drop: cfg.SlouchDrop},
		&yawningDetector{ratio: cfg.YawnRatio},
		&distractedDetector{},
	}
}
