package estimator

import (
	"gocv.io/x/gocv"
)

// MockEstimator is a test implementation of the Estimator interface.
// It allows tests to control the estimation results.
type MockEstimator struct {
	landmarks *Landmarks
	err       error
}

// NewMockEstimator creates a new MockEstimator instance.
func NewMockEstimator() *MockEstimator {
	return &MockEstimator{landmarks: &Landmarks{}}
}

// SetLandmarks sets the landmarks that will be returned by Estimate.
func (m *MockEstimator) SetLandmarks(l *Landmarks) {
	m.landmarks = l
}

// SetError sets the error that will be returned by Estimate.
func (m *MockEstimator) SetError(err error) {
	m.err = err
}

// Estimate returns the pre-configured landmarks or error.
func (m *MockEstimator) Estimate(frame *gocv.Mat) (*Landmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.landmarks, nil
}

// Close is a no-op for the mock estimator.
func (m *MockEstimator) Close() error {
	return nil
}

// faceGroup builds a full 468-point face mesh with the mouth closed and
// the reference landmark centered horizontally.
func faceGroup() []Point3D {
	face := make([]Point3D, NumFaceLandmarks)
	for i := range face {
		face[i] = Point3D{X: 0.5, Y: 0.3, Z: 0.0}
	}

	// Reference landmark used for gaze deviation
	face[0] = Point3D{X: 0.5, Y: 0.35, Z: 0.0}

	// Closed mouth: small lip gap relative to mouth width
	face[FaceUpperLip] = Point3D{X: 0.5, Y: 0.40, Z: 0.0}
	face[FaceLowerLip] = Point3D{X: 0.5, Y: 0.43, Z: 0.0}
	face[FaceMouthLeft] = Point3D{X: 0.42, Y: 0.415, Z: 0.0}
	face[FaceMouthRight] = Point3D{X: 0.58, Y: 0.415, Z: 0.0}

	return face
}

// poseGroup builds a full 33-point upright pose: head up, shoulders level,
// wrists resting below the hips.
func poseGroup() []Point3D {
	pose := make([]Point3D, NumPoseLandmarks)
	for i := range pose {
		pose[i] = Point3D{X: 0.5, Y: 0.6, Z: 0.0}
	}

	pose[PoseNose] = Point3D{X: 0.5, Y: 0.30, Z: 0.0}
	pose[PoseLeftEar] = Point3D{X: 0.58, Y: 0.32, Z: 0.0}
	pose[PoseRightEar] = Point3D{X: 0.42, Y: 0.32, Z: 0.0}
	pose[PoseLeftShoulder] = Point3D{X: 0.64, Y: 0.55, Z: 0.0}
	pose[PoseRightShoulder] = Point3D{X: 0.36, Y: 0.55, Z: 0.0}
	pose[PoseLeftWrist] = Point3D{X: 0.68, Y: 0.90, Z: 0.0}
	pose[PoseRightWrist] = Point3D{X: 0.32, Y: 0.90, Z: 0.0}
	pose[PoseLeftHip] = Point3D{X: 0.58, Y: 0.85, Z: 0.0}
	pose[PoseRightHip] = Point3D{X: 0.42, Y: 0.85, Z: 0.0}

	return pose
}

// handGroupAt builds a full 21-point hand group clustered around the given
// wrist position.
func handGroupAt(wrist Point3D) []Point3D {
	hand := make([]Point3D, NumHandLandmarks)
	for i := range hand {
		hand[i] = Point3D{
			X: wrist.X + float64(i)*0.002,
			Y: wrist.Y - float64(i)*0.003,
			Z: wrist.Z,
		}
	}
	hand[HandWrist] = wrist
	return hand
}

// AttentiveLandmarks returns a preset frame of a subject facing the screen
// with an upright posture and no hands in view. No behavior should trigger.
func AttentiveLandmarks() *Landmarks {
	return &Landmarks{
		Face: faceGroup(),
		Pose: poseGroup(),
	}
}

// LookingAwayLandmarks returns a preset frame with the face turned well off
// the horizontal frame center.
func LookingAwayLandmarks() *Landmarks {
	l := AttentiveLandmarks()
	l.Face[0].X = 0.85
	return l
}

// PhoneUseLandmarks returns a preset frame with a right hand held up next
// to the mouth, as when holding a phone.
func PhoneUseLandmarks() *Landmarks {
	l := AttentiveLandmarks()
	l.RightHand = handGroupAt(Point3D{X: 0.52, Y: 0.45, Z: 0.0})
	return l
}

// SlouchingLandmarks returns a preset frame with the head dropped toward
// the shoulder line.
func SlouchingLandmarks() *Landmarks {
	l := AttentiveLandmarks()
	l.Pose[PoseNose].Y = 0.48
	return l
}

// YawningLandmarks returns a preset frame with a wide-open mouth.
func YawningLandmarks() *Landmarks {
	l := AttentiveLandmarks()
	l.Face[FaceUpperLip].Y = 0.40
	l.Face[FaceLowerLip].Y = 0.52
	return l
}

// FidgetingLandmarks returns a preset frame with a wrist raised above the
// shoulder line.
func FidgetingLandmarks() *Landmarks {
	l := AttentiveLandmarks()
	l.Pose[PoseLeftWrist] = Point3D{X: 0.66, Y: 0.40, Z: 0.0}
	return l
}
