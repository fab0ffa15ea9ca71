// Package estimator provides body/face/hand landmark estimation for attentiveness detection.
package estimator

import "math"

// Landmark counts per region following MediaPipe Holistic convention.
// See: https://developers.google.com/mediapipe/solutions/vision/holistic_landmarker
const (
	NumFaceLandmarks = 468
	NumPoseLandmarks = 33
	NumHandLandmarks = 21
)

// Pose landmark indices used by the behavior heuristics.
const (
	PoseNose          = 0
	PoseLeftEar       = 7
	PoseRightEar      = 8
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLeftWrist     = 15
	PoseRightWrist    = 16
	PoseLeftHip       = 23
	PoseRightHip      = 24
)

// Face mesh indices used by the behavior heuristics.
const (
	FaceUpperLip   = 13
	FaceLowerLip   = 14
	FaceMouthLeft  = 61
	FaceMouthRight = 291
)

// HandWrist is the wrist index within a hand landmark group.
const HandWrist = 0

// Point3D represents a 3D point in space with x, y, z coordinates.
// X and Y are normalized image coordinates in [0,1]; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Landmarks holds one frame's landmark groups. A nil group means the
// estimator found nothing for that region; absence is an expected state,
// not an error.
type Landmarks struct {
	Face      []Point3D `json:"face,omitempty"`
	Pose      []Point3D `json:"pose,omitempty"`
	LeftHand  []Point3D `json:"left_hand,omitempty"`
	RightHand []Point3D `json:"right_hand,omitempty"`
}

// HasFace reports whether a face group was detected for this frame.
func (l *Landmarks) HasFace() bool { return len(l.Face) > 0 }

// HasPose reports whether a pose group was detected for this frame.
func (l *Landmarks) HasPose() bool { return len(l.Pose) > 0 }

// HasLeftHand reports whether a left hand group was detected for this frame.
func (l *Landmarks) HasLeftHand() bool { return len(l.LeftHand) > 0 }

// HasRightHand reports whether a right hand group was detected for this frame.
func (l *Landmarks) HasRightHand() bool { return len(l.RightHand) > 0 }

// Distance3D calculates the Euclidean distance between two 3D points.
func Distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
