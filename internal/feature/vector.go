// Package feature converts a frame's landmark groups into the fixed-length
// numeric vector consumed by the behavior detectors.
package feature

import "github.com/meghnad/studylens/internal/estimator"

// Block offsets and sizes within the flattened vector. Groups are laid out
// point-major (x,y,z per point) in fixed order: face, pose, left hand,
// right hand. An absent group contributes a zero block of its nominal size.
const (
	FaceOffset      = 0
	FaceSize        = estimator.NumFaceLandmarks * 3
	PoseOffset      = FaceOffset + FaceSize
	PoseSize        = estimator.NumPoseLandmarks * 3
	LeftHandOffset  = PoseOffset + PoseSize
	LeftHandSize    = estimator.NumHandLandmarks * 3
	RightHandOffset = LeftHandOffset + LeftHandSize
	RightHandSize   = estimator.NumHandLandmarks * 3

	// VectorSize is the total length of every feature vector: 1629.
	VectorSize = FaceSize + PoseSize + LeftHandSize + RightHandSize
)

// Vector is one frame's flattened landmark representation. The values are
// always exactly VectorSize floats; presence flags record which groups the
// estimator actually detected, since a zero block alone cannot distinguish
// an absent group from one detected at the origin.
type Vector struct {
	values [VectorSize]float64

	facePresent      bool
	posePresent      bool
	leftHandPresent  bool
	rightHandPresent bool
}

// Build constructs a feature vector from one frame's landmark groups.
// Absence of any group is expected input, never an error: the group's
// block is left zero-filled at its nominal size.
func Build(l *estimator.Landmarks) *Vector {
	v := &Vector{}
	if l == nil {
		return v
	}

	v.facePresent = fillBlock(v.values[FaceOffset:FaceOffset+FaceSize], l.Face)
	v.posePresent = fillBlock(v.values[PoseOffset:PoseOffset+PoseSize], l.Pose)
	v.leftHandPresent = fillBlock(v.values[LeftHandOffset:LeftHandOffset+LeftHandSize], l.LeftHand)
	v.rightHandPresent = fillBlock(v.values[RightHandOffset:RightHandOffset+RightHandSize], l.RightHand)

	return v
}

// fillBlock flattens points into block and reports whether the group was
// present. The block size is fixed at the group's nominal maximum; a group
// with fewer points than nominal leaves the tail zero-filled.
func fillBlock(block []float64, points []estimator.Point3D) bool {
	if len(points) == 0 {
		return false
	}
	for i, p := range points {
		if (i+1)*3 > len(block) {
			break
		}
		block[i*3] = p.X
		block[i*3+1] = p.Y
		block[i*3+2] = p.Z
	}
	return true
}

// Values returns the full flattened vector, always VectorSize long.
func (v *Vector) Values() []float64 {
	return v.values[:]
}

// HasFace reports whether the face group was present when building.
func (v *Vector) HasFace() bool { return v.facePresent }

// HasPose reports whether the pose group was present when building.
func (v *Vector) HasPose() bool { return v.posePresent }

// HasLeftHand reports whether the left hand group was present when building.
func (v *Vector) HasLeftHand() bool { return v.leftHandPresent }

// HasRightHand reports whether the right hand group was present when building.
func (v *Vector) HasRightHand() bool { return v.rightHandPresent }

// FacePoint returns face landmark i as a point.
func (v *Vector) FacePoint(i int) estimator.Point3D {
	return v.pointAt(FaceOffset + i*3)
}

// PosePoint returns pose landmark i as a point.
func (v *Vector) PosePoint(i int) estimator.Point3D {
	return v.pointAt(PoseOffset + i*3)
}

// LeftHandPoint returns left hand landmark i as a point.
func (v *Vector) LeftHandPoint(i int) estimator.Point3D {
	return v.pointAt(LeftHandOffset + i*3)
}

// RightHandPoint returns right hand landmark i as a point.
func (v *Vector) RightHandPoint(i int) estimator.Point3D {
	return v.pointAt(RightHandOffset + i*3)
}

func (v *Vector) pointAt(offset int) estimator.Point3D {
	return estimator.Point3D{
		X: v.values[offset],
		Y: v.values[offset+1],
		Z: v.values[offset+2],
	}
}
