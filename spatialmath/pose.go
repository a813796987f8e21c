// Package spatialmath defines the spatial math primitives used by the
// kinematics solvers: rigid-body poses backed by dual quaternions, axis
// angle orientations, and Cartesian twists.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a rigid transformation in 3D space, a rotation followed by
// a translation. It is backed by a unit dual quaternion; the zero value of
// the struct is NOT a valid pose, use NewZeroPose instead.
type Pose struct {
	q dualquat.Number
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return Pose{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewPoseFromPoint returns a pose with the given translation and no rotation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return NewPose(pt, &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1})
}

// NewPoseFromAxisAngle returns a pose with no translation rotated by the
// given axis angle.
func NewPoseFromAxisAngle(aa *R4AA) Pose {
	return NewPose(r3.Vector{}, aa)
}

// NewPose returns a pose rotated by the given axis angle, then translated by
// the given point.
func NewPose(pt r3.Vector, aa *R4AA) Pose {
	rot := aa.ToQuat()
	// The dual part encodes translation as 0.5 * t * rot, with t the pure
	// quaternion (0, x, y, z).
	t := quat.Number{Imag: pt.X, Jmag: pt.Y, Kmag: pt.Z}
	return Pose{dualquat.Number{
		Real: rot,
		Dual: quat.Scale(0.5, quat.Mul(t, rot)),
	}}
}

// Compose returns the pose equivalent to applying b in the frame of a.
func Compose(a, b Pose) Pose {
	return Pose{dualquat.Mul(a.q, b.q)}
}

// Point returns the translation of the pose.
func (p Pose) Point() r3.Vector {
	// Multiplying by the dual quaternion conjugate leaves an identity real
	// part and the world-frame translation in the dual part.
	c := dualquat.Mul(p.q, dualquat.Conj(p.q))
	return r3.Vector{X: c.Dual.Imag, Y: c.Dual.Jmag, Z: c.Dual.Kmag}
}

// Orientation returns the rotation quaternion of the pose.
func (p Pose) Orientation() quat.Number {
	return p.q.Real
}

// AxisAngles returns the orientation of the pose in axis angle representation.
func (p Pose) AxisAngles() R4AA {
	return QuatToR4AA(p.q.Real)
}

// TransformPoint rotates and translates the given point by the pose.
func (p Pose) TransformPoint(pt r3.Vector) r3.Vector {
	return RotateVector(p.q.Real, pt).Add(p.Point())
}

// RotateVector rotates a vector by a unit rotation quaternion.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	pure := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(quat.Mul(q, pure), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

// QuatNorm returns the norm of the imaginary parts of a quaternion.
func QuatNorm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// PoseAlmostEqual returns whether two poses have points and orientations
// within epsilon of one another. The orientation comparison allows the two
// rotation quaternions to differ in sign.
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	if !R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) {
		return false
	}
	qa, qb := a.Orientation(), b.Orientation()
	dot := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	return 1-math.Abs(dot) < epsilon
}

// R3VectorAlmostEqual returns whether all components of two vectors are
// within epsilon of one another.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}
