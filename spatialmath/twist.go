package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Twist is the instantaneous velocity of a rigid body: linear velocity of a
// reference point and angular velocity about it, both in the base frame.
type Twist struct {
	Linear  r3.Vector
	Angular r3.Vector
}

// ZeroTwist returns the zero twist.
func ZeroTwist() Twist {
	return Twist{}
}

// IsZero returns whether every component of the twist is exactly zero.
func (t Twist) IsZero() bool {
	return t.Linear == (r3.Vector{}) && t.Angular == (r3.Vector{})
}

// Scale returns the twist with every component multiplied by k.
func (t Twist) Scale(k float64) Twist {
	return Twist{Linear: t.Linear.Mul(k), Angular: t.Angular.Mul(k)}
}

// Norm returns the Euclidean norm over all six components.
func (t Twist) Norm() float64 {
	return math.Sqrt(t.Linear.Norm2() + t.Angular.Norm2())
}

// TwistAlmostEqual returns whether all six components of two twists are
// within epsilon of one another.
func TwistAlmostEqual(a, b Twist, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Linear, b.Linear, epsilon) &&
		R3VectorAlmostEqual(a.Angular, b.Angular, epsilon)
}
