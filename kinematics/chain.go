// Package kinematics models a serial kinematic chain and implements the
// solvers needed for Cartesian velocity control: forward position, forward
// velocity, and damped least-squares inverse velocity.
package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/cartesian-velocity/spatialmath"
)

// JointKind enumerates the supported joint types.
type JointKind int

// The joint types of a serial chain.
const (
	Revolute JointKind = iota
	Prismatic
)

// A Joint attaches a link to the chain: a fixed transform from the previous
// joint's frame, followed by a single degree of freedom about or along Axis.
type Joint struct {
	Name string
	Kind JointKind
	// Axis is the rotation axis (revolute) or translation direction
	// (prismatic), expressed in the joint's own frame. Normalized by NewChain.
	Axis r3.Vector
	// Origin is the fixed transform from the previous joint frame (or the
	// base, for the first joint) to this joint's frame.
	Origin spatialmath.Pose
}

// A Chain is an ordered open chain of joints from a fixed base to a tool
// frame. It is immutable after construction; the solvers hold references to
// one shared Chain.
type Chain struct {
	name   string
	joints []Joint
	tool   spatialmath.Pose
}

// NewChain validates the joint descriptors and returns an immutable chain.
// The tool pose is the fixed transform from the last joint frame to the end
// effector.
func NewChain(name string, joints []Joint, tool spatialmath.Pose) (*Chain, error) {
	if len(joints) == 0 {
		return nil, errors.New("cannot create a chain with zero joints")
	}
	owned := make([]Joint, len(joints))
	copy(owned, joints)
	for i, j := range owned {
		norm := j.Axis.Norm()
		if math.IsNaN(norm) || math.IsInf(norm, 0) || norm == 0 {
			return nil, errors.Errorf("joint %q must have a finite, non-zero axis", j.Name)
		}
		owned[i].Axis = j.Axis.Mul(1 / norm)
	}
	return &Chain{name: name, joints: owned, tool: tool}, nil
}

// Name returns the name of the chain.
func (c *Chain) Name() string {
	return c.name
}

// DoF returns the number of degrees of freedom of the chain, one per joint.
func (c *Chain) DoF() int {
	return len(c.joints)
}

// Joint returns the joint descriptor at the given chain index.
func (c *Chain) Joint(i int) Joint {
	return c.joints[i]
}

// motion returns the transform contributed by the joint's degree of freedom
// at position q.
func (j Joint) motion(q float64) spatialmath.Pose {
	if j.Kind == Prismatic {
		return spatialmath.NewPoseFromPoint(j.Axis.Mul(q))
	}
	return spatialmath.NewPoseFromAxisAngle(spatialmath.NewR4AAFromAxis(q, j.Axis))
}

// checkDoF returns an error unless the input slice has one entry per joint.
func (c *Chain) checkDoF(inputs []float64) error {
	if len(inputs) != len(c.joints) {
		return errors.Errorf("given input length %d does not match chain DoF %d", len(inputs), len(c.joints))
	}
	return nil
}
