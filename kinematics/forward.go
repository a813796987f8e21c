package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/viam-labs/cartesian-velocity/spatialmath"
)

// ForwardPositionSolver maps joint positions to the end effector pose.
type ForwardPositionSolver struct {
	chain *Chain
}

// NewForwardPositionSolver returns a forward position solver over the chain.
func NewForwardPositionSolver(chain *Chain) *ForwardPositionSolver {
	return &ForwardPositionSolver{chain: chain}
}

// Solve composes the fixed and joint transforms from base to tool. Closed
// form; errors only on an input length mismatch.
func (s *ForwardPositionSolver) Solve(positions []float64) (spatialmath.Pose, error) {
	if err := s.chain.checkDoF(positions); err != nil {
		return spatialmath.NewZeroPose(), err
	}
	pose := spatialmath.NewZeroPose()
	for i, j := range s.chain.joints {
		pose = spatialmath.Compose(pose, j.Origin)
		pose = spatialmath.Compose(pose, j.motion(positions[i]))
	}
	return spatialmath.Compose(pose, s.chain.tool), nil
}

// ForwardVelocitySolver maps joint positions and velocities to the end
// effector pose and Cartesian twist.
type ForwardVelocitySolver struct {
	chain *Chain
}

// NewForwardVelocitySolver returns a forward velocity solver over the chain.
func NewForwardVelocitySolver(chain *Chain) *ForwardVelocitySolver {
	return &ForwardVelocitySolver{chain: chain}
}

// Solve accumulates the per-joint Jacobian contributions J(q)·q̇ along the
// chain and returns the resulting twist together with the end effector pose.
func (s *ForwardVelocitySolver) Solve(positions, velocities []float64) (spatialmath.Pose, spatialmath.Twist, error) {
	if err := s.chain.checkDoF(velocities); err != nil {
		return spatialmath.NewZeroPose(), spatialmath.ZeroTwist(), err
	}
	jac, pose, err := s.chain.jacobianAndPose(positions)
	if err != nil {
		return spatialmath.NewZeroPose(), spatialmath.ZeroTwist(), err
	}

	var out mat.VecDense
	out.MulVec(jac, mat.NewVecDense(len(velocities), velocities))
	twist := spatialmath.Twist{
		Linear:  r3.Vector{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)},
		Angular: r3.Vector{X: out.AtVec(3), Y: out.AtVec(4), Z: out.AtVec(5)},
	}
	return pose, twist, nil
}
