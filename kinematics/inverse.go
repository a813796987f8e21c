package kinematics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/viam-labs/cartesian-velocity/spatialmath"
)

const (
	// defaultDamping is the λ of the damped least-squares pseudo-inverse.
	// Singular value gains are σ/(σ²+λ²), so the worst-case amplification of
	// any twist component is bounded by 1/(2λ).
	defaultDamping = 1e-2

	// singularValueFloor is the σ below which a direction is treated as
	// strictly unreachable and its subspace contributes nothing to the
	// solution, rather than letting floating point noise steer the joints.
	singularValueFloor = 1e-9
)

// InverseVelocitySolver maps a desired Cartesian twist to the joint velocity
// vector that best realizes it at the current configuration, in a least
// squares sense. Stateless given the chain; safe for reuse across cycles.
type InverseVelocitySolver struct {
	chain   *Chain
	damping float64
}

// NewInverseVelocitySolver returns an inverse velocity solver over the chain.
func NewInverseVelocitySolver(chain *Chain) *InverseVelocitySolver {
	return &InverseVelocitySolver{chain: chain, damping: defaultDamping}
}

// Solve computes the geometric Jacobian at the given positions and solves
// the least-squares system J·q̇ = twist through a singular value
// decomposition with damped singular values. Near-singular configurations
// degrade to small, bounded commands instead of diverging, and exactly
// singular directions are projected out; the solver never reports an error
// for a degenerate configuration.
func (s *InverseVelocitySolver) Solve(positions []float64, desired spatialmath.Twist) ([]float64, error) {
	jac, err := s.chain.Jacobian(positions)
	if err != nil {
		return nil, err
	}

	dof := s.chain.DoF()
	out := make([]float64, dof)

	var svd mat.SVD
	if ok := svd.Factorize(jac, mat.SVDThin); !ok {
		// Non-finite inputs are the only way the factorization fails to
		// converge. Commanding zero keeps the cycle alive.
		return out, nil
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	b := [twistDim]float64{
		desired.Linear.X, desired.Linear.Y, desired.Linear.Z,
		desired.Angular.X, desired.Angular.Y, desired.Angular.Z,
	}
	for k, sv := range sigma {
		if sv < singularValueFloor {
			continue
		}
		var proj float64
		for r := 0; r < twistDim; r++ {
			proj += u.At(r, k) * b[r]
		}
		gain := sv / (sv*sv + s.damping*s.damping)
		for j := 0; j < dof; j++ {
			out[j] += v.At(j, k) * gain * proj
		}
	}
	return out, nil
}
