package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/viam-labs/cartesian-velocity/spatialmath"
)

// twoLinkArm returns a planar 2R arm in the xy plane: link lengths l1 and l2,
// both joints rotating about z.
func twoLinkArm(t *testing.T, l1, l2 float64) *Chain {
	t.Helper()
	chain, err := NewChain("planar2r", []Joint{
		{Name: "shoulder", Kind: Revolute, Axis: r3.Vector{Z: 1}, Origin: spatialmath.NewZeroPose()},
		{Name: "elbow", Kind: Revolute, Axis: r3.Vector{Z: 1}, Origin: spatialmath.NewPoseFromPoint(r3.Vector{X: l1})},
	}, spatialmath.NewPoseFromPoint(r3.Vector{X: l2}))
	test.That(t, err, test.ShouldBeNil)
	return chain
}

func TestNewChainValidation(t *testing.T) {
	tool := spatialmath.NewZeroPose()
	for _, tc := range []struct {
		name   string
		joints []Joint
		err    string
	}{
		{
			"no joints",
			nil,
			"zero joints",
		},
		{
			"zero axis",
			[]Joint{{Name: "j0", Kind: Revolute, Axis: r3.Vector{}, Origin: tool}},
			"finite, non-zero axis",
		},
		{
			"non finite axis",
			[]Joint{{Name: "j0", Kind: Revolute, Axis: r3.Vector{X: math.NaN()}, Origin: tool}},
			"finite, non-zero axis",
		},
		{
			"valid",
			[]Joint{{Name: "j0", Kind: Revolute, Axis: r3.Vector{Z: 2}, Origin: tool}},
			"",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chain, err := NewChain("test", tc.joints, tool)
			if tc.err == "" {
				test.That(t, err, test.ShouldBeNil)
				// axes are normalized on construction
				test.That(t, chain.Joint(0).Axis.Norm(), test.ShouldAlmostEqual, 1)
				test.That(t, chain.DoF(), test.ShouldEqual, len(tc.joints))
			} else {
				test.That(t, err, test.ShouldNotBeNil)
				test.That(t, err.Error(), test.ShouldContainSubstring, tc.err)
			}
		})
	}
}

func TestForwardPosition(t *testing.T) {
	chain := twoLinkArm(t, 1.0, 0.5)
	fk := NewForwardPositionSolver(chain)

	for _, tc := range []struct {
		name      string
		positions []float64
		want      r3.Vector
	}{
		{"home", []float64{0, 0}, r3.Vector{X: 1.5}},
		{"shoulder up", []float64{math.Pi / 2, 0}, r3.Vector{Y: 1.5}},
		{"elbow up", []float64{0, math.Pi / 2}, r3.Vector{X: 1, Y: 0.5}},
		{"folded", []float64{0, math.Pi}, r3.Vector{X: 0.5}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pose, err := fk.Solve(tc.positions)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, spatialmath.R3VectorAlmostEqual(pose.Point(), tc.want, 1e-9), test.ShouldBeTrue)
		})
	}

	// orientation about z is the sum of the two joint angles
	pose, err := fk.Solve([]float64{0.25, 0.5})
	test.That(t, err, test.ShouldBeNil)
	aa := pose.AxisAngles()
	test.That(t, aa.Theta*aa.RZ, test.ShouldAlmostEqual, 0.75, 1e-9)
}

func TestForwardPositionBadInput(t *testing.T) {
	chain := twoLinkArm(t, 1.0, 0.5)
	_, err := NewForwardPositionSolver(chain).Solve([]float64{0})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "does not match chain DoF")
}

func TestForwardVelocityAgainstFiniteDifference(t *testing.T) {
	chain := twoLinkArm(t, 1.0, 0.5)
	fkPos := NewForwardPositionSolver(chain)
	fkVel := NewForwardVelocitySolver(chain)

	positions := []float64{0.3, 0.9}
	velocities := []float64{0.2, -0.4}

	_, twist, err := fkVel.Solve(positions, velocities)
	test.That(t, err, test.ShouldBeNil)

	// numerically differentiate the forward position solve
	const h = 1e-7
	before, err := fkPos.Solve(positions)
	test.That(t, err, test.ShouldBeNil)
	stepped := []float64{positions[0] + h*velocities[0], positions[1] + h*velocities[1]}
	after, err := fkPos.Solve(stepped)
	test.That(t, err, test.ShouldBeNil)
	numeric := after.Point().Sub(before.Point()).Mul(1 / h)

	test.That(t, spatialmath.R3VectorAlmostEqual(twist.Linear, numeric, 1e-5), test.ShouldBeTrue)

	// for a planar arm the angular rate about z is the sum of joint rates
	test.That(t, twist.Angular.Z, test.ShouldAlmostEqual, velocities[0]+velocities[1], 1e-9)
	test.That(t, twist.Angular.X, test.ShouldAlmostEqual, 0)
	test.That(t, twist.Angular.Y, test.ShouldAlmostEqual, 0)
}

func TestPrismaticJacobian(t *testing.T) {
	chain, err := NewChain("lift", []Joint{
		{Name: "column", Kind: Prismatic, Axis: r3.Vector{Z: 1}, Origin: spatialmath.NewZeroPose()},
	}, spatialmath.NewZeroPose())
	test.That(t, err, test.ShouldBeNil)

	jac, err := chain.Jacobian([]float64{0.2})
	test.That(t, err, test.ShouldBeNil)
	r, c := jac.Dims()
	test.That(t, r, test.ShouldEqual, 6)
	test.That(t, c, test.ShouldEqual, 1)
	for row, want := range []float64{0, 0, 1, 0, 0, 0} {
		test.That(t, jac.At(row, 0), test.ShouldAlmostEqual, want)
	}

	pose, err := NewForwardPositionSolver(chain).Solve([]float64{0.2})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Point().Z, test.ShouldAlmostEqual, 0.2)
}
