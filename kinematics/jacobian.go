package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/viam-labs/cartesian-velocity/spatialmath"
)

// twistDim is the dimension of a Cartesian twist, three linear components
// followed by three angular ones.
const twistDim = 6

// Jacobian returns the 6xDoF geometric Jacobian of the chain at the given
// joint positions, mapping joint rates to the end effector twist in the base
// frame. Rows are ordered linear x/y/z then angular x/y/z.
func (c *Chain) Jacobian(positions []float64) (*mat.Dense, error) {
	jac, _, err := c.jacobianAndPose(positions)
	return jac, err
}

// jacobianAndPose walks the chain once, collecting each joint's world-frame
// axis and origin along the way, and returns both the Jacobian and the end
// effector pose.
func (c *Chain) jacobianAndPose(positions []float64) (*mat.Dense, spatialmath.Pose, error) {
	if err := c.checkDoF(positions); err != nil {
		return nil, spatialmath.NewZeroPose(), err
	}

	axes := make([]r3.Vector, len(c.joints))
	origins := make([]r3.Vector, len(c.joints))
	pose := spatialmath.NewZeroPose()
	for i, j := range c.joints {
		pose = spatialmath.Compose(pose, j.Origin)
		axes[i] = spatialmath.RotateVector(pose.Orientation(), j.Axis)
		origins[i] = pose.Point()
		pose = spatialmath.Compose(pose, j.motion(positions[i]))
	}
	pose = spatialmath.Compose(pose, c.tool)
	end := pose.Point()

	jac := mat.NewDense(twistDim, len(c.joints), nil)
	for i, j := range c.joints {
		var linear, angular r3.Vector
		if j.Kind == Prismatic {
			linear = axes[i]
		} else {
			linear = axes[i].Cross(end.Sub(origins[i]))
			angular = axes[i]
		}
		jac.Set(0, i, linear.X)
		jac.Set(1, i, linear.Y)
		jac.Set(2, i, linear.Z)
		jac.Set(3, i, angular.X)
		jac.Set(4, i, angular.Y)
		jac.Set(5, i, angular.Z)
	}
	return jac, pose, nil
}
