package control

import (
	"sync/atomic"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/viam-labs/cartesian-velocity/kinematics"
	"github.com/viam-labs/cartesian-velocity/spatialmath"
	"github.com/viam-labs/cartesian-velocity/utils"
)

// Controller converts a desired Cartesian end effector twist into per-joint
// velocity commands, one control cycle at a time. The host runtime owns the
// cycle: it calls Start once on activation and then Update at a fixed
// period, either directly or through a Loop.
type Controller struct {
	logger golog.Logger
	chain  *kinematics.Chain

	ikVel *kinematics.InverseVelocitySolver
	fkVel *kinematics.ForwardVelocitySolver
	fkPos *kinematics.ForwardPositionSolver

	handles []JointHandle
	writer  CommandWriter

	// desired is the single-slot handoff between the asynchronous command
	// path and the control cycle; a pointer swap can never expose a twist
	// with mixed old and new components.
	desired atomic.Pointer[spatialmath.Twist]

	positions  []float64
	velocities []float64
	cmd        []float64

	telemetry *telemetryPublisher
}

// NewController builds the three solvers over the shared chain, validates
// the attributes, and sizes every per-joint buffer to the chain's joint
// count. Any error here must prevent activation; a returned Controller is
// fully initialized and ready for Start.
func NewController(
	chain *kinematics.Chain,
	handles []JointHandle,
	attributes utils.AttributeMap,
	logger golog.Logger,
) (*Controller, error) {
	conf, err := ParseConfig(attributes)
	if err != nil {
		return nil, err
	}
	if len(handles) != chain.DoF() {
		return nil, errors.Errorf(
			"actuator has %d joints but chain %q has %d", len(handles), chain.Name(), chain.DoF())
	}

	c := &Controller{
		logger:     logger,
		chain:      chain,
		ikVel:      kinematics.NewInverseVelocitySolver(chain),
		fkVel:      kinematics.NewForwardVelocitySolver(chain),
		fkPos:      kinematics.NewForwardPositionSolver(chain),
		handles:    handles,
		writer:     newCommandWriter(conf.CommandMode),
		positions:  make([]float64, chain.DoF()),
		velocities: make([]float64, chain.DoF()),
		cmd:        make([]float64, chain.DoF()),
		telemetry:  newTelemetryPublisher(*conf.PublishRate),
	}
	c.desired.Store(&spatialmath.Twist{})
	return c, nil
}

// Start resets the cycle state. It must be called once immediately before
// the first Update after activation: the command buffer and the desired
// twist are zeroed, discarding any command delivered before activation, and
// the publish gate is armed at now. A freshly started controller commands
// zero velocity until a new twist arrives.
func (c *Controller) Start(now time.Time) {
	for i := range c.cmd {
		c.cmd[i] = 0
	}
	c.desired.Store(&spatialmath.Twist{})
	c.telemetry.reset(now)
}

// SetTwist replaces the desired Cartesian twist. Safe to call from any
// goroutine; the control cycle reads the whole twist atomically. Components
// are not validated, non-finite values pass through to the solver.
func (c *Controller) SetTwist(twist spatialmath.Twist) {
	c.desired.Store(&twist)
}

// Update runs one control cycle: read the sensed joint state, solve the
// inverse velocity problem, write the command, and estimate the end effector
// state for telemetry. Every stage is synchronous and non-blocking; no error
// crosses the cycle boundary.
func (c *Controller) Update(now time.Time, period time.Duration) {
	for i, h := range c.handles {
		c.positions[i] = h.Position()
		c.velocities[i] = h.Velocity()
	}

	desired := *c.desired.Load()
	cmd, err := c.ikVel.Solve(c.positions, desired)
	if err != nil {
		// unreachable once init has matched the joint counts
		c.logger.Errorw("inverse velocity solve failed, commanding zero", "error", err)
		for i := range c.cmd {
			c.cmd[i] = 0
		}
	} else {
		copy(c.cmd, cmd)
	}

	c.writer.Write(c.handles, c.positions, c.cmd, period)

	// the forward solves read the pre-write sensed state, so telemetry
	// reflects hardware feedback rather than the command just issued
	_, twist, err := c.fkVel.Solve(c.positions, c.velocities)
	if err != nil {
		c.logger.Errorw("forward velocity solve failed", "error", err)
		return
	}
	pose, err := c.fkPos.Solve(c.positions)
	if err != nil {
		c.logger.Errorw("forward position solve failed", "error", err)
		return
	}

	c.telemetry.publish(now, EEState{Pose: pose, Twist: twist, Timestamp: now})
}

// Telemetry returns the channel of end effector state samples, published at
// most at the configured publish_rate. Samples are dropped, never queued,
// when the consumer falls behind.
func (c *Controller) Telemetry() <-chan EEState {
	return c.telemetry.out
}
