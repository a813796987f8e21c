package control

import "time"

// A CommandWriter converts a solved joint velocity vector into per-joint
// actuator commands. Implementations must write each handle exactly once and
// have no other side effects.
type CommandWriter interface {
	// Write issues one command per joint. sensed holds the pre-cycle joint
	// positions, cmd the solved joint velocities, and period the duration of
	// the current control cycle.
	Write(handles []JointHandle, sensed, cmd []float64, period time.Duration)
}

func newCommandWriter(mode CommandMode) CommandWriter {
	if mode == CommandModeIntegratedPosition {
		return integratedPositionWriter{}
	}
	return velocityWriter{}
}

// velocityWriter passes solved velocities through to a velocity-mode
// actuator, independent of the cycle period.
type velocityWriter struct{}

func (velocityWriter) Write(handles []JointHandle, sensed, cmd []float64, period time.Duration) {
	for i, h := range handles {
		h.SetCommand(cmd[i])
	}
}

// integratedPositionWriter forward-Euler integrates the solved velocity over
// one cycle and writes position setpoints, for actuators that only accept
// position commands.
type integratedPositionWriter struct{}

func (integratedPositionWriter) Write(handles []JointHandle, sensed, cmd []float64, period time.Duration) {
	dt := period.Seconds()
	for i, h := range handles {
		h.SetCommand(sensed[i] + cmd[i]*dt)
	}
}
