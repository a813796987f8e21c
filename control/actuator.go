package control

import "sync"

// A JointHandle is one joint's read/write handle on the actuator interface:
// sensed position and velocity in, one command out. The meaning of the
// command (velocity or position) is decided by the command writer strategy,
// matching the actuator's own mode.
type JointHandle interface {
	Position() float64
	Velocity() float64
	SetCommand(cmd float64)
}

// SimActuator is an in-memory actuator used by tests and samples. It records
// commands according to its mode: a velocity-mode actuator stores commands
// as joint velocities, a position-mode one as joint positions.
type SimActuator struct {
	mu         sync.Mutex
	mode       CommandMode
	positions  []float64
	velocities []float64
}

// NewSimActuator returns a simulated actuator with the given initial joint
// positions and zero velocities.
func NewSimActuator(initial []float64, mode CommandMode) *SimActuator {
	positions := make([]float64, len(initial))
	copy(positions, initial)
	return &SimActuator{
		mode:       mode,
		positions:  positions,
		velocities: make([]float64, len(initial)),
	}
}

// Handles returns the per-joint handles, in chain order.
func (a *SimActuator) Handles() []JointHandle {
	handles := make([]JointHandle, len(a.positions))
	for i := range handles {
		handles[i] = &simJoint{actuator: a, idx: i}
	}
	return handles
}

// SetState overwrites the sensed joint state, for seeding test scenarios.
func (a *SimActuator) SetState(positions, velocities []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	copy(a.positions, positions)
	copy(a.velocities, velocities)
}

// Positions returns a copy of the current joint positions.
func (a *SimActuator) Positions() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]float64, len(a.positions))
	copy(out, a.positions)
	return out
}

// Velocities returns a copy of the current joint velocities.
func (a *SimActuator) Velocities() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]float64, len(a.velocities))
	copy(out, a.velocities)
	return out
}

type simJoint struct {
	actuator *SimActuator
	idx      int
}

func (sj *simJoint) Position() float64 {
	sj.actuator.mu.Lock()
	defer sj.actuator.mu.Unlock()
	return sj.actuator.positions[sj.idx]
}

func (sj *simJoint) Velocity() float64 {
	sj.actuator.mu.Lock()
	defer sj.actuator.mu.Unlock()
	return sj.actuator.velocities[sj.idx]
}

func (sj *simJoint) SetCommand(cmd float64) {
	sj.actuator.mu.Lock()
	defer sj.actuator.mu.Unlock()
	if sj.actuator.mode == CommandModeIntegratedPosition {
		sj.actuator.positions[sj.idx] = cmd
		return
	}
	sj.actuator.velocities[sj.idx] = cmd
}
