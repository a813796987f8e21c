package control

import (
	"time"

	"github.com/viam-labs/cartesian-velocity/spatialmath"
)

// EEState is one telemetry sample: the end effector pose and twist estimated
// from the sensed joint state at Timestamp.
type EEState struct {
	Pose      spatialmath.Pose
	Twist     spatialmath.Twist
	Timestamp time.Time
}

// telemetryPublisher emits the latest end effector state at a bounded rate
// without ever blocking the control cycle. The output channel has capacity
// one; a sample that finds the channel full is dropped silently and the gate
// does not advance, so the next eligible cycle retries.
type telemetryPublisher struct {
	rate        float64
	interval    time.Duration
	out         chan EEState
	lastPublish time.Time
}

func newTelemetryPublisher(rate float64) *telemetryPublisher {
	p := &telemetryPublisher{rate: rate, out: make(chan EEState, 1)}
	if rate > 0 {
		p.interval = time.Duration(float64(time.Second) / rate)
	}
	return p
}

// reset arms the publish gate at the given activation time.
func (p *telemetryPublisher) reset(now time.Time) {
	p.lastPublish = now
}

// publish attempts a non-blocking send of the sample if the gate allows it.
// On success the gate advances by exactly one interval rather than to now,
// so jitter in individual cycles does not accumulate into rate drift.
func (p *telemetryPublisher) publish(now time.Time, sample EEState) {
	if p.rate <= 0 {
		return
	}
	if now.Before(p.lastPublish.Add(p.interval)) {
		return
	}
	select {
	case p.out <- sample:
		p.lastPublish = p.lastPublish.Add(p.interval)
	default:
	}
}
