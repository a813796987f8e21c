package control

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestTelemetryGate(t *testing.T) {
	p := newTelemetryPublisher(10) // 100ms interval
	t0 := time.Now()
	p.reset(t0)

	// below the interval nothing is emitted
	p.publish(t0.Add(50*time.Millisecond), EEState{})
	select {
	case <-p.out:
		t.Fatal("published before the interval elapsed")
	default:
	}

	// at the interval boundary one sample goes out and the gate advances by
	// exactly one interval
	p.publish(t0.Add(100*time.Millisecond), EEState{Timestamp: t0.Add(100 * time.Millisecond)})
	sample := <-p.out
	test.That(t, sample.Timestamp, test.ShouldEqual, t0.Add(100*time.Millisecond))
	test.That(t, p.lastPublish, test.ShouldEqual, t0.Add(100*time.Millisecond))
}

func TestTelemetryBusyChannelSkips(t *testing.T) {
	p := newTelemetryPublisher(10)
	t0 := time.Now()
	p.reset(t0)

	p.publish(t0.Add(100*time.Millisecond), EEState{})
	// the channel is now full; an eligible publish is skipped and the gate
	// holds still so the next cycle can retry
	p.publish(t0.Add(200*time.Millisecond), EEState{})
	test.That(t, p.lastPublish, test.ShouldEqual, t0.Add(100*time.Millisecond))
	<-p.out

	p.publish(t0.Add(210*time.Millisecond), EEState{Timestamp: t0.Add(210 * time.Millisecond)})
	sample := <-p.out
	test.That(t, sample.Timestamp, test.ShouldEqual, t0.Add(210*time.Millisecond))
}

func TestTelemetryDisabled(t *testing.T) {
	for _, rate := range []float64{0, -5} {
		p := newTelemetryPublisher(rate)
		t0 := time.Now()
		p.reset(t0)
		for i := 0; i < 100; i++ {
			p.publish(t0.Add(time.Duration(i)*time.Second), EEState{})
		}
		select {
		case <-p.out:
			t.Fatal("telemetry should be disabled")
		default:
		}
	}
}
