package control

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// A Cyclable runs one fixed-period control step at a time. *Controller
// satisfies this; hosts with their own periodic callback can skip the Loop
// and drive a Cyclable directly.
type Cyclable interface {
	Start(now time.Time)
	Update(now time.Time, period time.Duration)
}

// Loop drives a Cyclable at a fixed frequency from a background worker.
type Loop struct {
	logger golog.Logger
	target Cyclable
	clk    clock.Clock
	dt     time.Duration

	stop                    chan struct{}
	cancelCtx               context.Context
	cancel                  context.CancelFunc
	activeBackgroundWorkers sync.WaitGroup
	running                 bool
}

// NewLoop constructs a loop running the target at freqHz.
func NewLoop(logger golog.Logger, target Cyclable, freqHz float64) (*Loop, error) {
	return newLoop(logger, target, freqHz, clock.New())
}

func newLoop(logger golog.Logger, target Cyclable, freqHz float64, clk clock.Clock) (*Loop, error) {
	if freqHz <= 0 {
		return nil, errors.New("loop frequency must be positive")
	}
	cancelCtx, cancel := context.WithCancel(context.Background())
	return &Loop{
		logger:    logger,
		target:    target,
		clk:       clk,
		dt:        time.Duration(float64(time.Second) / freqHz),
		stop:      make(chan struct{}),
		cancelCtx: cancelCtx,
		cancel:    cancel,
	}, nil
}

// Start resets the target's cycle state and begins ticking.
func (l *Loop) Start() {
	l.logger.Debugw("starting control loop", "period", l.dt)
	l.target.Start(l.clk.Now())

	waitCh := make(chan struct{})
	l.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(func() {
		ticker := l.clk.Ticker(l.dt)
		defer ticker.Stop()
		close(waitCh)
		for {
			select {
			case <-l.cancelCtx.Done():
				return
			case <-l.stop:
				return
			case t := <-ticker.C:
				l.target.Update(t, l.dt)
			}
		}
	}, l.activeBackgroundWorkers.Done)
	<-waitCh
	l.running = true
}

// Stop halts the loop and waits for the worker to exit. Safe to call more
// than once.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.logger.Debug("stopping control loop")
	l.cancel()
	close(l.stop)
	l.activeBackgroundWorkers.Wait()
	l.running = false
}
