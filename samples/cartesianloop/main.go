// Package main runs the Cartesian velocity controller against a simulated
// three-joint arm and prints the resulting end effector telemetry.
package main

import (
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"github.com/viam-labs/cartesian-velocity/control"
	"github.com/viam-labs/cartesian-velocity/kinematics"
	"github.com/viam-labs/cartesian-velocity/spatialmath"
	"github.com/viam-labs/cartesian-velocity/utils"
)

var logger = golog.NewDevelopmentLogger("cartesianloop")

func main() {
	app := &cli.App{
		Name:  "cartesianloop",
		Usage: "drive a simulated arm with a constant Cartesian twist",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "frequency",
				Value: 100,
				Usage: "control cycle frequency in Hz",
			},
			&cli.Float64Flag{
				Name:  "publish-rate",
				Value: 5,
				Usage: "telemetry frequency in Hz",
			},
			&cli.DurationFlag{
				Name:  "duration",
				Value: 3 * time.Second,
				Usage: "how long to run the loop",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func run(cCtx *cli.Context) error {
	// a planar 3R arm; redundant for the in-plane task, so the solver's
	// least-squares handling gets exercised too
	chain, err := kinematics.NewChain("planar3r", []kinematics.Joint{
		{Name: "shoulder", Kind: kinematics.Revolute, Axis: r3.Vector{Z: 1}, Origin: spatialmath.NewZeroPose()},
		{Name: "elbow", Kind: kinematics.Revolute, Axis: r3.Vector{Z: 1}, Origin: spatialmath.NewPoseFromPoint(r3.Vector{X: 0.4})},
		{Name: "wrist", Kind: kinematics.Revolute, Axis: r3.Vector{Z: 1}, Origin: spatialmath.NewPoseFromPoint(r3.Vector{X: 0.3})},
	}, spatialmath.NewPoseFromPoint(r3.Vector{X: 0.1}))
	if err != nil {
		return err
	}

	// start slightly bent to stay away from the outstretched singularity
	actuator := control.NewSimActuator([]float64{0.4, 0.6, 0.2}, control.CommandModeIntegratedPosition)
	c, err := control.NewController(chain, actuator.Handles(), utils.AttributeMap{
		"publish_rate": cCtx.Float64("publish-rate"),
		"command_mode": string(control.CommandModeIntegratedPosition),
	}, logger)
	if err != nil {
		return err
	}

	loop, err := control.NewLoop(logger, c, cCtx.Float64("frequency"))
	if err != nil {
		return err
	}

	done := make(chan struct{})
	goutils.PanicCapturingGo(func() {
		for {
			select {
			case <-done:
				return
			case sample := <-c.Telemetry():
				pt := sample.Pose.Point()
				logger.Infow("end effector state",
					"x", pt.X, "y", pt.Y, "z", pt.Z,
					"linear", sample.Twist.Linear, "angular", sample.Twist.Angular)
			}
		}
	})

	loop.Start()
	// sweep the end effector along y while rotating slowly about z
	c.SetTwist(spatialmath.Twist{Linear: r3.Vector{Y: 0.05}, Angular: r3.Vector{Z: 0.1}})

	select {
	case <-cCtx.Context.Done():
	case <-time.After(cCtx.Duration("duration")):
	}
	loop.Stop()
	close(done)
	return nil
}
