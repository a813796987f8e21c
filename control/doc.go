// Package control implements a closed-loop Cartesian velocity controller
// for a serial manipulator. Each fixed-period cycle reads the sensed joint
// state, resolves the desired end effector twist into joint velocities with
// a damped least-squares solve, writes the command through a configurable
// strategy (direct velocity or integrated position), and publishes a
// rate-limited end effector state estimate without ever blocking the cycle.
//
// Near-singular configurations are not errors: the solver returns a small,
// bounded command and control continues. Inbound twist commands are not
// validated either; non-finite components propagate through the solve into
// the issued command. Hosts that need stricter input handling should clamp
// or reject twists before calling SetTwist.
package control
