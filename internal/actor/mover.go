// Package actor holds the built-in Go listeners used by the demo host: an
// input sampler, a velocity integrator, a camera follower, and a lifetime
// that retires other listeners. Each is one struct with one phase method, the
// same shape script listeners take on the Lua side.
package actor

import "time"

// Mover integrates a velocity at the physics rate. The step length is baked
// in at construction and must match the loop's fixed step for simulation time
// to track wall time.
type Mover struct {
	X, Y   float64
	VX, VY float64
	step   float64 // seconds per physics advance
}

func NewMover(x, y float64, step time.Duration) *Mover {
	return &Mover{X: x, Y: y, step: step.Seconds()}
}

func (m *Mover) OnPhysicsStep() {
	m.X += m.VX * m.step
	m.Y += m.VY * m.step
}
