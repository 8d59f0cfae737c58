// Package timescale holds the simulation time-scale knob shared by the game loop.
//
// The level coordinator is the only writer. Everything else reads the scale
// once per frame and multiplies its delta time by it.
package timescale

// Normal is the time scale of an unpaused simulation.
const Normal = 1.0

// Clock is the shared time-scale value.
type Clock struct {
	scale float64
}

// New creates a clock running at normal speed.
func New() *Clock {
	return &Clock{scale: Normal}
}

// Scale returns the current multiplier.
func (c *Clock) Scale() float64 {
	return c.scale
}

// Set replaces the multiplier. Negative values clamp to 0.
func (c *Clock) Set(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

// Scaled returns dt multiplied by the current scale.
func (c *Clock) Scaled(dt float64) float64 {
	return dt * c.scale
}

// Frozen reports whether the simulation is stopped.
func (c *Clock) Frozen() bool {
	return c.scale == 0
}
