package forcelayout

import "math"

// Params configures a Simulation. Zero values are replaced by the defaults
// from DefaultParams when the simulation is built. A negative CollideRadius
// disables collision.
type Params struct {
	Width  float64
	Height float64

	AlphaMin      float64
	AlphaDecay    float64
	VelocityDecay float64

	LinkDistance   float64
	LinkIterations int

	Charge      float64
	Theta       float64
	DistanceMin float64

	CollideRadius     float64
	CollideStrength   float64
	CollideIterations int

	// DragAlphaTarget is the alpha target held while at least one node is dragged.
	DragAlphaTarget float64
	// ReheatAlpha is the alpha a resize restarts the simulation with.
	ReheatAlpha float64
}

const (
	initialRadius = 10.0
	jiggleScale   = 1e-6
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// DefaultParams mirrors the d3-force defaults for a canvas of the given size.
func DefaultParams(width, height float64) Params {
	return Params{
		Width:             width,
		Height:            height,
		AlphaMin:          0.001,
		AlphaDecay:        1 - math.Pow(0.001, 1.0/300),
		VelocityDecay:     0.4,
		LinkDistance:      80,
		LinkIterations:    1,
		Charge:            -200,
		Theta:             0.9,
		DistanceMin:       1,
		CollideRadius:     50,
		CollideStrength:   1,
		CollideIterations: 1,
		DragAlphaTarget:   0.3,
		ReheatAlpha:       0.3,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams(p.Width, p.Height)
	if p.AlphaMin <= 0 {
		p.AlphaMin = d.AlphaMin
	}
	if p.AlphaDecay <= 0 || p.AlphaDecay >= 1 {
		p.AlphaDecay = d.AlphaDecay
	}
	if p.VelocityDecay <= 0 || p.VelocityDecay > 1 {
		p.VelocityDecay = d.VelocityDecay
	}
	if p.LinkDistance <= 0 {
		p.LinkDistance = d.LinkDistance
	}
	if p.LinkIterations <= 0 {
		p.LinkIterations = d.LinkIterations
	}
	if p.Charge == 0 {
		p.Charge = d.Charge
	}
	if p.Theta <= 0 {
		p.Theta = d.Theta
	}
	if p.DistanceMin <= 0 {
		p.DistanceMin = d.DistanceMin
	}
	switch {
	case p.CollideRadius == 0:
		p.CollideRadius = d.CollideRadius
	case p.CollideRadius < 0:
		p.CollideRadius = 0
	}
	if p.CollideStrength <= 0 {
		p.CollideStrength = d.CollideStrength
	}
	if p.CollideIterations <= 0 {
		p.CollideIterations = d.CollideIterations
	}
	if p.DragAlphaTarget <= 0 {
		p.DragAlphaTarget = d.DragAlphaTarget
	}
	if p.ReheatAlpha <= 0 {
		p.ReheatAlpha = d.ReheatAlpha
	}
	return p
}
