package metrics

import "github.com/san-kum/lorentz/internal/dynamo"

// Escape reports the simulation time at which the particle first moved
// farther than Radius from the origin, or -1 if it never did. Non-finite
// positions count as escaped.
type Escape struct {
	name   string
	radius float64
	at     float64
}

func NewEscape(radius float64) *Escape {
	return &Escape{name: "escape_time", radius: radius, at: -1}
}

func (e *Escape) Name() string { return e.name }

func (e *Escape) Observe(p dynamo.Particle, t float64) {
	if e.at >= 0 {
		return
	}
	if !p.Pos.IsValid() || p.Pos.Norm() > e.radius {
		e.at = t
	}
}

func (e *Escape) Value() float64 { return e.at }

func (e *Escape) Reset() { e.at = -1 }
