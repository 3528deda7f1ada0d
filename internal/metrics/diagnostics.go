package metrics

import (
	"math"

	"github.com/san-kum/lorentz/internal/dynamo"
)

// Diagnostics are the derived quantities shown next to the trajectory.
type Diagnostics struct {
	Speed         float64
	Momentum      float64
	Acceleration  float64
	KineticEnergy float64
	Work          float64
}

// Compute derives the diagnostics from the current particle. Work is measured
// against the kinetic energy captured at setup.
func Compute(p dynamo.Particle) Diagnostics {
	speed := math.Hypot(p.Vel.X, p.Vel.Y)
	ke := 0.5 * p.M * speed * speed
	return Diagnostics{
		Speed:         speed,
		Momentum:      p.M * speed,
		Acceleration:  math.Hypot(p.Acc.X, p.Acc.Y),
		KineticEnergy: ke,
		Work:          ke - p.InitialKE,
	}
}
