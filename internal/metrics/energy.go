package metrics

import (
	"math"

	"github.com/san-kum/lorentz/internal/dynamo"
)

// EnergyDrift tracks the largest deviation of kinetic energy from its value at
// the first observation, relative when that value is nonzero.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(p dynamo.Particle, t float64) {
	energy := p.KineticEnergy()

	if e.samples == 0 {
		e.initialEnergy = p.InitialKE
	}
	e.samples++

	drift := math.Abs(energy - e.initialEnergy)
	if e.initialEnergy != 0 {
		drift /= math.Abs(e.initialEnergy)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// PeakAcceleration records the largest acceleration magnitude seen.
type PeakAcceleration struct {
	name string
	peak float64
}

func NewPeakAcceleration() *PeakAcceleration {
	return &PeakAcceleration{name: "peak_acceleration"}
}

func (a *PeakAcceleration) Name() string { return a.name }

func (a *PeakAcceleration) Observe(p dynamo.Particle, t float64) {
	a.peak = math.Max(a.peak, p.Acc.Norm())
}

func (a *PeakAcceleration) Value() float64 { return a.peak }

func (a *PeakAcceleration) Reset() { a.peak = 0 }
