package integrators

import "github.com/san-kum/lorentz/internal/dynamo"

// Euler is the explicit scheme: the position update uses the velocity from
// before the step. Kept for comparing energy behaviour against EulerCromer.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Step(p *dynamo.Particle, f dynamo.FieldVector, dt float64) {
	p.Acc = lorentz(p, f)

	p.Pos.X += p.Vel.X * dt
	p.Pos.Y += p.Vel.Y * dt

	p.Vel.X += p.Acc.X * dt
	p.Vel.Y += p.Acc.Y * dt
}
