package integrators

import "github.com/san-kum/lorentz/internal/dynamo"

// EulerCromer is the semi-implicit Euler scheme: velocity is advanced first
// and the updated velocity then moves the particle.
type EulerCromer struct{}

func NewEulerCromer() *EulerCromer {
	return &EulerCromer{}
}

// Step advances p by dt under the field f, which must be evaluated at p.Pos
// before the call. p.M must be nonzero.
func (EulerCromer) Step(p *dynamo.Particle, f dynamo.FieldVector, dt float64) {
	p.Acc = lorentz(p, f)

	p.Vel.X += p.Acc.X * dt
	p.Vel.Y += p.Acc.Y * dt

	p.Pos.X += p.Vel.X * dt
	p.Pos.Y += p.Vel.Y * dt
}

// lorentz returns a = (q/m)(E + v×B) reduced to the plane with B along z.
func lorentz(p *dynamo.Particle, f dynamo.FieldVector) dynamo.Vec2 {
	qm := p.Q / p.M
	return dynamo.Vec2{
		X: qm * (f.Ex + p.Vel.Y*f.Bz),
		Y: qm * (f.Ey - p.Vel.X*f.Bz),
	}
}
