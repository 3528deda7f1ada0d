package dynamo

import (
	"fmt"
	"math"
)

// Vec2 is a point or direction in simulation space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string { return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y) }

// FieldVector is the field seen by the particle at one point: the in-plane
// electric components and the out-of-plane magnetic component.
type FieldVector struct {
	Ex, Ey, Bz float64
}

// E returns the electric part as a vector.
func (f FieldVector) E() Vec2 { return Vec2{f.Ex, f.Ey} }

// Particle is the test charge. Acc holds the acceleration evaluated at the
// position before the most recent step.
type Particle struct {
	Q, M      float64
	Pos       Vec2
	Vel       Vec2
	Acc       Vec2
	InitialKE float64
}

// NewParticle builds a particle with zero acceleration and captures its initial
// kinetic energy as the work baseline.
func NewParticle(q, m float64, pos, vel Vec2) Particle {
	p := Particle{Q: q, M: m, Pos: pos, Vel: vel}
	p.InitialKE = p.KineticEnergy()
	return p
}

func (p Particle) Speed() float64 { return p.Vel.Norm() }

func (p Particle) KineticEnergy() float64 {
	v2 := p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y
	return 0.5 * p.M * v2
}

func (p Particle) IsValid() bool {
	return p.Pos.IsValid() && p.Vel.IsValid() && p.Acc.IsValid()
}

// Metric accumulates a scalar over the sub-steps of one run.
type Metric interface {
	Name() string
	Observe(p Particle, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every integration sub-step.
type Observer interface {
	OnStep(p Particle, t float64)
}
