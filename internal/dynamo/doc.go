// Package dynamo provides the core value types shared by the charged-particle
// simulator.
//
// The package defines the plain data that flows between the field models,
// the integrators and the simulation clock:
//
//   - [Vec2]: a 2D vector in simulation-space units
//   - [FieldVector]: the in-plane electric field plus the out-of-plane magnetic field
//   - [Particle]: charge, mass and kinematic state of the test charge
//   - [Metric], [Observer]: per-sub-step hooks used by diagnostics
//
// # Example
//
//	p := dynamo.NewParticle(1, 1, dynamo.Vec2{X: 0, Y: -5}, dynamo.Vec2{X: 5})
//	f := physics.Evaluate(physics.UniformB{Bz: 1}, p.Pos)
//	integrators.NewEulerCromer().Step(&p, f, 0.005)
//
// # Thread Safety
//
// None of the types here synchronize. A [Particle] is owned by exactly one
// simulation and only touched from the goroutine driving it.
package dynamo
