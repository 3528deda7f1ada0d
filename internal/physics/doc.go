// Package physics provides the field models acting on the test charge.
//
// A [Field] is a closed sum type with one variant per model, each carrying
// only its own parameters:
//
//   - [UniformE]: constant in-plane electric field
//   - [UniformB]: constant magnetic field along z
//   - [RadialE]: softened Coulomb field of a charge at the origin
//
// [Evaluate] is pure and never fails; a nil field evaluates to zero.
//
//	f := physics.RadialE{KQ: -100}
//	fv := physics.Evaluate(f, dynamo.Vec2{X: 0, Y: 10})
package physics
