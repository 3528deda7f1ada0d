package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/lorentz/internal/dynamo"
)

// Softening is added to r² in the radial field so the field stays bounded at
// the source. Changing it changes close-approach dynamics.
const Softening = 0.1

// Kind names a field model the way the configuration spells it.
type Kind string

const (
	KindUniformE Kind = "uniform-e"
	KindUniformB Kind = "uniform-b"
	KindRadialE  Kind = "radial-e"
)

// Kinds lists the field kinds in display order.
var Kinds = []Kind{KindUniformE, KindUniformB, KindRadialE}

// ParseKind resolves a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", dynamo.ErrUnknownField, s)
}

func (k Kind) String() string { return string(k) }

// Next returns the kind after k in Kinds, wrapping around. Unknown kinds map
// to the first.
func (k Kind) Next() Kind {
	for i, c := range Kinds {
		if c == k {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return Kinds[0]
}

// Field is a field model. The set of implementations is closed: UniformE,
// UniformB and RadialE.
type Field interface {
	Kind() Kind
	at(pos dynamo.Vec2) dynamo.FieldVector
}

// UniformE is a constant in-plane electric field.
type UniformE struct {
	Ex, Ey float64
}

func (UniformE) Kind() Kind { return KindUniformE }

func (f UniformE) at(dynamo.Vec2) dynamo.FieldVector {
	return dynamo.FieldVector{Ex: f.Ex, Ey: f.Ey}
}

// UniformB is a constant magnetic field perpendicular to the plane.
type UniformB struct {
	Bz float64
}

func (UniformB) Kind() Kind { return KindUniformB }

func (f UniformB) at(dynamo.Vec2) dynamo.FieldVector {
	return dynamo.FieldVector{Bz: f.Bz}
}

// RadialE is the softened Coulomb field of a point charge at the origin. KQ is
// the product of the Coulomb constant and the source charge; a negative KQ
// attracts a positive test charge.
type RadialE struct {
	KQ float64
}

func (RadialE) Kind() Kind { return KindRadialE }

func (f RadialE) at(pos dynamo.Vec2) dynamo.FieldVector {
	r2 := pos.X*pos.X + pos.Y*pos.Y + Softening
	r3 := math.Pow(r2, 1.5)
	return dynamo.FieldVector{
		Ex: f.KQ * pos.X / r3,
		Ey: f.KQ * pos.Y / r3,
	}
}

// Evaluate returns the field at pos. A nil field yields the zero vector.
func Evaluate(f Field, pos dynamo.Vec2) dynamo.FieldVector {
	if f == nil {
		return dynamo.FieldVector{}
	}
	return f.at(pos)
}

// Describe renders a one-line summary for status displays.
func Describe(f Field) string {
	switch f := f.(type) {
	case UniformE:
		return fmt.Sprintf("uniform E = (%.3g, %.3g)", f.Ex, f.Ey)
	case UniformB:
		return fmt.Sprintf("uniform Bz = %.3g", f.Bz)
	case RadialE:
		return fmt.Sprintf("radial E, kQ = %.3g", f.KQ)
	default:
		return "no field"
	}
}

// CyclotronPeriod returns 2πm/|qB| for a uniform magnetic field, or 0 when the
// particle does not gyrate.
func CyclotronPeriod(f Field, q, m float64) float64 {
	b, ok := f.(UniformB)
	if !ok || q == 0 || b.Bz == 0 {
		return 0
	}
	return 2 * math.Pi * math.Abs(m/(q*b.Bz))
}
