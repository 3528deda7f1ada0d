package integrators

import (
	"github.com/san-kum/lorentz/internal/dynamo"
)

// Stepper advances a particle by one fixed timestep given the field at its
// current position.
type Stepper interface {
	Step(p *dynamo.Particle, f dynamo.FieldVector, dt float64)
}

var registry = map[string]func() Stepper{
	"euler-cromer": func() Stepper { return NewEulerCromer() },
	"euler":        func() Stepper { return NewEuler() },
}

// Names lists the registered schemes, default first.
func Names() []string {
	return []string{"euler-cromer", "euler"}
}

func ByName(name string) (Stepper, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, &dynamo.ConfigError{Field: "integrator", Value: name, Err: dynamo.ErrUnknownIntegrator}
	}
	return fn(), nil
}
