package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and setup.
var (
	// ErrZeroMass indicates a particle mass of zero; the integrator divides by it.
	ErrZeroMass = errors.New("dynamo: particle mass must be nonzero")

	// ErrNonFinite indicates a NaN or Inf where a real number is required.
	ErrNonFinite = errors.New("dynamo: value must be a finite number")

	// ErrTrailLength indicates a trail length below one.
	ErrTrailLength = errors.New("dynamo: trail length must be at least 1")

	// ErrZoom indicates a non-positive zoom scale.
	ErrZoom = errors.New("dynamo: zoom scale must be positive")

	// ErrAutoPause indicates a negative auto-pause time.
	ErrAutoPause = errors.New("dynamo: auto-pause time must not be negative")

	// ErrUnknownField indicates a field type outside uniform-e, uniform-b, radial-e.
	ErrUnknownField = errors.New("dynamo: unknown field type")

	// ErrUnknownIntegrator indicates an integrator name that is not registered.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownPreset indicates a preset name missing from the catalog.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// ConfigError wraps a domain error with the offending configuration field.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
