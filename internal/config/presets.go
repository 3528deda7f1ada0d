package config

import (
	"fmt"

	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/physics"
)

// Placeholder is the name of the empty first entry of every preset list.
const Placeholder = "none"

// Preset is a named parameter bundle for one field kind. Values is nil for the
// placeholder entry.
type Preset struct {
	Name   string
	Title  string
	Values *PresetValues
}

type PresetValues struct {
	Particle ParticleConfig
	Ex, Ey   float64
	Bz       float64
	KQ       float64
}

var placeholder = Preset{Name: Placeholder, Title: "select example..."}

var Presets = map[physics.Kind][]Preset{
	physics.KindUniformE: {
		placeholder,
		{Name: "parabolic", Title: "Parabolic shot", Values: &PresetValues{
			Particle: ParticleConfig{Charge: 1, Mass: 1, X0: -10, Y0: 0, VX0: 5, VY0: 10},
			Ex:       0, Ey: -2,
		}},
		{Name: "acceleration", Title: "Simple acceleration", Values: &PresetValues{
			Particle: ParticleConfig{Charge: 1, Mass: 1, X0: -10, Y0: 0, VX0: 0, VY0: 0},
			Ex:       1, Ey: 0,
		}},
	},
	physics.KindUniformB: {
		placeholder,
		{Name: "circle", Title: "Perfect circle (q=1)", Values: &PresetValues{
			Particle: ParticleConfig{Charge: 1, Mass: 1, X0: 0, Y0: -5, VX0: 5, VY0: 0},
			Bz:       1,
		}},
		{Name: "circle-negative", Title: "Opposite circle (q=-1)", Values: &PresetValues{
			Particle: ParticleConfig{Charge: -1, Mass: 1, X0: 0, Y0: -5, VX0: 5, VY0: 0},
			Bz:       1,
		}},
		{Name: "circle-fast", Title: "Fast circle (v=10)", Values: &PresetValues{
			Particle: ParticleConfig{Charge: 1, Mass: 1, X0: 0, Y0: -10, VX0: 10, VY0: 0},
			Bz:       1,
		}},
	},
	physics.KindRadialE: {
		placeholder,
		{Name: "circular-orbit", Title: "Circular orbit (attraction)", Values: &PresetValues{
			Particle: ParticleConfig{Charge: 1, Mass: 1, X0: 0, Y0: 10, VX0: 3.16, VY0: 0},
			KQ:       -100,
		}},
		{Name: "elliptic-orbit", Title: "Elliptic orbit", Values: &PresetValues{
			Particle: ParticleConfig{Charge: 1, Mass: 1, X0: 0, Y0: 10, VX0: 5, VY0: 0},
			KQ:       -100,
		}},
		{Name: "repulsion", Title: "Repulsion trajectory", Values: &PresetValues{
			Particle: ParticleConfig{Charge: 1, Mass: 1, X0: -10, Y0: 0, VX0: 5, VY0: 0},
			KQ:       100,
		}},
	},
}

func GetPreset(kind physics.Kind, name string) *Preset {
	for i := range Presets[kind] {
		if Presets[kind][i].Name == name {
			return &Presets[kind][i]
		}
	}
	return nil
}

// ListPresets returns the selectable preset names for kind, in catalog order,
// without the placeholder.
func ListPresets(kind physics.Kind) []string {
	list, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(list))
	for _, p := range list {
		if p.Values != nil {
			names = append(names, p.Name)
		}
	}
	return names
}

// FindPreset looks name up across every field kind.
func FindPreset(name string) (physics.Kind, *Preset) {
	for _, kind := range physics.Kinds {
		if p := GetPreset(kind, name); p != nil && p.Values != nil {
			return kind, p
		}
	}
	return "", nil
}

// ApplyPreset overwrites the particle and the kind's field parameters with the
// preset's values and selects kind. Applying the placeholder changes nothing
// and reports false.
func ApplyPreset(cfg *Config, kind physics.Kind, name string) (bool, error) {
	p := GetPreset(kind, name)
	if p == nil {
		return false, &dynamo.ConfigError{
			Field: "preset",
			Value: fmt.Sprintf("%s/%s", kind, name),
			Err:   dynamo.ErrUnknownPreset,
		}
	}
	if p.Values == nil {
		return false, nil
	}

	v := p.Values
	cfg.Particle = v.Particle
	cfg.Field.Type = string(kind)
	switch kind {
	case physics.KindUniformE:
		cfg.Field.Ex, cfg.Field.Ey = v.Ex, v.Ey
	case physics.KindUniformB:
		cfg.Field.Bz = v.Bz
	case physics.KindRadialE:
		cfg.Field.KQ = v.KQ
	}
	return true, nil
}
