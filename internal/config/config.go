package config

import (
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/integrators"
	"github.com/san-kum/lorentz/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator  = "euler-cromer"
	DefaultTrailLength = 500
	DefaultZoom        = 4.0
	DefaultKQ          = -100.0
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
)

// Config is the snapshot captured when a run is (re)started: particle initial
// conditions, field parameters and display settings.
type Config struct {
	Integrator string         `yaml:"integrator"`
	Particle   ParticleConfig `yaml:"particle"`
	Field      FieldConfig    `yaml:"field"`
	Display    DisplayConfig  `yaml:"display"`
	Log        LogConfig      `yaml:"log"`
}

type ParticleConfig struct {
	Charge float64 `yaml:"charge"`
	Mass   float64 `yaml:"mass"`
	X0     float64 `yaml:"x0"`
	Y0     float64 `yaml:"y0"`
	VX0    float64 `yaml:"vx0"`
	VY0    float64 `yaml:"vy0"`
}

// FieldConfig holds the parameters of every field kind; only the ones for
// Type are read when the field model is built.
type FieldConfig struct {
	Type string  `yaml:"type"`
	Ex   float64 `yaml:"ex"`
	Ey   float64 `yaml:"ey"`
	Bz   float64 `yaml:"bz"`
	KQ   float64 `yaml:"kq"`
}

type DisplayConfig struct {
	TrailLength   int     `yaml:"trail_length"`
	Zoom          float64 `yaml:"zoom"`
	AutoPauseTime float64 `yaml:"auto_pause_time"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Particle: ParticleConfig{
			Charge: 1,
			Mass:   1,
			Y0:     -5,
			VX0:    5,
		},
		Field: FieldConfig{
			Type: string(physics.KindUniformB),
			Bz:   1,
			KQ:   DefaultKQ,
		},
		Display: DisplayConfig{
			TrailLength: DefaultTrailLength,
			Zoom:        DefaultZoom,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports the first configuration error. It never substitutes
// defaults for bad values.
func (c *Config) Validate() error {
	reals := []struct {
		name string
		v    float64
	}{
		{"particle.charge", c.Particle.Charge},
		{"particle.mass", c.Particle.Mass},
		{"particle.x0", c.Particle.X0},
		{"particle.y0", c.Particle.Y0},
		{"particle.vx0", c.Particle.VX0},
		{"particle.vy0", c.Particle.VY0},
		{"field.ex", c.Field.Ex},
		{"field.ey", c.Field.Ey},
		{"field.bz", c.Field.Bz},
		{"field.kq", c.Field.KQ},
		{"display.zoom", c.Display.Zoom},
		{"display.auto_pause_time", c.Display.AutoPauseTime},
	}
	for _, r := range reals {
		if math.IsNaN(r.v) || math.IsInf(r.v, 0) {
			return &dynamo.ConfigError{Field: r.name, Value: r.v, Err: dynamo.ErrNonFinite}
		}
	}

	if c.Particle.Mass == 0 {
		return &dynamo.ConfigError{Field: "particle.mass", Value: c.Particle.Mass, Err: dynamo.ErrZeroMass}
	}
	if _, err := physics.ParseKind(c.Field.Type); err != nil {
		return &dynamo.ConfigError{Field: "field.type", Value: c.Field.Type, Err: dynamo.ErrUnknownField}
	}
	if !slices.Contains(integrators.Names(), c.Integrator) {
		return &dynamo.ConfigError{Field: "integrator", Value: c.Integrator, Err: dynamo.ErrUnknownIntegrator}
	}
	if c.Display.TrailLength < 1 {
		return &dynamo.ConfigError{Field: "display.trail_length", Value: c.Display.TrailLength, Err: dynamo.ErrTrailLength}
	}
	if c.Display.Zoom <= 0 {
		return &dynamo.ConfigError{Field: "display.zoom", Value: c.Display.Zoom, Err: dynamo.ErrZoom}
	}
	if c.Display.AutoPauseTime < 0 {
		return &dynamo.ConfigError{Field: "display.auto_pause_time", Value: c.Display.AutoPauseTime, Err: dynamo.ErrAutoPause}
	}
	return nil
}

// FieldModel builds the field variant for Field.Type, carrying only that
// variant's parameters.
func (c *Config) FieldModel() (physics.Field, error) {
	kind, err := physics.ParseKind(c.Field.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case physics.KindUniformE:
		return physics.UniformE{Ex: c.Field.Ex, Ey: c.Field.Ey}, nil
	case physics.KindUniformB:
		return physics.UniformB{Bz: c.Field.Bz}, nil
	default:
		return physics.RadialE{KQ: c.Field.KQ}, nil
	}
}

// InitialParticle builds the particle for the start of a run.
func (c *Config) InitialParticle() dynamo.Particle {
	p := c.Particle
	return dynamo.NewParticle(p.Charge, p.Mass,
		dynamo.Vec2{X: p.X0, Y: p.Y0},
		dynamo.Vec2{X: p.VX0, Y: p.VY0})
}
