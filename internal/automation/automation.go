// Package automation builds sets of batch jobs: scripted scenarios, parameter
// sweeps and Monte Carlo perturbations of a base configuration.
package automation

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted list of runs sharing one duration.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Duration    float64       `yaml:"duration"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun starts from the base configuration, applies Preset if set and
// then any keys present under config.
type ScenarioRun struct {
	Name       string    `yaml:"name"`
	Field      string    `yaml:"field"`
	Preset     string    `yaml:"preset"`
	Integrator string    `yaml:"integrator"`
	Config     yaml.Node `yaml:"config"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %s has no runs", path)
	}
	if scenario.Duration <= 0 {
		return nil, fmt.Errorf("scenario %s: duration must be positive", path)
	}

	return &scenario, nil
}

// Jobs resolves every run against base. base is not modified.
func (s *Scenario) Jobs(base *config.Config) ([]sim.Job, error) {
	jobs := make([]sim.Job, 0, len(s.Runs))

	for i, run := range s.Runs {
		cfg := base.Clone()
		name := run.Name
		if name == "" {
			name = fmt.Sprintf("run-%d", i+1)
		}

		if run.Preset != "" {
			kind, _ := config.FindPreset(run.Preset)
			if run.Field != "" {
				k, err := physics.ParseKind(run.Field)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				kind = k
			}
			if _, err := config.ApplyPreset(cfg, kind, run.Preset); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		} else if run.Field != "" {
			cfg.Field.Type = run.Field
		}

		if !run.Config.IsZero() {
			if err := run.Config.Decode(cfg); err != nil {
				return nil, fmt.Errorf("%s: config: %w", name, err)
			}
		}
		if run.Integrator != "" {
			cfg.Integrator = run.Integrator
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		jobs = append(jobs, sim.Job{Name: name, Config: cfg, Integrator: cfg.Integrator})
	}

	return jobs, nil
}

var params = map[string]func(*config.Config) *float64{
	"particle.charge": func(c *config.Config) *float64 { return &c.Particle.Charge },
	"particle.mass":   func(c *config.Config) *float64 { return &c.Particle.Mass },
	"particle.x0":     func(c *config.Config) *float64 { return &c.Particle.X0 },
	"particle.y0":     func(c *config.Config) *float64 { return &c.Particle.Y0 },
	"particle.vx0":    func(c *config.Config) *float64 { return &c.Particle.VX0 },
	"particle.vy0":    func(c *config.Config) *float64 { return &c.Particle.VY0 },
	"field.ex":        func(c *config.Config) *float64 { return &c.Field.Ex },
	"field.ey":        func(c *config.Config) *float64 { return &c.Field.Ey },
	"field.bz":        func(c *config.Config) *float64 { return &c.Field.Bz },
	"field.kq":        func(c *config.Config) *float64 { return &c.Field.KQ },
}

// ParamNames lists the parameters a sweep can vary.
func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep varies one configuration value linearly.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	NumSteps int
}

// Jobs returns one job per sweep value. Values that fail validation, such as
// a zero mass, are reported as errors.
func (sw *ParameterSweep) Jobs(base *config.Config) ([]sim.Job, error) {
	field, ok := params[sw.Param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s", sw.Param)
	}
	if sw.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sw.NumSteps)
	}

	paramStep := 0.0
	if sw.NumSteps > 1 {
		paramStep = (sw.Max - sw.Min) / float64(sw.NumSteps-1)
	}

	jobs := make([]sim.Job, 0, sw.NumSteps)
	for i := 0; i < sw.NumSteps; i++ {
		v := sw.Min + float64(i)*paramStep
		cfg := base.Clone()
		*field(cfg) = v
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sw.Param, v, err)
		}
		jobs = append(jobs, sim.Job{
			Name:       fmt.Sprintf("%s=%.4g", sw.Param, v),
			Config:     cfg,
			Integrator: cfg.Integrator,
		})
	}
	return jobs, nil
}

// MonteCarloConfig perturbs the initial position and velocity uniformly by
// up to ±Perturbation per component.
type MonteCarloConfig struct {
	Perturbation float64
	NumTrials    int
	Seed         int64
}

func (mc *MonteCarloConfig) Jobs(base *config.Config) []sim.Job {
	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	jobs := make([]sim.Job, 0, mc.NumTrials)
	for trial := 0; trial < mc.NumTrials; trial++ {
		cfg := base.Clone()
		p := &cfg.Particle
		for _, v := range []*float64{&p.X0, &p.Y0, &p.VX0, &p.VY0} {
			*v += (rng.Float64() - 0.5) * 2 * mc.Perturbation
		}
		jobs = append(jobs, sim.Job{
			Name:       fmt.Sprintf("trial-%d", trial),
			Config:     cfg,
			Integrator: cfg.Integrator,
		})
	}
	return jobs
}

// Stability counts outcomes whose particle stayed bounded: no recorded escape
// and a finite final position.
func Stability(outcomes []sim.Outcome) (stable, escaped int) {
	for _, o := range outcomes {
		pos := o.Frame.Particle.Pos
		if t, ok := o.Metrics["escape_time"]; (ok && t >= 0) || !pos.IsValid() {
			escaped++
			continue
		}
		stable++
	}
	return stable, escaped
}
