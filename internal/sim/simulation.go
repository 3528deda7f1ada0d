package sim

import (
	"time"

	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/integrators"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/trail"
	"go.uber.org/zap"
)

const (
	// StepsPerFrame is the number of integration sub-steps per render tick.
	StepsPerFrame = 10
	// Dt is the fixed integration timestep in simulation-time units.
	Dt = 0.005
	// MaxFrameDelta caps the measured wall time between ticks.
	MaxFrameDelta = 100 * time.Millisecond
)

// Simulation owns the particle, field, trail and clock of one run. It is not
// safe for concurrent use; a single goroutine drives ticks and input.
type Simulation struct {
	cfg      *config.Config
	field    physics.Field
	stepper  integrators.Stepper
	particle dynamo.Particle
	trail    *trail.Buffer

	state RunState
	steps int

	lastTick   time.Time
	frameDelta time.Duration

	metrics   []dynamo.Metric
	observers []dynamo.Observer
	logger    *zap.Logger
}

type Option func(*Simulation)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithStepper replaces the Euler-Cromer integrator.
func WithStepper(st integrators.Stepper) Option {
	return func(s *Simulation) { s.stepper = st }
}

func WithMetrics(ms ...dynamo.Metric) Option {
	return func(s *Simulation) { s.metrics = append(s.metrics, ms...) }
}

// New validates cfg, builds the initial particle and trail and leaves the
// simulation Idle. cfg is copied.
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		stepper: integrators.NewEulerCromer(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(cfg); err != nil {
		return nil, err
	}
	s.reinit()
	return s, nil
}

func (s *Simulation) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// load validates and installs a configuration without touching run state.
func (s *Simulation) load(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	field, err := cfg.FieldModel()
	if err != nil {
		return err
	}
	tb, err := trail.New(cfg.Display.TrailLength)
	if err != nil {
		return err
	}
	s.cfg = cfg.Clone()
	s.field = field
	s.trail = tb
	return nil
}

// reinit recreates the particle from the configuration, seeds the trail and
// rewinds the clock.
func (s *Simulation) reinit() {
	s.particle = s.cfg.InitialParticle()
	s.trail.Clear(s.particle.Pos)
	s.steps = 0
	s.lastTick = time.Time{}
	s.frameDelta = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Start moves Idle, Paused or AutoPaused to Running. Idle is always already
// set up (New and Reset both reinit); from AutoPaused the run is set up
// afresh. Calling Start while Running does nothing.
func (s *Simulation) Start() {
	switch s.state {
	case Running:
		return
	case AutoPaused:
		s.reinit()
	}

	from := s.state
	s.state = Running
	s.lastTick = time.Time{}
	s.logger.Debug("simulation started",
		zap.Stringer("from", from),
		zap.Float64("t", s.Time()))
}

// Pause moves Running to Paused. In any other state it does nothing.
func (s *Simulation) Pause() {
	if s.state != Running {
		return
	}
	s.state = Paused
	s.logger.Debug("simulation paused", zap.Float64("t", s.Time()))
}

// Reset returns to Idle at time zero with the particle and trail rebuilt from
// the current configuration. The caller should render afterwards.
func (s *Simulation) Reset() {
	s.state = Idle
	s.reinit()
	s.logger.Debug("simulation reset", zap.Stringer("field", s.field.Kind()))
}

// SetConfig validates and installs cfg, then resets. On error the previous
// configuration and state are kept.
func (s *Simulation) SetConfig(cfg *config.Config) error {
	if err := s.load(cfg); err != nil {
		return err
	}
	s.Reset()
	return nil
}

// ApplyPreset loads a named preset for kind on top of the current
// configuration and resets. The placeholder leaves everything untouched.
func (s *Simulation) ApplyPreset(kind physics.Kind, name string) error {
	cfg := s.cfg.Clone()
	changed, err := config.ApplyPreset(cfg, kind, name)
	if err != nil || !changed {
		return err
	}
	s.logger.Info("preset applied", zap.Stringer("field", kind), zap.String("preset", name))
	return s.SetConfig(cfg)
}

// SetTrailLength changes the trail bound without restarting the run.
func (s *Simulation) SetTrailLength(n int) error {
	if err := s.trail.Resize(n); err != nil {
		return err
	}
	s.cfg.Display.TrailLength = n
	return nil
}

// SetAutoPause changes the auto-pause threshold; 0 disables it.
func (s *Simulation) SetAutoPause(t float64) error {
	cfg := s.cfg.Clone()
	cfg.Display.AutoPauseTime = t
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// SetZoom records the display zoom; physics is unaffected.
func (s *Simulation) SetZoom(z float64) error {
	if z <= 0 {
		return &dynamo.ConfigError{Field: "display.zoom", Value: z, Err: dynamo.ErrZoom}
	}
	s.cfg.Display.Zoom = z
	return nil
}

// Tick advances one render frame: up to StepsPerFrame sub-steps of Dt. now
// only measures the frame interval, clamped to MaxFrameDelta; it never scales
// the timestep. Tick reports whether a frame should be rendered.
func (s *Simulation) Tick(now time.Time) bool {
	if s.state != Running {
		return false
	}

	if !s.lastTick.IsZero() {
		delta := now.Sub(s.lastTick)
		if delta > MaxFrameDelta {
			delta = MaxFrameDelta
		}
		if delta < 0 {
			delta = 0
		}
		s.frameDelta = delta
	}
	s.lastTick = now

	for i := 0; i < StepsPerFrame; i++ {
		if !s.substep() {
			break
		}
	}
	return true
}

// substep advances simulation time by Dt and, unless that reaches the
// auto-pause time, integrates once. It reports whether stepping may go on.
func (s *Simulation) substep() bool {
	s.steps++
	t := s.Time()

	if limit := s.cfg.Display.AutoPauseTime; limit > 0 && t >= limit {
		s.state = AutoPaused
		s.logger.Info("simulation auto-paused",
			zap.Float64("t", t),
			zap.Float64("limit", limit),
			zap.Stringer("pos", s.particle.Pos))
		return false
	}

	fv := physics.Evaluate(s.field, s.particle.Pos)
	s.stepper.Step(&s.particle, fv, Dt)
	s.trail.Push(s.particle.Pos)

	for _, m := range s.metrics {
		m.Observe(s.particle, t)
	}
	for _, o := range s.observers {
		o.OnStep(s.particle, t)
	}
	return true
}

func (s *Simulation) State() RunState { return s.state }

// Time is the simulation time, exactly Steps()·Dt.
func (s *Simulation) Time() float64 { return float64(s.steps) * Dt }

func (s *Simulation) Steps() int { return s.steps }

func (s *Simulation) Particle() dynamo.Particle { return s.particle }

func (s *Simulation) Field() physics.Field { return s.field }

// Config returns a copy of the active configuration.
func (s *Simulation) Config() *config.Config { return s.cfg.Clone() }

// Metrics returns the current value of every registered metric by name.
func (s *Simulation) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
