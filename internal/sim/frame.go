package sim

import (
	"time"

	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/metrics"
	"github.com/san-kum/lorentz/internal/physics"
)

// Frame is the read-only snapshot handed to renderers. Trail is a copy and may
// be kept across ticks.
type Frame struct {
	State       RunState
	Time        float64
	Steps       int
	Particle    dynamo.Particle
	Trail       []dynamo.Vec2
	Diagnostics metrics.Diagnostics
	Field       physics.Field

	Zoom          float64
	TrailLength   int
	AutoPauseTime float64
	FrameDelta    time.Duration
}

// Frame captures the current state. Diagnostics are recomputed on every call.
func (s *Simulation) Frame() Frame {
	return Frame{
		State:         s.state,
		Time:          s.Time(),
		Steps:         s.steps,
		Particle:      s.particle,
		Trail:         s.trail.Points(),
		Diagnostics:   metrics.Compute(s.particle),
		Field:         s.field,
		Zoom:          s.cfg.Display.Zoom,
		TrailLength:   s.trail.Max(),
		AutoPauseTime: s.cfg.Display.AutoPauseTime,
		FrameDelta:    s.frameDelta,
	}
}

// FPS estimates the display rate from the last clamped frame interval.
func (f Frame) FPS() float64 {
	if f.FrameDelta <= 0 {
		return 0
	}
	return float64(time.Second) / float64(f.FrameDelta)
}
