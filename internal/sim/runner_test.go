package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/metrics"
	"github.com/san-kum/lorentz/internal/physics"
)

func TestFramesFor(t *testing.T) {
	tests := []struct {
		duration float64
		frames   int
	}{
		{0, 0},
		{-1, 0},
		{0.05, 1},
		{0.06, 2},
		{2, 40},
	}

	for _, tt := range tests {
		if got := FramesFor(tt.duration); got != tt.frames {
			t.Errorf("FramesFor(%v) = %d, want %d", tt.duration, got, tt.frames)
		}
	}
}

func TestRunFramesStopsOnAutoPause(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display.AutoPauseTime = 1

	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	frames := 0
	if err := s.RunFrames(context.Background(), 1000, func(Frame) { frames++ }); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if s.State() != AutoPaused {
		t.Errorf("state = %s, want auto-paused", s.State())
	}
	if frames > FramesFor(1)+1 {
		t.Errorf("rendered %d frames after auto-pause", frames)
	}
}

func TestRunFramesCanceled(t *testing.T) {
	s, _ := New(config.DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.RunFrames(ctx, 10, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if s.Steps() != 0 {
		t.Errorf("stepped %d times after cancel", s.Steps())
	}
}

func presetJobs(t *testing.T, kind physics.Kind) []Job {
	t.Helper()
	var jobs []Job
	for _, name := range config.ListPresets(kind) {
		cfg := config.DefaultConfig()
		if _, err := config.ApplyPreset(cfg, kind, name); err != nil {
			t.Fatal(err)
		}
		jobs = append(jobs, Job{Name: name, Config: cfg})
	}
	return jobs
}

func TestBatchRun(t *testing.T) {
	jobs := presetJobs(t, physics.KindUniformB)
	b := NewBatch(1, func() []dynamo.Metric {
		return []dynamo.Metric{metrics.NewEnergyDrift()}
	})

	outcomes, err := b.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(outcomes) != len(jobs) {
		t.Fatalf("got %d outcomes for %d jobs", len(outcomes), len(jobs))
	}

	for i, o := range outcomes {
		if o.Job.Name != jobs[i].Name {
			t.Errorf("outcome %d is %s, want %s", i, o.Job.Name, jobs[i].Name)
		}
		if o.Frame.Steps != FramesFor(1)*StepsPerFrame {
			t.Errorf("%s: %d steps", o.Job.Name, o.Frame.Steps)
		}
		if _, ok := o.Metrics["energy_drift"]; !ok {
			t.Errorf("%s: metric missing", o.Job.Name)
		}
	}

	// opposite charges gyrate in opposite senses: mirror images about y = -5
	pos, neg := outcomes[0].Frame.Particle.Pos, outcomes[1].Frame.Particle.Pos
	if math.Abs(pos.X-neg.X) > 1e-9 || math.Abs(pos.Y+neg.Y+10) > 1e-9 {
		t.Errorf("expected mirrored orbits, got %v and %v", pos, neg)
	}
}

func TestBatchMatchesSerialRun(t *testing.T) {
	jobs := presetJobs(t, physics.KindRadialE)

	outcomes, err := NewBatch(3, nil).Run(context.Background(), jobs)
	if err != nil {
		t.Fatal(err)
	}

	for i, job := range jobs {
		s, _ := New(job.Config)
		if err := s.RunFor(context.Background(), 3, nil); err != nil {
			t.Fatal(err)
		}
		if s.Particle() != outcomes[i].Frame.Particle {
			t.Errorf("%s: batch result differs from serial run", job.Name)
		}
	}
}

func TestBatchReportsBadJob(t *testing.T) {
	bad := config.DefaultConfig()
	bad.Particle.Mass = 0
	jobs := []Job{{Name: "ok", Config: config.DefaultConfig()}, {Name: "massless", Config: bad}}

	_, err := NewBatch(1, nil).Run(context.Background(), jobs)
	if !errors.Is(err, dynamo.ErrZeroMass) {
		t.Errorf("expected ErrZeroMass, got %v", err)
	}

	jobs = []Job{{Name: "rk", Config: config.DefaultConfig(), Integrator: "rk4"}}
	if _, err := NewBatch(1, nil).Run(context.Background(), jobs); err == nil {
		t.Error("expected unknown integrator error")
	}
}
