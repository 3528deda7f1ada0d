package sim

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/metrics"
	"github.com/san-kum/lorentz/internal/physics"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// tickN drives n ticks 16ms apart starting just after from.
func tickN(s *Simulation, from time.Time, n int) time.Time {
	now := from
	for i := 0; i < n; i++ {
		now = now.Add(16 * time.Millisecond)
		s.Tick(now)
	}
	return now
}

var _ = Describe("Simulation", func() {
	var (
		cfg *config.Config
		s   *Simulation
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
	})

	JustBeforeEach(func() {
		var err error
		s, err = New(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("New", func() {
		It("starts idle with the configured particle and a seeded trail", func() {
			Expect(s.State()).To(Equal(Idle))
			Expect(s.Time()).To(BeZero())

			f := s.Frame()
			Expect(f.Particle.Pos).To(Equal(dynamo.Vec2{X: 0, Y: -5}))
			Expect(f.Particle.Vel).To(Equal(dynamo.Vec2{X: 5, Y: 0}))
			Expect(f.Particle.InitialKE).To(Equal(12.5))
			Expect(f.Trail).To(HaveLen(1))
			Expect(f.Field).To(Equal(physics.UniformB{Bz: 1}))
		})

		Context("with zero mass", func() {
			It("refuses the configuration", func() {
				bad := config.DefaultConfig()
				bad.Particle.Mass = 0
				_, err := New(bad)
				Expect(err).To(MatchError(dynamo.ErrZeroMass))
			})
		})

		It("copies the configuration", func() {
			cfg.Particle.X0 = 99
			Expect(s.Config().Particle.X0).To(BeZero())
		})
	})

	Describe("Tick", func() {
		It("does nothing unless running", func() {
			Expect(s.Tick(epoch)).To(BeFalse())
			Expect(s.Steps()).To(BeZero())

			s.Start()
			s.Pause()
			Expect(s.Tick(epoch.Add(time.Second))).To(BeFalse())
			Expect(s.Steps()).To(BeZero())
		})

		It("issues exactly StepsPerFrame sub-steps of Dt", func() {
			s.Start()
			Expect(s.Tick(epoch)).To(BeTrue())
			Expect(s.Steps()).To(Equal(StepsPerFrame))
			Expect(s.Time()).To(BeNumerically("~", StepsPerFrame*Dt, 1e-15))
			Expect(s.Frame().Trail).To(HaveLen(StepsPerFrame + 1))
		})

		It("advances time by Dt per sub-step regardless of frame rate", func() {
			s.Start()
			s.Tick(epoch)
			s.Tick(epoch.Add(5 * time.Second))
			Expect(s.Frame().FrameDelta).To(Equal(MaxFrameDelta))
			Expect(s.Steps()).To(Equal(2 * StepsPerFrame))

			s.Tick(epoch.Add(5*time.Second + 20*time.Millisecond))
			Expect(s.Frame().FrameDelta).To(Equal(20 * time.Millisecond))
			Expect(s.Steps()).To(Equal(3 * StepsPerFrame))
		})
	})

	Describe("Start", func() {
		It("is a no-op while running", func() {
			s.Start()
			tickN(s, epoch, 3)
			before := s.Frame()

			s.Start()
			Expect(s.State()).To(Equal(Running))
			Expect(s.Frame().Particle).To(Equal(before.Particle))
			Expect(s.Time()).To(Equal(before.Time))
		})

		It("runs from the prepared initial state when idle", func() {
			initial := s.Particle()
			s.Start()
			Expect(s.State()).To(Equal(Running))
			Expect(s.Time()).To(BeZero())
			Expect(s.Particle()).To(Equal(initial))

			now := tickN(s, epoch, 3)
			s.Reset()
			Expect(s.State()).To(Equal(Idle))

			s.Start()
			Expect(s.Time()).To(BeZero())
			Expect(s.Particle()).To(Equal(initial))
			Expect(s.Frame().Trail).To(HaveLen(1))
			tickN(s, now, 1)
			Expect(s.Steps()).To(Equal(StepsPerFrame))
		})

		It("resumes a paused run without resetting", func() {
			s.Start()
			now := tickN(s, epoch, 4)
			s.Pause()
			paused := s.Frame()
			Expect(paused.State).To(Equal(Paused))

			s.Start()
			Expect(s.Time()).To(Equal(paused.Time))
			Expect(s.Particle()).To(Equal(paused.Particle))

			tickN(s, now.Add(time.Minute), 1)
			Expect(s.Steps()).To(Equal(5 * StepsPerFrame))
		})
	})

	Describe("Pause", func() {
		It("is idempotent outside Running", func() {
			s.Pause()
			Expect(s.State()).To(Equal(Idle))

			s.Start()
			s.Pause()
			s.Pause()
			Expect(s.State()).To(Equal(Paused))
		})
	})

	Describe("Reset", func() {
		It("rebuilds the run at time zero", func() {
			s.Start()
			tickN(s, epoch, 20)
			Expect(s.Time()).To(BeNumerically(">", 0))

			s.Reset()
			f := s.Frame()
			Expect(f.State).To(Equal(Idle))
			Expect(f.Time).To(BeZero())
			Expect(f.Trail).To(Equal([]dynamo.Vec2{{X: 0, Y: -5}}))
			Expect(f.Particle.Pos).To(Equal(dynamo.Vec2{X: 0, Y: -5}))
			Expect(f.Particle.Acc).To(Equal(dynamo.Vec2{}))
		})

		It("reproduces the trajectory bit for bit", func() {
			s.Start()
			tickN(s, epoch, 150)
			first := s.Frame()

			s.Reset()
			s.Start()
			tickN(s, epoch.Add(time.Hour), 150)
			second := s.Frame()

			Expect(second.Particle).To(Equal(first.Particle))
			Expect(second.Trail).To(Equal(first.Trail))
			Expect(second.Time).To(Equal(first.Time))
		})
	})

	Describe("auto-pause", func() {
		BeforeEach(func() {
			cfg.Display.AutoPauseTime = 0.1225
		})

		It("stops at the first sub-step reaching the threshold", func() {
			s.Start()
			tickN(s, epoch, 2)
			Expect(s.State()).To(Equal(Running))

			Expect(s.Tick(epoch.Add(time.Second))).To(BeTrue())
			Expect(s.State()).To(Equal(AutoPaused))
			Expect(s.Steps()).To(Equal(25))
			Expect(s.Time()).To(BeNumerically(">=", 0.1225))
			// the triggering sub-step advances time but does not integrate
			Expect(s.Frame().Trail).To(HaveLen(1 + 24))
		})

		It("issues no further sub-steps until restarted", func() {
			s.Start()
			now := tickN(s, epoch, 3)
			stopped := s.Frame()

			tickN(s, now, 10)
			Expect(s.Frame().Particle).To(Equal(stopped.Particle))
			Expect(s.Steps()).To(Equal(stopped.Steps))
		})

		It("restarts the run on Start", func() {
			s.Start()
			tickN(s, epoch, 3)
			Expect(s.State()).To(Equal(AutoPaused))

			s.Start()
			Expect(s.State()).To(Equal(Running))
			Expect(s.Time()).To(BeZero())
			Expect(s.Particle().Pos).To(Equal(dynamo.Vec2{X: 0, Y: -5}))
		})

		It("is disabled by a zero threshold", func() {
			Expect(s.SetAutoPause(0)).To(Succeed())
			s.Start()
			tickN(s, epoch, 10)
			Expect(s.State()).To(Equal(Running))
			Expect(s.Steps()).To(Equal(100))
		})

		It("rejects a negative threshold", func() {
			Expect(s.SetAutoPause(-1)).To(MatchError(dynamo.ErrAutoPause))
		})
	})

	Describe("trail", func() {
		BeforeEach(func() {
			cfg.Display.TrailLength = 7
		})

		It("never grows beyond the configured length", func() {
			s.Start()
			now := epoch
			for i := 0; i < 20; i++ {
				now = tickN(s, now, 1)
				Expect(len(s.Frame().Trail)).To(BeNumerically("<=", 7))
			}
			Expect(s.Frame().Trail[6]).To(Equal(s.Particle().Pos))
		})

		Context("with a very long length", func() {
			BeforeEach(func() {
				cfg.Display.TrailLength = 1 << 45
			})

			It("builds and runs without reserving the whole trail", func() {
				s.Start()
				tickN(s, epoch, 5)
				Expect(s.Frame().Trail).To(HaveLen(5*StepsPerFrame + 1))
			})
		})

		It("shrinks when the length setting drops", func() {
			s.Start()
			tickN(s, epoch, 2)
			Expect(s.SetTrailLength(3)).To(Succeed())
			Expect(s.Frame().Trail).To(HaveLen(3))
			Expect(s.SetTrailLength(0)).To(MatchError(dynamo.ErrTrailLength))
		})
	})

	Describe("configuration changes", func() {
		It("keeps the previous configuration on error", func() {
			bad := config.DefaultConfig()
			bad.Field.Type = "gravity"
			Expect(s.SetConfig(bad)).To(MatchError(dynamo.ErrUnknownField))
			Expect(s.Field()).To(Equal(physics.UniformB{Bz: 1}))
		})

		It("resets when a preset is applied", func() {
			s.Start()
			tickN(s, epoch, 5)

			Expect(s.ApplyPreset(physics.KindRadialE, "repulsion")).To(Succeed())
			f := s.Frame()
			Expect(f.State).To(Equal(Idle))
			Expect(f.Time).To(BeZero())
			Expect(f.Field).To(Equal(physics.RadialE{KQ: 100}))
			Expect(f.Particle.Pos).To(Equal(dynamo.Vec2{X: -10, Y: 0}))
		})

		It("ignores the placeholder preset", func() {
			s.Start()
			tickN(s, epoch, 5)
			Expect(s.ApplyPreset(physics.KindRadialE, config.Placeholder)).To(Succeed())
			Expect(s.State()).To(Equal(Running))
		})

		It("reports unknown presets", func() {
			Expect(s.ApplyPreset(physics.KindUniformB, "spiral")).To(MatchError(dynamo.ErrUnknownPreset))
		})

		It("rejects a non-positive zoom", func() {
			Expect(s.SetZoom(0)).To(MatchError(dynamo.ErrZoom))
			Expect(s.SetZoom(8)).To(Succeed())
			Expect(s.Frame().Zoom).To(Equal(8.0))
		})
	})

	Describe("metrics", func() {
		It("observes every sub-step and resets with the run", func() {
			drift := metrics.NewEnergyDrift()
			s.AddMetric(drift)
			s.Start()
			tickN(s, epoch, 50)
			Expect(s.Metrics()).To(HaveKey("energy_drift"))
			Expect(drift.Value()).To(BeNumerically(">", 0))

			s.Reset()
			Expect(drift.Value()).To(BeZero())
		})
	})

	Describe("physics scenarios", func() {
		ctx := context.Background()

		It("closes the cyclotron orbit after one period", func() {
			Expect(s.ApplyPreset(physics.KindUniformB, "circle")).To(Succeed())
			Expect(s.RunFor(ctx, 2*math.Pi, nil)).To(Succeed())

			p := s.Particle()
			Expect(p.Pos.X).To(BeNumerically("~", 0, 0.3))
			Expect(p.Pos.Y).To(BeNumerically("~", -5, 0.3))
			Expect(p.Speed()).To(BeNumerically("~", 5, 0.15))
		})

		It("matches constant-acceleration kinematics in a uniform E field", func() {
			Expect(s.ApplyPreset(physics.KindUniformE, "acceleration")).To(Succeed())
			Expect(s.RunFor(ctx, 2, nil)).To(Succeed())

			t := s.Time()
			Expect(t).To(BeNumerically("~", 2, 1e-12))
			p := s.Particle()
			Expect(p.Vel.X).To(BeNumerically("~", t, 1e-9))
			Expect(p.Pos.X).To(BeNumerically("~", -10+t*t/2, 1e-2))
			Expect(s.Frame().Diagnostics.Work).To(BeNumerically("~", t*t/2, 1e-9))
		})
	})
})
