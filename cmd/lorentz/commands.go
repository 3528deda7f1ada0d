package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorentz/internal/analysis"
	"github.com/san-kum/lorentz/internal/automation"
	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/dynamo"
	"github.com/san-kum/lorentz/internal/export"
	"github.com/san-kum/lorentz/internal/gui"
	"github.com/san-kum/lorentz/internal/integrators"
	"github.com/san-kum/lorentz/internal/metrics"
	"github.com/san-kum/lorentz/internal/observability"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
	"github.com/san-kum/lorentz/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// escapeRadius is where a headless run counts the particle as gone.
	escapeRadius = 1000

	svgSize   = 800
	svgStroke = "#00ffff"
	frameCols = 100
	frameRows = 50
)

func newMetrics() []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewPeakAcceleration(),
		metrics.NewEscape(escapeRadius),
	}
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

func runLive(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	// the alternate screen owns the terminal
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLiveLog
	}
	logger, err := observability.NewLogger(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stepper, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg, sim.WithLogger(logger), sim.WithStepper(stepper))
	if err != nil {
		return err
	}

	logger.Info("live view starting",
		zap.String("field", cfg.Field.Type),
		zap.String("integrator", cfg.Integrator))
	return viz.Run(s, viz.ThemeByName(opts.theme))
}

func runGUI(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewStderrLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stepper, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg, sim.WithLogger(logger), sim.WithStepper(stepper))
	if err != nil {
		return err
	}

	logger.Info("window starting",
		zap.String("field", cfg.Field.Type),
		zap.String("integrator", cfg.Integrator))
	return gui.Run(s, logger)
}

func runHeadless(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewStderrLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stepper, err := integrators.ByName(cfg.Integrator)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg,
		sim.WithLogger(logger),
		sim.WithStepper(stepper),
		sim.WithMetrics(newMetrics()...))
	if err != nil {
		return err
	}

	rec := analysis.NewRecorder(1)
	s.AddObserver(rec)

	ctx, stop := signalContext(cmd)
	defer stop()

	var xs, ys, energy []float64
	start := time.Now()
	err = s.RunFor(ctx, opts.runTime, func(f sim.Frame) {
		xs = append(xs, f.Particle.Pos.X)
		ys = append(ys, f.Particle.Pos.Y)
		energy = append(energy, f.Diagnostics.KineticEnergy)
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	f := s.Frame()
	fmt.Fprintf(out, "field: %s, integrator: %s\n", physics.Describe(f.Field), cfg.Integrator)
	if period := physics.CyclotronPeriod(f.Field, f.Particle.Q, f.Particle.M); period > 0 {
		fmt.Fprintf(out, "cyclotron period: %.4f\n", period)
	}
	interval := rec.Interval(sim.Dt)
	if period := analysis.CrossingPeriod(rec.X(), interval); period > 0 {
		fmt.Fprintf(out, "measured period: %.4f (spectral %.4f)\n", period, analysis.DominantPeriod(rec.X(), interval))
	}
	fmt.Fprintf(out, "completed in %v (%d steps, state %s)\n\n", elapsed, f.Steps, f.State)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "time\t%.4f\n", f.Time)
	fmt.Fprintf(w, "position\t%s\n", f.Particle.Pos)
	fmt.Fprintf(w, "velocity\t%s\n", f.Particle.Vel)
	fmt.Fprintf(w, "speed\t%.6f\n", f.Diagnostics.Speed)
	fmt.Fprintf(w, "momentum\t%.6f\n", f.Diagnostics.Momentum)
	fmt.Fprintf(w, "acceleration\t%.6f\n", f.Diagnostics.Acceleration)
	fmt.Fprintf(w, "kinetic energy\t%.6f\n", f.Diagnostics.KineticEnergy)
	fmt.Fprintf(w, "work\t%+.6f\n", f.Diagnostics.Work)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nmetrics:")
	values := s.Metrics()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6g\n", name, values[name])
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"x vs frame", xs},
		{"y vs frame", ys},
		{"kinetic energy vs frame", energy},
	} {
		if len(series.data) < 2 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption)))
	}

	if plot := analysis.Plot(rec.Vel, 60, 20); plot != "" {
		fmt.Fprintln(out, "\nvelocity space (vx, vy):")
		fmt.Fprint(out, plot)
	}

	return writeImages(opts, f, rec.Pos, logger)
}

// writeImages saves the optional svg outputs of a headless run.
func writeImages(opts *options, f sim.Frame, path []dynamo.Vec2, logger *zap.Logger) error {
	if opts.svgPath != "" {
		svg := export.TrajectoryToSVG(path, svgSize, svgSize, svgStroke)
		if err := os.WriteFile(opts.svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write trajectory svg: %w", err)
		}
		logger.Info("trajectory written", zap.String("path", opts.svgPath), zap.Int("points", len(path)))
	}
	if opts.frameSVGPath != "" {
		canvas := viz.NewCanvas(frameCols, frameRows)
		viz.NewRenderer(canvas, viz.NewCamera(f.Zoom)).Draw(f)
		svg := export.CanvasToSVG(canvas, 3, svgStroke)
		if err := os.WriteFile(opts.frameSVGPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write frame svg: %w", err)
		}
		logger.Info("frame written", zap.String("path", opts.frameSVGPath))
	}
	return nil
}

func parseKinds(args []string) ([]physics.Kind, error) {
	if len(args) == 0 {
		return physics.Kinds, nil
	}
	k, err := physics.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	return []physics.Kind{k}, nil
}

func runBatch(cmd *cobra.Command, opts *options, args []string) error {
	kinds, err := parseKinds(args)
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewStderrLogger(base.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var jobs []sim.Job
	for _, kind := range kinds {
		for _, name := range config.ListPresets(kind) {
			cfg := base.Clone()
			if _, err := config.ApplyPreset(cfg, kind, name); err != nil {
				return err
			}
			jobs = append(jobs, sim.Job{
				Name:       fmt.Sprintf("%s/%s", kind, name),
				Config:     cfg,
				Integrator: cfg.Integrator,
			})
		}
	}

	outcomes, err := runJobs(cmd, opts.batchTime, jobs, logger)
	if err != nil {
		return err
	}
	return printOutcomes(cmd, outcomes)
}

func printOutcomes(cmd *cobra.Command, outcomes []sim.Outcome) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tTIME\tPOSITION\tSPEED\tKE\tENERGY DRIFT\tPEAK |a|\tESCAPE")
	for _, o := range outcomes {
		f := o.Frame
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%.4f\t%.4f\t%.3e\t%.4f\t%s\n",
			o.Job.Name, f.Time, f.Particle.Pos, f.Diagnostics.Speed, f.Diagnostics.KineticEnergy,
			o.Metrics["energy_drift"], o.Metrics["peak_acceleration"], escapeLabel(o.Metrics["escape_time"]))
	}
	return w.Flush()
}

// runJobs runs jobs on a batch with the standard metrics.
func runJobs(cmd *cobra.Command, duration float64, jobs []sim.Job, logger *zap.Logger) ([]sim.Outcome, error) {
	ctx, stop := signalContext(cmd)
	defer stop()

	start := time.Now()
	outcomes, err := sim.NewBatch(duration, newMetrics, sim.WithLogger(logger)).Run(ctx, jobs)
	if err != nil {
		return nil, err
	}
	logger.Debug("batch finished", zap.Int("jobs", len(jobs)), zap.Duration("elapsed", time.Since(start)))
	return outcomes, nil
}

func runScenario(cmd *cobra.Command, opts *options, path string) error {
	sc, err := automation.LoadScenario(path)
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewStderrLogger(base.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	jobs, err := sc.Jobs(base)
	if err != nil {
		return err
	}
	outcomes, err := runJobs(cmd, sc.Duration, jobs, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "scenario %s: %s\n\n", sc.Name, sc.Description)
	return printOutcomes(cmd, outcomes)
}

func runSweep(cmd *cobra.Command, opts *options, args []string) error {
	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("max: %w", err)
	}
	base, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewStderrLogger(base.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sweep := &automation.ParameterSweep{Param: args[0], Min: lo, Max: hi, NumSteps: opts.sweepSteps}
	jobs, err := sweep.Jobs(base)
	if err != nil {
		return err
	}
	outcomes, err := runJobs(cmd, opts.batchTime, jobs, logger)
	if err != nil {
		return err
	}
	return printOutcomes(cmd, outcomes)
}

func runMonteCarlo(cmd *cobra.Command, opts *options) error {
	base, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewStderrLogger(base.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	mc := &automation.MonteCarloConfig{Perturbation: opts.perturb, NumTrials: opts.trials, Seed: opts.seed}
	outcomes, err := runJobs(cmd, opts.batchTime, mc.Jobs(base), logger)
	if err != nil {
		return err
	}

	stable, escaped := automation.Stability(outcomes)
	fmt.Fprintf(cmd.OutOrStdout(), "trials: %d, bounded: %d, escaped beyond r=%d: %d\n",
		len(outcomes), stable, escapeRadius, escaped)
	return nil
}

func escapeLabel(t float64) string {
	if t < 0 {
		return "-"
	}
	return fmt.Sprintf("t=%.3f", t)
}

func runCompare(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewStderrLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var jobs []sim.Job
	for _, name := range integrators.Names() {
		jobs = append(jobs, sim.Job{Name: name, Config: cfg, Integrator: name})
	}

	outcomes, err := runJobs(cmd, opts.compareTime, jobs, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators for %s (dt=%.4f, duration=%.1f)\n\n",
		physics.Describe(outcomes[0].Frame.Field), sim.Dt, opts.compareTime)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tPOSITION\t|r|\tKE\tENERGY DRIFT")
	for _, o := range outcomes {
		f := o.Frame
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.6f\t%.3e\n",
			o.Job.Name, f.Particle.Pos, f.Particle.Pos.Norm(), f.Diagnostics.KineticEnergy, o.Metrics["energy_drift"])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds, err := parseKinds(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		fmt.Fprintf(out, "presets for %s:\n", kind)
		for _, name := range config.ListPresets(kind) {
			fmt.Fprintf(out, "  %-16s %s\n", name, config.GetPreset(kind, name).Title)
		}
	}
	return nil
}
