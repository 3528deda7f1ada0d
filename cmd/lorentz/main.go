package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/lorentz/internal/automation"
	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/spf13/cobra"
)

const defaultLiveLog = "lorentz.log"

// options holds every flag shared by the subcommands.
type options struct {
	configFile string
	preset     string
	theme      string

	fieldType  string
	charge     float64
	mass       float64
	x0, y0     float64
	vx0, vy0   float64
	ex, ey, bz float64
	kq         float64

	trail     int
	zoom      float64
	autoPause float64

	integrator string
	logLevel   string
	logFormat  string
	logFile    string

	svgPath      string
	frameSVGPath string

	sweepSteps int
	trials     int
	perturb    float64
	seed       int64

	// per-command durations; the flags share a name but not a default
	runTime, batchTime, compareTime float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "lorentz",
		Short:        "charged particle motion in electric and magnetic fields",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand: interactive view
			return runLive(cmd, opts)
		},
	}

	f := rootCmd.PersistentFlags()
	d := config.DefaultConfig()
	f.StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	f.StringVar(&opts.preset, "preset", "", "start from a named preset")
	f.StringVar(&opts.fieldType, "field", d.Field.Type, "field type: uniform-e, uniform-b, radial-e")
	f.Float64Var(&opts.charge, "charge", d.Particle.Charge, "particle charge q")
	f.Float64Var(&opts.mass, "mass", d.Particle.Mass, "particle mass m")
	f.Float64Var(&opts.x0, "x0", d.Particle.X0, "initial x")
	f.Float64Var(&opts.y0, "y0", d.Particle.Y0, "initial y")
	f.Float64Var(&opts.vx0, "vx0", d.Particle.VX0, "initial vx")
	f.Float64Var(&opts.vy0, "vy0", d.Particle.VY0, "initial vy")
	f.Float64Var(&opts.ex, "ex", d.Field.Ex, "uniform E x component")
	f.Float64Var(&opts.ey, "ey", d.Field.Ey, "uniform E y component")
	f.Float64Var(&opts.bz, "bz", d.Field.Bz, "uniform B z component")
	f.Float64Var(&opts.kq, "kq", d.Field.KQ, "radial field strength kQ")
	f.IntVar(&opts.trail, "trail", d.Display.TrailLength, "trail length in points")
	f.Float64Var(&opts.zoom, "zoom", d.Display.Zoom, "pixels per simulation unit")
	f.Float64Var(&opts.autoPause, "auto-pause", d.Display.AutoPauseTime, "pause at this simulation time (0 = never)")
	f.StringVar(&opts.integrator, "integrator", d.Integrator, "integrator: euler-cromer, euler")
	f.StringVar(&opts.logLevel, "log-level", d.Log.Level, "log level")
	f.StringVar(&opts.logFormat, "log-format", d.Log.Format, "log format: console, json")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to a rotated file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, opts)
		},
	}
	liveCmd.Flags().StringVar(&opts.theme, "theme", "classic", "colour theme")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive simulation in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and plot the trajectory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, opts)
		},
	}
	runCmd.Flags().Float64Var(&opts.runTime, "time", 10, "simulated duration")
	runCmd.Flags().StringVar(&opts.svgPath, "svg", "", "write the trajectory as svg")
	runCmd.Flags().StringVar(&opts.frameSVGPath, "frame-svg", "", "write the final rendered frame as svg")

	batchCmd := &cobra.Command{
		Use:   "batch [field-type]",
		Short: "run every preset concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, args)
		},
	}
	batchCmd.Flags().Float64Var(&opts.batchTime, "time", 10, "simulated duration")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare integrators on the same configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts)
		},
	}
	compareCmd.Flags().Float64Var(&opts.compareTime, "time", 20, "simulated duration")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the runs of a yaml scenario concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts, args[0])
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [min] [max]",
		Short: "vary one parameter across runs",
		Long:  "vary one parameter across runs; param is one of " + strings.Join(automation.ParamNames(), ", "),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, opts, args)
		},
	}
	sweepCmd.Flags().IntVar(&opts.sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().Float64Var(&opts.batchTime, "time", 10, "simulated duration")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb the initial state and count escapes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonteCarlo(cmd, opts)
		},
	}
	monteCarloCmd.Flags().IntVar(&opts.trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&opts.perturb, "perturb", 0.5, "maximum perturbation per component")
	monteCarloCmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 = time based)")
	monteCarloCmd.Flags().Float64Var(&opts.batchTime, "time", 10, "simulated duration")

	presetsCmd := &cobra.Command{
		Use:   "presets [field-type]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPresets(cmd, args)
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, batchCmd, compareCmd, scenarioCmd, sweepCmd, monteCarloCmd, presetsCmd, configCmd)
	return rootCmd
}

// resolveConfig layers defaults, the config file, the preset and finally any
// flag set on the command line.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed

	if opts.preset != "" {
		kind, _ := config.FindPreset(opts.preset)
		if changed("field") {
			k, err := physics.ParseKind(opts.fieldType)
			if err != nil {
				return nil, err
			}
			kind = k
		}
		if kind == "" {
			kind = physics.Kind(cfg.Field.Type)
		}
		if _, err := config.ApplyPreset(cfg, kind, opts.preset); err != nil {
			return nil, err
		}
	}

	if changed("field") {
		cfg.Field.Type = opts.fieldType
	}
	if changed("charge") {
		cfg.Particle.Charge = opts.charge
	}
	if changed("mass") {
		cfg.Particle.Mass = opts.mass
	}
	if changed("x0") {
		cfg.Particle.X0 = opts.x0
	}
	if changed("y0") {
		cfg.Particle.Y0 = opts.y0
	}
	if changed("vx0") {
		cfg.Particle.VX0 = opts.vx0
	}
	if changed("vy0") {
		cfg.Particle.VY0 = opts.vy0
	}
	if changed("ex") {
		cfg.Field.Ex = opts.ex
	}
	if changed("ey") {
		cfg.Field.Ey = opts.ey
	}
	if changed("bz") {
		cfg.Field.Bz = opts.bz
	}
	if changed("kq") {
		cfg.Field.KQ = opts.kq
	}
	if changed("trail") {
		cfg.Display.TrailLength = opts.trail
	}
	if changed("zoom") {
		cfg.Display.Zoom = opts.zoom
	}
	if changed("auto-pause") {
		cfg.Display.AutoPauseTime = opts.autoPause
	}
	if changed("integrator") {
		cfg.Integrator = opts.integrator
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if changed("log-file") {
		cfg.Log.File = opts.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
