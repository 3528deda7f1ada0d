// Package gui is the raylib window front end. It draws the vector scene built
// by viz and shares the terminal view's camera model.
package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
	"github.com/san-kum/lorentz/internal/viz"
	"go.uber.org/zap"
)

const (
	windowW = 1280
	windowH = 720

	// pixelScale converts the configured zoom, tuned for braille cells, to
	// window pixels.
	pixelScale = 4
	zoomStep   = 1.1
	maxTrail   = 1 << 20
)

var (
	colBg      = rl.NewColor(10, 10, 10, 255)
	colGrid    = rl.NewColor(30, 30, 30, 255)
	colAxis    = rl.NewColor(70, 70, 70, 255)
	colField   = rl.NewColor(90, 90, 120, 255)
	colTrail   = rl.NewColor(0, 200, 220, 255)
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
	colSelect  = rl.NewColor(255, 255, 255, 255)
	colPaused  = rl.NewColor(255, 170, 0, 255)
	colError   = rl.NewColor(255, 68, 68, 255)

	layerColors = map[viz.Layer]rl.Color{
		viz.LayerGrid:     colGrid,
		viz.LayerAxis:     colAxis,
		viz.LayerField:    colField,
		viz.LayerTrail:    colTrail,
		viz.LayerParticle: colSelect,
	}
)

type App struct {
	sim    *sim.Simulation
	camera *viz.Camera
	logger *zap.Logger
	err    error
}

func NewApp(s *sim.Simulation, logger *zap.Logger) *App {
	return &App{
		sim:    s,
		camera: viz.NewCamera(s.Config().Display.Zoom * pixelScale),
		logger: logger,
	}
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulation, logger *zap.Logger) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowW, windowH, "lorentz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	a := NewApp(s, logger)
	for !rl.WindowShouldClose() {
		if !a.Update(time.Now()) {
			break
		}
		a.Draw()
	}
	logger.Info("window closed", zap.Float64("t", s.Time()), zap.Int("steps", s.Steps()))
	return nil
}

// Update handles input and advances the simulation. It reports false once
// the user asks to quit.
func (a *App) Update(now time.Time) bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.err = nil
		if a.sim.State() == sim.Running {
			a.sim.Pause()
		} else {
			a.sim.Start()
		}
	case rl.IsKeyPressed(rl.KeyR):
		a.err = nil
		a.sim.Reset()
	case rl.IsKeyPressed(rl.KeyF):
		cfg := a.sim.Config()
		cfg.Field.Type = string(a.sim.Field().Kind().Next())
		a.err = a.sim.SetConfig(cfg)
	case rl.IsKeyPressed(rl.KeyC):
		a.camera.Center()
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.resizeTrail(a.sim.Frame().TrailLength / 2)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.resizeTrail(a.sim.Frame().TrailLength * 2)
	case rl.IsKeyPressed(rl.KeyEqual):
		a.zoom(zoomStep)
	case rl.IsKeyPressed(rl.KeyMinus):
		a.zoom(1 / zoomStep)
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) || rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.camera.Pan(float64(delta.X), float64(delta.Y))
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		a.zoom(zoomStep)
	} else if wheel < 0 {
		a.zoom(1 / zoomStep)
	}

	a.sim.Tick(now)
	return true
}

func (a *App) zoom(f float64) {
	a.camera.ZoomBy(f)
	a.err = a.sim.SetZoom(a.camera.Zoom / pixelScale)
}

func (a *App) resizeTrail(n int) {
	a.err = a.sim.SetTrailLength(min(max(n, 1), maxTrail))
}

func (a *App) Draw() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	f := a.sim.Frame()
	scene := viz.BuildScene(f, a.camera, w, h, viz.DefaultSceneStyle)

	rl.BeginDrawing()
	rl.ClearBackground(colBg)
	for _, l := range viz.Layers {
		col := layerColors[l]
		for _, s := range scene.Segments {
			if s.Layer != l {
				continue
			}
			thick := float32(1)
			if l == viz.LayerTrail {
				thick = 2
			}
			rl.DrawLineEx(rl.NewVector2(float32(s.X0), float32(s.Y0)), rl.NewVector2(float32(s.X1), float32(s.Y1)), thick, col)
		}
		for _, m := range scene.Marks {
			if m.Layer != l {
				continue
			}
			if m.Filled {
				rl.DrawCircleV(rl.NewVector2(float32(m.X), float32(m.Y)), float32(m.R), col)
			} else {
				rl.DrawCircleLines(int32(m.X), int32(m.Y), float32(m.R), col)
			}
		}
	}
	a.drawHUD(f, int32(h))
	rl.EndDrawing()
}

func (a *App) drawHUD(f sim.Frame, h int32) {
	rl.DrawText("lorentz", 30, 30, 24, colSelect)
	rl.DrawText(":: "+physics.Describe(f.Field), 140, 34, 16, colText)

	status, col := "IDLE", colTextDim
	switch f.State {
	case sim.Running:
		status, col = "RUNNING", colSelect
	case sim.Paused, sim.AutoPaused:
		status, col = "PAUSED", colPaused
	}
	rl.DrawText(status, 30, 64, 16, col)

	d := f.Diagnostics
	lines := []string{
		fmt.Sprintf("t      %.3f", f.Time),
		fmt.Sprintf("pos    %s", f.Particle.Pos),
		fmt.Sprintf("speed  %.4g", d.Speed),
		fmt.Sprintf("KE     %.4g", d.KineticEnergy),
		fmt.Sprintf("work   %.4g", d.Work),
		fmt.Sprintf("trail  %d/%d", len(f.Trail), f.TrailLength),
	}
	for i, line := range lines {
		rl.DrawText(line, 30, int32(92+i*20), 14, colText)
	}

	if a.err != nil {
		rl.DrawText(a.err.Error(), 30, h-70, 14, colError)
	}
	rl.DrawText("[SPACE] RUN/PAUSE  [R] RESET  [F] FIELD  [ ] TRAIL  [DRAG] PAN  [WHEEL] ZOOM  [C] CENTER  [Q] QUIT", 30, h-40, 14, colTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-20, 14, colTextDim)
}
