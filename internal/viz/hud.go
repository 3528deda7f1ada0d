package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

const (
	hudWidth      = 44
	energyHistory = 240
)

func (st styles) status(s sim.RunState) string {
	label := strings.ToUpper(s.String())
	switch s {
	case sim.Running:
		return st.running.Render("● " + label)
	case sim.Paused, sim.AutoPaused:
		return st.paused.Render("❚❚ " + label)
	default:
		return st.paused.Render("○ " + label)
	}
}

func (st styles) row(label, value string) string {
	return st.label.Render(label) + st.value.Render(value) + "\n"
}

// hud renders the text panel next to the canvas.
func (m Model) hud(f sim.Frame) string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.header.Render("LORENTZ · "+strings.ToUpper(string(m.kind()))) + "\n")
	b.WriteString(st.status(f.State))
	if f.State == sim.Running && f.FrameDelta > 0 {
		b.WriteString(st.label.Render(fmt.Sprintf("  %3.0f fps", f.FPS())))
	}
	b.WriteString("\n\n")

	b.WriteString(st.row("Field", physics.Describe(f.Field)))
	if m.preset != "" {
		b.WriteString(st.row("Preset", m.preset))
	}

	charge := st.positive.Render(fmt.Sprintf("%+.3g", f.Particle.Q))
	if f.Particle.Q < 0 {
		charge = st.negative.Render(fmt.Sprintf("%+.3g", f.Particle.Q))
	}
	b.WriteString(st.label.Render("Charge") + charge + st.value.Render(fmt.Sprintf("  m=%.3g", f.Particle.M)) + "\n\n")

	p, d := f.Particle, f.Diagnostics
	b.WriteString(st.row("Time", fmt.Sprintf("%.3f", f.Time)))
	if f.AutoPauseTime > 0 {
		b.WriteString(st.row("Stop at", fmt.Sprintf("%.3f", f.AutoPauseTime)))
	}
	b.WriteString(st.row("Position", p.Pos.String()))
	b.WriteString(st.row("Velocity", p.Vel.String()))
	b.WriteString(st.row("Accel", p.Acc.String()))
	b.WriteString(st.row("|v|", fmt.Sprintf("%.4f", d.Speed)))
	b.WriteString(st.row("|p|", fmt.Sprintf("%.4f", d.Momentum)))
	b.WriteString(st.row("|a|", fmt.Sprintf("%.4f", d.Acceleration)))
	b.WriteString(st.row("KE", fmt.Sprintf("%.4f", d.KineticEnergy)))
	b.WriteString(st.row("Work", fmt.Sprintf("%+.4f", d.Work)))
	b.WriteString(st.row("Trail", fmt.Sprintf("%d/%d", len(f.Trail), f.TrailLength)))
	b.WriteString(st.row("Zoom", fmt.Sprintf("%.2f px/u", m.camera.Zoom)))

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy,
			asciigraph.Height(4),
			asciigraph.Width(hudWidth-14),
			asciigraph.Caption("kinetic energy"))
		b.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + st.errorText.Render(m.err.Error()) + "\n")
	}

	b.WriteString(st.help.Render("SP:Run/Pause R:Reset Q:Quit ?:Help"))
	return st.stats.Render(b.String())
}

const helpText = `
  Space    start / pause
  s / p    start / pause
  r        reset to the configured start
  f        next field type (resets)
  n / N    next / previous preset (resets)
  ←↑↓→     pan (or drag with the mouse)
  + / -    zoom in / out
  c        centre the camera
  [ / ]    halve / double trail length
  t        next colour theme
  ?        toggle this help
  q        quit
`
