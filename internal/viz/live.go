package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/lorentz/internal/config"
	"github.com/san-kum/lorentz/internal/physics"
	"github.com/san-kum/lorentz/internal/sim"
)

const (
	defaultCols = 80
	defaultRows = 24
	panStep     = 8
	zoomFactor  = 1.25
	maxTrail    = 1 << 16
)

type TickMsg time.Time

// Model is the interactive terminal front end of a Simulation. All input and
// ticks are handled on the Bubble Tea goroutine, so the simulation needs no
// locking.
type Model struct {
	sim      *sim.Simulation
	canvas   *Canvas
	camera   *Camera
	renderer *Renderer
	theme    Theme
	styles   styles

	presetIdx int
	preset    string
	energy    []float64
	lastSteps int

	dragging      bool
	dragX, dragY  int
	showHelp      bool
	err           error
	width, height int
}

// NewModel wraps s. The camera starts at the configured zoom.
func NewModel(s *sim.Simulation, theme Theme) Model {
	canvas := NewCanvas(defaultCols-hudWidth-4, defaultRows-1)
	camera := NewCamera(s.Config().Display.Zoom)
	return Model{
		sim:      s,
		canvas:   canvas,
		camera:   camera,
		renderer: NewRenderer(canvas, camera),
		theme:    theme,
		styles:   newStyles(theme),
		width:    defaultCols,
		height:   defaultRows,
	}
}

func tick() tea.Cmd {
	return tea.Tick(sim.FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols := max(msg.Width-hudWidth-4, 10)
		rows := max(msg.Height-1, 5)
		m.canvas.Resize(cols, rows)
		return m, nil

	case TickMsg:
		if m.sim.Tick(time.Time(msg)) {
			m.recordEnergy()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.sim.State() == sim.Running {
			m.sim.Pause()
		} else {
			m.sim.Start()
		}
	case "s":
		m.sim.Start()
	case "p":
		m.sim.Pause()
	case "r":
		m.sim.Reset()
		m.energy = m.energy[:0]
	case "f":
		m.cycleField()
	case "n":
		m.cyclePreset(1)
	case "N":
		m.cyclePreset(-1)
	case "left", "h":
		m.camera.Pan(panStep, 0)
	case "right", "l":
		m.camera.Pan(-panStep, 0)
	case "up", "k":
		m.camera.Pan(0, panStep)
	case "down", "j":
		m.camera.Pan(0, -panStep)
	case "+", "=":
		m.zoom(zoomFactor)
	case "-", "_":
		m.zoom(1 / zoomFactor)
	case "c":
		m.camera.Center()
	case "[":
		m.resizeTrail(m.sim.Frame().TrailLength / 2)
	case "]":
		m.resizeTrail(m.sim.Frame().TrailLength * 2)
	case "t":
		m.theme = nextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse pans the camera while the left button is held.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}
		if msg.Button == tea.MouseButtonWheelUp {
			m.zoom(zoomFactor)
		}
		if msg.Button == tea.MouseButtonWheelDown {
			m.zoom(1 / zoomFactor)
		}
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		// one cell is 2×4 braille pixels
		m.camera.Pan(float64(msg.X-m.dragX)*2, float64(msg.Y-m.dragY)*4)
		m.dragX, m.dragY = msg.X, msg.Y
	case tea.MouseActionRelease:
		m.dragging = false
	}
}

func (m *Model) zoom(f float64) {
	m.camera.ZoomBy(f)
	m.err = m.sim.SetZoom(m.camera.Zoom)
}

func (m *Model) resizeTrail(n int) {
	n = min(max(n, 1), maxTrail)
	m.err = m.sim.SetTrailLength(n)
}

func (m *Model) kind() physics.Kind {
	return m.sim.Field().Kind()
}

// cycleField switches to the next field type, keeping the particle.
func (m *Model) cycleField() {
	cfg := m.sim.Config()
	cfg.Field.Type = string(m.kind().Next())
	if m.err = m.sim.SetConfig(cfg); m.err != nil {
		return
	}
	m.presetIdx, m.preset = 0, ""
	m.energy = m.energy[:0]
}

// cyclePreset walks the presets of the current field type. Index 0 is the
// placeholder, which leaves the configuration as it is.
func (m *Model) cyclePreset(dir int) {
	list := config.Presets[m.kind()]
	if len(list) == 0 {
		return
	}
	m.presetIdx = ((m.presetIdx+dir)%len(list) + len(list)) % len(list)
	p := list[m.presetIdx]
	if m.err = m.sim.ApplyPreset(m.kind(), p.Name); m.err != nil {
		return
	}
	if p.Values == nil {
		m.preset = ""
		return
	}
	m.preset = p.Title
	m.energy = m.energy[:0]
}

func (m *Model) recordEnergy() {
	if steps := m.sim.Steps(); steps < m.lastSteps {
		m.energy = m.energy[:0]
	}
	m.lastSteps = m.sim.Steps()
	m.energy = append(m.energy, m.sim.Particle().KineticEnergy())
	if len(m.energy) > energyHistory {
		m.energy = m.energy[len(m.energy)-energyHistory:]
	}
}

func (m Model) View() string {
	f := m.sim.Frame()
	m.renderer.Draw(f)

	left := m.styles.canvas.Render(m.canvas.String())
	if m.showHelp {
		left = m.styles.canvas.Render(helpText)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.hud(f))
}

// Run drives s interactively until the user quits.
func Run(s *sim.Simulation, theme Theme) error {
	p := tea.NewProgram(NewModel(s, theme), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("live view: %w", err)
	}
	return nil
}
