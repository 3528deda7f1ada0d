package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view.
type Theme struct {
	Name     string
	Canvas   lipgloss.Color
	Header   lipgloss.Color
	Label    lipgloss.Color
	Value    lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Running  lipgloss.Color
	Paused   lipgloss.Color
	Error    lipgloss.Color
	Graph    lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:     "classic",
		Canvas:   lipgloss.Color("#00ffff"),
		Header:   lipgloss.Color("86"),
		Label:    lipgloss.Color("245"),
		Value:    lipgloss.Color("252"),
		Positive: lipgloss.Color("#ff4136"),
		Negative: lipgloss.Color("#0074d9"),
		Running:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff4444"),
		Graph:    lipgloss.Color("49"),
	}

	ThemePhosphor = Theme{
		Name:     "phosphor",
		Canvas:   lipgloss.Color("#00ff00"),
		Header:   lipgloss.Color("#88ff88"),
		Label:    lipgloss.Color("#00aa00"),
		Value:    lipgloss.Color("#00ff00"),
		Positive: lipgloss.Color("#ffff00"),
		Negative: lipgloss.Color("#00ffaa"),
		Running:  lipgloss.Color("#88ff88"),
		Paused:   lipgloss.Color("#ffff00"),
		Error:    lipgloss.Color("#ff0000"),
		Graph:    lipgloss.Color("#00cc00"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Canvas:   lipgloss.Color("#ffffff"),
		Header:   lipgloss.Color("#ffffff"),
		Label:    lipgloss.Color("#888888"),
		Value:    lipgloss.Color("#ffffff"),
		Positive: lipgloss.Color("#ff8888"),
		Negative: lipgloss.Color("#8888ff"),
		Running:  lipgloss.Color("#00ff00"),
		Paused:   lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff0000"),
		Graph:    lipgloss.Color("#cccccc"),
	}
)

var themes = []Theme{ThemeClassic, ThemePhosphor, ThemeMinimal}

// ThemeNames lists the available themes in cycling order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ThemeByName returns the named theme, or the classic one.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func nextTheme(cur Theme) Theme {
	for i, t := range themes {
		if t.Name == cur.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return ThemeClassic
}

// styles are derived from a theme once per theme change.
type styles struct {
	canvas, stats              lipgloss.Style
	header, label, value       lipgloss.Style
	positive, negative         lipgloss.Style
	running, paused, errorText lipgloss.Style
	graph, help                lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:    lipgloss.NewStyle().Foreground(t.Canvas).Padding(0, 1),
		stats:     lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(hudWidth),
		header:    lipgloss.NewStyle().Foreground(t.Header).Bold(true),
		label:     lipgloss.NewStyle().Foreground(t.Label).Width(10),
		value:     lipgloss.NewStyle().Foreground(t.Value),
		positive:  lipgloss.NewStyle().Foreground(t.Positive).Bold(true),
		negative:  lipgloss.NewStyle().Foreground(t.Negative).Bold(true),
		running:   lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		paused:    lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		errorText: lipgloss.NewStyle().Foreground(t.Error),
		graph:     lipgloss.NewStyle().Foreground(t.Graph),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1),
	}
}
