package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors of the UI
type Theme struct {
	Text   string
	Muted  string
	Accent string
	Danger string
	Border string
}

var defaultTheme = Theme{
	Text:   "#f8f8f2",
	Muted:  "#6272a4",
	Accent: "#bd93f9",
	Danger: "#ff5555",
	Border: "#44475a",
}

// Styles are the lipgloss styles derived from a Theme
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Field   lipgloss.Style
	Current lipgloss.Style
	Panel   lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Field: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		Current: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Underline(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}
