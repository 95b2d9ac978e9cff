package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	topBar   lipgloss.Style
	panel    lipgloss.Style
	title    lipgloss.Style
	subtle   lipgloss.Style
	selected lipgloss.Style
	rating   lipgloss.Style
	errText  lipgloss.Style
	heading  lipgloss.Style
	card     lipgloss.Style
}

func newStyles() styles {
	accent := lipgloss.Color("#6366f1")
	return styles{
		topBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f8fafc")).
			Background(accent).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#475569")).
			Padding(0, 1),
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f8fafc")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		rating:   lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0b37")),
		heading:  lipgloss.NewStyle().Bold(true).Underline(true),
		card: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#475569")).
			Background(lipgloss.Color("#cbd5e1")).
			Padding(0, 1),
	}
}
