package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pocketarcade/tictactoe/internal/config"
)

// Theme bundles the lipgloss styles for every screen. Colors come from the
// config, so the look is adjustable without touching code.
type Theme struct {
	Title     lipgloss.Style
	MarkX     lipgloss.Style
	MarkO     lipgloss.Style
	Grid      lipgloss.Style
	Cursor    lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}

func NewTheme(conf config.Theme) Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color(conf.Accent)).Bold(true),
		MarkX:     lipgloss.NewStyle().Foreground(lipgloss.Color(conf.MarkX)).Bold(true),
		MarkO:     lipgloss.NewStyle().Foreground(lipgloss.Color(conf.MarkO)).Bold(true),
		Grid:      lipgloss.NewStyle().Foreground(lipgloss.Color(conf.Grid)),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color(conf.Cursor)).Reverse(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(conf.Highlight)).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(conf.Accent)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(conf.Grid)).Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(conf.MarkX)),
	}
}
