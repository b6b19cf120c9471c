package tui

import (
	"glance/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles of the preview screen, derived from the
// configured theme
type Styles struct {
	Heading   lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Directory lipgloss.Style
	Label     lipgloss.Style
	Meta      lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles builds the styles for theme
func NewStyles(theme config.Theme) Styles {
	return Styles{
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(theme.Primary)).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Info)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),
		Directory: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Emphasis)).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),
		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)).
			Italic(true),
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Border)),
	}
}
