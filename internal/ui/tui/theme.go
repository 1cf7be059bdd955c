package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Help      lipgloss.Style
	Card      lipgloss.Style
	Display   lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Error     lipgloss.Style
	Toast     lipgloss.Style
}

func NewTheme(accent string) Theme {
	color := lipgloss.Color(accent)
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(color),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(color),
		Display: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Right).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(color),
		Tab:       lipgloss.NewStyle().Padding(0, 2).Faint(true),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(color),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Toast:     lipgloss.NewStyle().Italic(true),
	}
}
