package components

import "github.com/charmbracelet/lipgloss"

// Shared accent palette for the wizard screens.
const (
	AccentColor = lipgloss.Color("69")
	MutedColor  = lipgloss.Color("245")
)

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(AccentColor).
		MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginBottom(1)
)
