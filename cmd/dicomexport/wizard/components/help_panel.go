package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/help"
)

const defaultPanelWidth = 64

var (
	helpPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor).
		Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
		Foreground(AccentColor).
		Bold(true)

	helpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	helpDetailStyle = lipgloss.NewStyle().
		Foreground(MutedColor)
)

// HelpPanel displays contextual help for the focused form field.
type HelpPanel struct {
	currentField string
	width        int
	height       int
}

// NewHelpPanel creates a new help panel
func NewHelpPanel() *HelpPanel {
	return &HelpPanel{
		width:  defaultPanelWidth,
		height: 10,
	}
}

// SetField updates which field's help to display
func (h *HelpPanel) SetField(field string) {
	h.currentField = field
}

// SetSize updates panel dimensions. Widths below the default are clamped
// so the details text stays readable on narrow terminals.
func (h *HelpPanel) SetSize(width, height int) {
	if width < defaultPanelWidth {
		width = defaultPanelWidth
	}
	h.width = width
	h.height = height
}

// View renders the help panel
func (h *HelpPanel) View() string {
	style := helpPanelStyle.Width(h.width - 4) // Compute locally, don't mutate global

	text, ok := help.Texts[h.currentField]
	if !ok {
		return style.Render(helpDetailStyle.Render("Move between fields to see what each one does"))
	}

	var sb strings.Builder
	sb.WriteString(helpTitleStyle.Render("» " + text.Title))
	sb.WriteString("\n\n")
	sb.WriteString(helpDescStyle.Render(text.Description))
	if text.Details != "" {
		sb.WriteString("\n\n")
		sb.WriteString(helpDetailStyle.Render(text.Details))
	}

	return style.Render(sb.String())
}
