package screens

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/components"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/types"
)

// OptionsScreen configures windowing and the metadata options.
type OptionsScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	config    *types.OptionsConfig
	width     int
	height    int
	done      bool
	cancelled bool

	// String representations for numeric inputs
	windowCenterStr string
	windowWidthStr  string
}

// NewOptionsScreen creates a new options configuration screen
func NewOptionsScreen(config *types.OptionsConfig) *OptionsScreen {
	s := &OptionsScreen{
		helpPanel: components.NewHelpPanel(),
		config:    config,
	}

	if config.WindowCenter != nil {
		s.windowCenterStr = strconv.Itoa(*config.WindowCenter)
	}
	if config.WindowWidth != nil {
		s.windowWidthStr = strconv.Itoa(*config.WindowWidth)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("window_center").
				Title("Window Center").
				Placeholder("empty for no windowing").
				Value(&s.windowCenterStr).
				Validate(validateOptionalInt),

			huh.NewInput().
				Key("window_width").
				Title("Window Width").
				Placeholder("empty for no windowing").
				Value(&s.windowWidthStr).
				Validate(validateOptionalInt),

			huh.NewConfirm().
				Key("csv").
				Title("Write CSV index?").
				Value(&config.CSV),

			huh.NewConfirm().
				Key("add_metadata").
				Title("Rewrite DICOM headers (dcmodify)?").
				Value(&config.AddMetadata),

			huh.NewConfirm().
				Key("delete_backup").
				Title("Delete dcmodify backups?").
				Value(&config.DeleteBackup),

			huh.NewConfirm().
				Key("json").
				Title("Dump metadata as JSON?").
				Value(&config.JSONDump),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// validateOptionalInt accepts an empty string or an integer
func validateOptionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be an integer")
	}
	return nil
}

// Init implements tea.Model
func (s *OptionsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *OptionsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	focused := s.form.GetFocusedField()
	if focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		if err := s.syncConfigFromForm(); err != nil {
			rebuilt := NewOptionsScreen(s.config)
			rebuilt.width = s.width
			rebuilt.height = s.height
			*s = *rebuilt
			return s, s.form.Init()
		}
		s.done = true
	}

	return s, cmd
}

// syncConfigFromForm parses the string-bound values back to config
func (s *OptionsScreen) syncConfigFromForm() error {
	centerStr := strings.TrimSpace(s.windowCenterStr)
	widthStr := strings.TrimSpace(s.windowWidthStr)

	if (centerStr == "") != (widthStr == "") {
		return fmt.Errorf("window center and width must be set together")
	}

	s.config.WindowCenter = nil
	s.config.WindowWidth = nil
	if centerStr != "" {
		center, err := strconv.Atoi(centerStr)
		if err != nil {
			return fmt.Errorf("invalid window center: %v", err)
		}
		width, err := strconv.Atoi(widthStr)
		if err != nil {
			return fmt.Errorf("invalid window width: %v", err)
		}
		s.config.WindowCenter = &center
		s.config.WindowWidth = &width
	}

	return nil
}

// View implements tea.Model
func (s *OptionsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("DICOMEXPORT WIZARD - Conversion Options")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit | Esc: Cancel",
	)

	return content
}

// Done returns true if the form was completed
func (s *OptionsScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *OptionsScreen) Cancelled() bool {
	return s.cancelled
}
