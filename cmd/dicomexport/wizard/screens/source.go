package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/components"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/types"
)

// SourceScreen is the first wizard screen: what to convert and where the
// output goes.
type SourceScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	config    *types.SourceConfig
	width     int
	height    int
	done      bool
	cancelled bool

	// Comma-separated form binding for the file list
	filesStr string
}

// NewSourceScreen creates a new source selection screen
func NewSourceScreen(config *types.SourceConfig) *SourceScreen {
	if config.Mode == "" {
		config.Mode = types.ModeDirectory
	}

	s := &SourceScreen{
		helpPanel: components.NewHelpPanel(),
		config:    config,
		filesStr:  strings.Join(config.Files, ","),
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("mode").
				Title("Source").
				Options(
					huh.NewOption("Directory of DICOM files", types.ModeDirectory),
					huh.NewOption("Explicit file list", types.ModeFiles),
				).
				Value(&config.Mode),

			huh.NewInput().
				Key("directory").
				Title("Input Directory").
				Placeholder("e.g., exams/").
				Value(&config.Directory),

			huh.NewInput().
				Key("files").
				Title("Input Files").
				Placeholder("comma-separated .dcm paths").
				Value(&s.filesStr),

			huh.NewInput().
				Key("output").
				Title("Output Directory").
				Placeholder("default: output/<input name>").
				Value(&config.OutputDir),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// Init implements tea.Model
func (s *SourceScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SourceScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			// Rebuild the form so the user can correct the selection
			rebuilt := NewSourceScreen(s.config)
			rebuilt.width = s.width
			rebuilt.height = s.height
			*s = *rebuilt
			return s, s.form.Init()
		}
		s.done = true
	}

	return s, cmd
}

// syncConfigFromForm parses form values back to config
func (s *SourceScreen) syncConfigFromForm() error {
	s.config.Files = s.config.Files[:0]
	for _, p := range strings.Split(s.filesStr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			s.config.Files = append(s.config.Files, p)
		}
	}

	switch s.config.Mode {
	case types.ModeDirectory:
		if s.config.Directory == "" {
			return fmt.Errorf("input directory is required")
		}
	case types.ModeFiles:
		if len(s.config.Files) == 0 {
			return fmt.Errorf("at least one input file is required")
		}
	}
	return nil
}

// View implements tea.Model
func (s *SourceScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("DICOMEXPORT WIZARD - Source Selection")

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
func (s *SourceScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SourceScreen) Cancelled() bool {
	return s.cancelled
}
