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

// SummaryAction is what the user chose to do with the configured conversion.
type SummaryAction string

const (
	ActionRun        SummaryAction = "run"
	ActionSaveConfig SummaryAction = "save"
	ActionBack       SummaryAction = "back"
	ActionCancel     SummaryAction = "cancel"
)

var (
	summaryPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	summaryLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summaryValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	commandStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))
)

// SummaryScreen shows the configured conversion and asks what to do next.
type SummaryScreen struct {
	form      *huh.Form
	state     *types.WizardState
	action    SummaryAction
	width     int
	height    int
	done      bool
	cancelled bool
}

// NewSummaryScreen creates a new summary screen
func NewSummaryScreen(state *types.WizardState) *SummaryScreen {
	s := &SummaryScreen{
		state:  state,
		action: ActionRun,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[SummaryAction]().
				Key("action").
				Title("What would you like to do?").
				Options(
					huh.NewOption("Run the conversion", ActionRun),
					huh.NewOption("Save configuration to YAML", ActionSaveConfig),
					huh.NewOption("Go back and edit", ActionBack),
					huh.NewOption("Cancel", ActionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		if s.action == ActionCancel {
			s.cancelled = true
			return s, tea.Quit
		}
		s.done = true
	}

	return s, cmd
}

// buildParameterSummary renders the configured parameters as label/value rows
func (s *SummaryScreen) buildParameterSummary() string {
	var rows []string
	add := func(label, value string) {
		rows = append(rows, summaryLabelStyle.Render(fmt.Sprintf("%-18s", label))+summaryValueStyle.Render(value))
	}

	src := s.state.Source
	opts := s.state.Options

	switch src.Mode {
	case types.ModeFiles:
		add("Source:", fmt.Sprintf("%d file(s)", len(src.Files)))
		for _, f := range src.Files {
			add("", "  "+f)
		}
	default:
		add("Source:", "directory "+src.Directory)
	}

	out := src.OutputDir
	if out == "" {
		out = "(default)"
	}
	add("Output:", out)

	if opts.WindowCenter != nil && opts.WindowWidth != nil {
		add("Windowing:", fmt.Sprintf("center %d, width %d", *opts.WindowCenter, *opts.WindowWidth))
	} else {
		add("Windowing:", "none")
	}

	add("CSV index:", yesNo(opts.CSV))
	add("Rewrite headers:", yesNo(opts.AddMetadata))
	add("Delete backups:", yesNo(opts.DeleteBackup))
	add("JSON dump:", yesNo(opts.JSONDump))

	return summaryPanelStyle.Render(strings.Join(rows, "\n"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// BuildCLICommand returns the equivalent dicomexport command line for the
// configured conversion.
func BuildCLICommand(state *types.WizardState) string {
	var parts []string
	parts = append(parts, "dicomexport")

	src := state.Source
	opts := state.Options

	switch src.Mode {
	case types.ModeFiles:
		for _, f := range src.Files {
			parts = append(parts, "--file", quoteIfNeeded(f))
		}
	default:
		parts = append(parts, "--directory", quoteIfNeeded(src.Directory))
	}

	if src.OutputDir != "" {
		parts = append(parts, "--output", quoteIfNeeded(src.OutputDir))
	}
	if opts.WindowCenter != nil && opts.WindowWidth != nil {
		parts = append(parts, "--window-center", fmt.Sprint(*opts.WindowCenter))
		parts = append(parts, "--window-width", fmt.Sprint(*opts.WindowWidth))
	}
	if opts.CSV {
		parts = append(parts, "--csv")
	}
	if opts.AddMetadata {
		parts = append(parts, "--add-metadata")
	}
	if opts.DeleteBackup {
		parts = append(parts, "--delete-backup")
	}
	if opts.JSONDump {
		parts = append(parts, "--json")
	}

	return strings.Join(parts, " ")
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("DICOMEXPORT WIZARD - Summary")
	subtitle := components.SubtitleStyle.Render("Review the configuration before running")

	command := commandStyle.Render("$ " + BuildCLICommand(s.state))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		s.buildParameterSummary(),
		"",
		"Equivalent command:",
		command,
		"",
		s.form.View(),
	)

	return content
}

// Done returns true if an action was chosen
func (s *SummaryScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool {
	return s.cancelled
}

// Action returns the chosen action
func (s *SummaryScreen) Action() SummaryAction {
	return s.action
}

// Reset clears the completion state so the screen can be shown again
func (s *SummaryScreen) Reset() {
	fresh := NewSummaryScreen(s.state)
	fresh.width = s.width
	fresh.height = s.height
	*s = *fresh
}
