package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/components"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/screens"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/types"
	"github.com/mrsinham/dicomexport/internal/convert"
	"github.com/mrsinham/dicomexport/internal/logging"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseSource Phase = iota
	PhaseOptions
	PhaseSummary
	PhaseSaveConfig
	PhaseProgress
	PhaseComplete
	PhaseError
)

// Wizard is the main orchestrator for the wizard interface.
type Wizard struct {
	state *WizardState

	// Current phase
	phase Phase

	// Screen instances
	sourceScreen     *screens.SourceScreen
	optionsScreen    *screens.OptionsScreen
	summaryScreen    *screens.SummaryScreen
	progressScreen   *screens.ProgressScreen
	completionScreen *screens.CompletionScreen
	errorScreen      *screens.ErrorScreen

	// Save config form
	saveConfigForm *huh.Form
	configPath     string

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
	finished  bool
	err       error
}

// NewWizard creates a new wizard with default or loaded state.
func NewWizard(state *WizardState) *Wizard {
	if state == nil {
		state = &WizardState{
			Source: SourceConfig{
				Mode: types.ModeDirectory,
			},
		}
	}

	w := &Wizard{
		state: state,
		phase: PhaseSource,
	}

	w.sourceScreen = screens.NewSourceScreen(&w.state.Source)

	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.sourceScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window size for all phases
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseSource:
		return w.updateSource(msg)
	case PhaseOptions:
		return w.updateOptions(msg)
	case PhaseSummary:
		return w.updateSummary(msg)
	case PhaseSaveConfig:
		return w.updateSaveConfig(msg)
	case PhaseProgress:
		return w.updateProgress(msg)
	case PhaseComplete:
		return w.updateComplete(msg)
	case PhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhaseSource:
		return w.sourceScreen.View()
	case PhaseOptions:
		return w.optionsScreen.View()
	case PhaseSummary:
		return w.summaryScreen.View()
	case PhaseSaveConfig:
		return w.viewSaveConfig()
	case PhaseProgress:
		return w.progressScreen.View()
	case PhaseComplete:
		return w.completionScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}

	return ""
}

// updateSource handles updates in the source selection phase.
func (w *Wizard) updateSource(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.sourceScreen.Update(msg)
	if ss, ok := model.(*screens.SourceScreen); ok {
		w.sourceScreen = ss
	}

	if w.sourceScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.sourceScreen.Done() {
		w.phase = PhaseOptions
		w.optionsScreen = screens.NewOptionsScreen(&w.state.Options)
		return w, w.optionsScreen.Init()
	}

	return w, cmd
}

// updateOptions handles updates in the options configuration phase.
func (w *Wizard) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.optionsScreen.Update(msg)
	if scr, ok := model.(*screens.OptionsScreen); ok {
		w.optionsScreen = scr
	}

	if w.optionsScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.optionsScreen.Done() {
		return w.transitionToSummary()
	}

	return w, cmd
}

// transitionToSummary moves to the summary screen.
func (w *Wizard) transitionToSummary() (tea.Model, tea.Cmd) {
	w.phase = PhaseSummary
	w.summaryScreen = screens.NewSummaryScreen(w.state)
	return w, w.summaryScreen.Init()
}

// updateSummary handles updates in the summary phase.
func (w *Wizard) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		w.summaryScreen = ss
	}

	if w.summaryScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.summaryScreen.Done() {
		switch w.summaryScreen.Action() {
		case screens.ActionBack:
			w.phase = PhaseSource
			w.sourceScreen = screens.NewSourceScreen(&w.state.Source)
			return w, w.sourceScreen.Init()

		case screens.ActionRun:
			return w.startConversion()

		case screens.ActionSaveConfig:
			return w.transitionToSaveConfig()

		case screens.ActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}

	return w, cmd
}

// transitionToSaveConfig shows the save config dialog.
func (w *Wizard) transitionToSaveConfig() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveConfig
	w.configPath = "dicomexport-config.yaml"

	w.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save configuration to").
				Description("Enter the path for the YAML config file").
				Value(&w.configPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w, w.saveConfigForm.Init()
}

// updateSaveConfig handles updates in the save config phase.
func (w *Wizard) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Go back to summary
			return w.transitionToSummary()
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveConfigForm = f
	}

	if w.saveConfigForm.State == huh.StateCompleted {
		if err := SaveToYAML(w.state, w.configPath); err != nil {
			w.err = err
			w.phase = PhaseError
			w.errorScreen = screens.NewErrorScreen(err)
			return w, nil
		}

		return w.transitionToSummary()
	}

	return w, cmd
}

// viewSaveConfig renders the save config dialog.
func (w *Wizard) viewSaveConfig() string {
	title := components.TitleStyle.Render("Save Configuration")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		w.saveConfigForm.View(),
		"",
		"Enter: Save | Esc: Back",
	)

	return content
}

// startConversion begins the conversion process.
func (w *Wizard) startConversion() (tea.Model, tea.Cmd) {
	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(len(w.state.Source.Files))

	// Run the conversion in a command and report the outcome as a message
	return w, func() tea.Msg {
		startTime := time.Now()

		opts, err := ToRunOptions(w.state)
		if err != nil {
			return screens.ErrorMsg{Error: err}
		}

		log := logging.New("dicomexport.log")
		res, err := convert.Run(log, opts)
		if err != nil {
			return screens.ErrorMsg{Error: err}
		}

		// Calculate total output size
		var totalSize int64
		filepath.Walk(res.OutputDir, func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				totalSize += info.Size()
			}
			return nil
		})

		return screens.CompletionMsg{
			TotalFiles: len(res.PNGFiles),
			Invalid:    len(res.Invalid),
			TotalSize:  totalSize,
			Duration:   time.Since(startTime),
			OutputDir:  res.OutputDir,
			CSVPath:    res.CSVPath,
		}
	}
}

// updateProgress handles updates in the progress phase.
func (w *Wizard) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.CompletionMsg:
		w.phase = PhaseComplete
		w.completionScreen = screens.NewCompletionScreen(msg)
		return w, nil

	case screens.ErrorMsg:
		w.phase = PhaseError
		w.err = msg.Error
		w.errorScreen = screens.NewErrorScreen(msg.Error)
		return w, nil
	}

	model, cmd := w.progressScreen.Update(msg)
	if ps, ok := model.(*screens.ProgressScreen); ok {
		w.progressScreen = ps
	}

	if w.progressScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

// updateComplete handles updates in the completion phase.
func (w *Wizard) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.completionScreen.Update(msg)
	if cs, ok := model.(*screens.CompletionScreen); ok {
		w.completionScreen = cs
	}

	if w.completionScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// updateError handles updates in the error phase.
func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = es
	}

	if w.errorScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// Run starts the interactive wizard for conversion configuration.
// If fromConfig is provided, it loads the configuration from that YAML file.
func Run(fromConfig string) error {
	var state *WizardState

	// Load config if provided
	if fromConfig != "" {
		absPath, err := filepath.Abs(fromConfig)
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}

		loaded, err := LoadFromYAML(absPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		state = loaded
	}

	// Create and run the wizard
	wizard := NewWizard(state)
	p := tea.NewProgram(wizard, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	// Check final state
	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			return nil // User cancelled, not an error
		}
		if w.err != nil {
			return w.err
		}
	}

	return nil
}
