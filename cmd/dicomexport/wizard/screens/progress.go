package screens

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/components"
)

// ProgressMsg is sent to update the progress screen during conversion
type ProgressMsg struct {
	Current int    // Current file number
	Total   int    // Total files to convert
	Path    string // Current file path being converted
}

// CompletionMsg is sent when conversion completes successfully
type CompletionMsg struct {
	TotalFiles int           // Number of PNG files written
	Invalid    int           // Number of inputs skipped as invalid
	TotalSize  int64         // Total output size in bytes
	Duration   time.Duration // Time taken
	OutputDir  string        // Output directory path
	CSVPath    string        // CSV index path, empty if none was written
}

// ErrorMsg is sent when an error occurs during conversion
type ErrorMsg struct {
	Error error
}

var (
	progressBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63"))

	progressBarEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	progressPercentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")).
				Bold(true)

	progressFileStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	progressElapsedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	cancelHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// ProgressScreen displays conversion progress
type ProgressScreen struct {
	current   int
	total     int
	path      string
	startTime time.Time
	cancelled bool
	width     int
	height    int
}

// NewProgressScreen creates a new progress screen
func NewProgressScreen(total int) *ProgressScreen {
	return &ProgressScreen{
		current:   0,
		total:     total,
		startTime: time.Now(),
	}
}

// Init implements tea.Model
func (s *ProgressScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ProgressScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case ProgressMsg:
		s.current = msg.Current
		s.total = msg.Total
		s.path = msg.Path
	}

	return s, nil
}

// View implements tea.Model
func (s *ProgressScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("Converting DICOM files...")

	var percent float64
	if s.total > 0 {
		percent = float64(s.current) / float64(s.total) * 100
	}

	barWidth := 40
	if s.width > 60 {
		barWidth = s.width / 2
		if barWidth > 60 {
			barWidth = 60
		}
	}
	progressBar := s.renderProgressBar(percent, barWidth)

	percentStr := progressPercentStyle.Render(fmt.Sprintf("%d%%", int(percent)))

	fileCounter := progressFileStyle.Render(fmt.Sprintf("File %d/%d", s.current, s.total))

	var pathDisplay string
	if s.path != "" {
		displayPath := s.path
		maxPathLen := barWidth
		if len(displayPath) > maxPathLen {
			displayPath = "..." + displayPath[len(displayPath)-maxPathLen+3:]
		}
		pathDisplay = progressFileStyle.Render(displayPath)
	}

	elapsed := time.Since(s.startTime)
	elapsedStr := progressElapsedStyle.Render(fmt.Sprintf("Elapsed: %.1fs", elapsed.Seconds()))

	cancelHint := cancelHintStyle.Render("Press Ctrl+C to cancel")

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	sb.WriteString(progressBar)
	sb.WriteString(" ")
	sb.WriteString(percentStr)
	sb.WriteString("\n\n")
	sb.WriteString(fileCounter)
	if pathDisplay != "" {
		sb.WriteString(": ")
		sb.WriteString(pathDisplay)
	}
	sb.WriteString("\n")
	sb.WriteString(elapsedStr)
	sb.WriteString("\n\n")
	sb.WriteString(cancelHint)

	return sb.String()
}

// renderProgressBar creates a visual progress bar
func (s *ProgressScreen) renderProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := progressBarStyle.Render("[" + strings.Repeat("█", filled))
	bar += progressBarEmptyStyle.Render(strings.Repeat("░", empty) + "]")

	return bar
}

// Cancelled returns true if the user cancelled
func (s *ProgressScreen) Cancelled() bool {
	return s.cancelled
}

// Completion screen styles
var (
	completionSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)

	completionLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	completionValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	completionHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true)

	completionCommandStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)

	completionButtonFocusedStyle = lipgloss.NewStyle().
					Background(lipgloss.Color("33")).
					Foreground(lipgloss.Color("255")).
					Padding(0, 2).
					Bold(true)
)

// CompletionScreen displays the completion summary
type CompletionScreen struct {
	totalFiles int
	invalid    int
	totalSize  int64
	duration   time.Duration
	outputDir  string
	csvPath    string
	done       bool
	width      int
	height     int
}

// NewCompletionScreen creates a new completion screen
func NewCompletionScreen(msg CompletionMsg) *CompletionScreen {
	return &CompletionScreen{
		totalFiles: msg.TotalFiles,
		invalid:    msg.Invalid,
		totalSize:  msg.TotalSize,
		duration:   msg.Duration,
		outputDir:  msg.OutputDir,
		csvPath:    msg.CSVPath,
	}
}

// Init implements tea.Model
func (s *CompletionScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *CompletionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

// View implements tea.Model
func (s *CompletionScreen) View() string {
	var sb strings.Builder

	successIcon := completionSuccessStyle.Render("✓")
	successText := completionSuccessStyle.Render("Conversion complete!")
	sb.WriteString(successIcon)
	sb.WriteString(" ")
	sb.WriteString(successText)
	sb.WriteString("\n\n")

	sb.WriteString(components.TitleStyle.Render("Summary:"))
	sb.WriteString("\n")

	stats := []struct {
		label string
		value string
	}{
		{"Files converted", fmt.Sprintf("%d", s.totalFiles)},
		{"Total size", humanize.Bytes(uint64(s.totalSize))},
		{"Duration", fmt.Sprintf("%.1fs", s.duration.Seconds())},
		{"Output", s.outputDir},
	}
	if s.invalid > 0 {
		stats = append(stats, struct {
			label string
			value string
		}{"Skipped", fmt.Sprintf("%d invalid input(s)", s.invalid)})
	}
	if s.csvPath != "" {
		stats = append(stats, struct {
			label string
			value string
		}{"CSV index", s.csvPath})
	}

	for _, stat := range stats {
		sb.WriteString("  ")
		sb.WriteString(completionLabelStyle.Render(stat.label + ":"))
		sb.WriteString(" ")
		sb.WriteString(completionValueStyle.Render(stat.value))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	sb.WriteString(components.TitleStyle.Render("Next steps:"))
	sb.WriteString("\n")

	listCmd := completionCommandStyle.Render(fmt.Sprintf("ls -la %s", s.outputDir))
	sb.WriteString("  • View files: ")
	sb.WriteString(listCmd)
	sb.WriteString("\n")

	if s.csvPath != "" {
		csvCmd := completionCommandStyle.Render(fmt.Sprintf("column -s, -t %s", s.csvPath))
		sb.WriteString("  • Inspect:    ")
		sb.WriteString(csvCmd)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	exitButton := completionButtonFocusedStyle.Render("Exit")
	sb.WriteString(exitButton)
	sb.WriteString("\n\n")
	sb.WriteString(completionHintStyle.Render("Press Enter or q to exit"))

	return sb.String()
}

// Done returns true if the user is finished
func (s *CompletionScreen) Done() bool {
	return s.done
}

// ErrorScreen displays an error that occurred during conversion
type ErrorScreen struct {
	err    error
	done   bool
	width  int
	height int
}

var (
	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	errorHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)
)

// NewErrorScreen creates a new error screen
func NewErrorScreen(err error) *ErrorScreen {
	return &ErrorScreen{
		err: err,
	}
}

// Init implements tea.Model
func (s *ErrorScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

// View implements tea.Model
func (s *ErrorScreen) View() string {
	var sb strings.Builder

	errorIcon := errorTitleStyle.Render("✗")
	errorText := errorTitleStyle.Render("Conversion failed")
	sb.WriteString(errorIcon)
	sb.WriteString(" ")
	sb.WriteString(errorText)
	sb.WriteString("\n\n")

	sb.WriteString(components.TitleStyle.Render("Error:"))
	sb.WriteString("\n")
	sb.WriteString("  ")
	sb.WriteString(errorMessageStyle.Render(s.err.Error()))
	sb.WriteString("\n\n")

	sb.WriteString(errorHintStyle.Render("Press Enter or q to exit"))

	return sb.String()
}

// Done returns true if the user is finished
func (s *ErrorScreen) Done() bool {
	return s.done
}

// Error returns the error
func (s *ErrorScreen) Error() error {
	return s.err
}
