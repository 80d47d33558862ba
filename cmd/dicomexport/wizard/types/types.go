// Package types holds the wizard state shared between the orchestrator
// and its screens.
package types

// Source modes.
const (
	ModeDirectory = "directory"
	ModeFiles     = "files"
)

// WizardState holds the complete state for the wizard interface.
type WizardState struct {
	Source  SourceConfig
	Options OptionsConfig
}

// SourceConfig selects what to convert and where the output goes.
type SourceConfig struct {
	Mode      string
	Directory string
	Files     []string
	OutputDir string
}

// OptionsConfig holds the conversion and metadata options. The window
// fields are pointers so an explicit center or width of 0 stays distinct
// from "no windowing".
type OptionsConfig struct {
	WindowCenter *int
	WindowWidth  *int
	CSV          bool
	AddMetadata  bool
	DeleteBackup bool
	JSONDump     bool
}
