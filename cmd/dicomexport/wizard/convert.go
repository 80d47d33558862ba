package wizard

import (
	"fmt"

	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/types"
	"github.com/mrsinham/dicomexport/internal/convert"
	internaldicom "github.com/mrsinham/dicomexport/internal/dicom"
)

// ToRunOptions converts a wizard state into conversion options.
func ToRunOptions(state *WizardState) (convert.RunOptions, error) {
	opts := convert.RunOptions{
		OutputDir:    state.Source.OutputDir,
		CSV:          state.Options.CSV,
		AddMetadata:  state.Options.AddMetadata,
		DeleteBackup: state.Options.DeleteBackup,
		JSONDump:     state.Options.JSONDump,
	}

	switch state.Source.Mode {
	case types.ModeDirectory:
		if state.Source.Directory == "" {
			return opts, fmt.Errorf("directory mode requires a directory")
		}
		opts.Directory = state.Source.Directory
	case types.ModeFiles:
		if len(state.Source.Files) == 0 {
			return opts, fmt.Errorf("file mode requires at least one file")
		}
		opts.Files = state.Source.Files
	default:
		return opts, fmt.Errorf("invalid source mode %q", state.Source.Mode)
	}

	if (state.Options.WindowCenter == nil) != (state.Options.WindowWidth == nil) {
		return opts, fmt.Errorf("window center and width must be set together")
	}
	if state.Options.WindowCenter != nil {
		opts.Window = &internaldicom.Window{
			Center: *state.Options.WindowCenter,
			Width:  *state.Options.WindowWidth,
		}
	}

	return opts, nil
}

// FromRunOptions builds a wizard state from conversion options, for
// saving a flag-driven run as a reusable YAML config.
func FromRunOptions(opts convert.RunOptions) *WizardState {
	state := &WizardState{
		Source: SourceConfig{
			Mode:      types.ModeDirectory,
			Directory: opts.Directory,
			Files:     opts.Files,
			OutputDir: opts.OutputDir,
		},
		Options: OptionsConfig{
			CSV:          opts.CSV,
			AddMetadata:  opts.AddMetadata,
			DeleteBackup: opts.DeleteBackup,
			JSONDump:     opts.JSONDump,
		},
	}

	if len(opts.Files) > 0 {
		state.Source.Mode = types.ModeFiles
	}

	if opts.Window != nil {
		center, width := opts.Window.Center, opts.Window.Width
		state.Options.WindowCenter = &center
		state.Options.WindowWidth = &width
	}

	return state
}
