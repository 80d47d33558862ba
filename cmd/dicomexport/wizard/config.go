package wizard

import (
	"fmt"
	"os"

	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/types"
	"gopkg.in/yaml.v3"
)

// Config represents the complete wizard configuration for YAML serialization.
type Config struct {
	Source  SourceConfigYAML  `yaml:"source"`
	Options OptionsConfigYAML `yaml:"options"`
}

// SourceConfigYAML holds the input selection with YAML tags for serialization.
type SourceConfigYAML struct {
	Mode      string   `yaml:"mode"`
	Directory string   `yaml:"directory,omitempty"`
	Files     []string `yaml:"files,omitempty"`
	OutputDir string   `yaml:"output_dir,omitempty"`
}

// OptionsConfigYAML holds the conversion options with YAML tags. The
// window fields are pointers: absent means no windowing, while an
// explicit 0 round-trips as 0.
type OptionsConfigYAML struct {
	WindowCenter *int `yaml:"window_center,omitempty"`
	WindowWidth  *int `yaml:"window_width,omitempty"`
	CSV          bool `yaml:"csv"`
	AddMetadata  bool `yaml:"add_metadata"`
	DeleteBackup bool `yaml:"delete_backup"`
	JSONDump     bool `yaml:"json"`
}

// SaveToYAML writes the wizard state to a YAML config file.
func SaveToYAML(state *WizardState, path string) error {
	cfg := Config{
		Source: SourceConfigYAML{
			Mode:      state.Source.Mode,
			Directory: state.Source.Directory,
			Files:     state.Source.Files,
			OutputDir: state.Source.OutputDir,
		},
		Options: OptionsConfigYAML{
			WindowCenter: state.Options.WindowCenter,
			WindowWidth:  state.Options.WindowWidth,
			CSV:          state.Options.CSV,
			AddMetadata:  state.Options.AddMetadata,
			DeleteBackup: state.Options.DeleteBackup,
			JSONDump:     state.Options.JSONDump,
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// LoadFromYAML reads a YAML config file into a wizard state.
func LoadFromYAML(path string) (*WizardState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	mode := cfg.Source.Mode
	if mode == "" {
		// Infer the mode from which input is present
		if len(cfg.Source.Files) > 0 {
			mode = types.ModeFiles
		} else {
			mode = types.ModeDirectory
		}
	}
	if mode != types.ModeDirectory && mode != types.ModeFiles {
		return nil, fmt.Errorf("invalid source mode %q", mode)
	}

	state := &WizardState{
		Source: SourceConfig{
			Mode:      mode,
			Directory: cfg.Source.Directory,
			Files:     cfg.Source.Files,
			OutputDir: cfg.Source.OutputDir,
		},
		Options: OptionsConfig{
			WindowCenter: cfg.Options.WindowCenter,
			WindowWidth:  cfg.Options.WindowWidth,
			CSV:          cfg.Options.CSV,
			AddMetadata:  cfg.Options.AddMetadata,
			DeleteBackup: cfg.Options.DeleteBackup,
			JSONDump:     cfg.Options.JSONDump,
		},
	}

	return state, nil
}
