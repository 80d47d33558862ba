// Package wizard implements the interactive terminal interface for
// configuring and running DICOM to PNG conversions.
package wizard

import "github.com/mrsinham/dicomexport/cmd/dicomexport/wizard/types"

// Aliases so callers of this package do not need to import the types
// subpackage. The state lives in types to keep the screens importable
// from here without a cycle.
type (
	WizardState   = types.WizardState
	SourceConfig  = types.SourceConfig
	OptionsConfig = types.OptionsConfig
)
