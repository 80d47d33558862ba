package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"mode": {
		Title:       "SOURCE MODE",
		Description: "Where the DICOM files come from.",
		Details: `Directory - convert every .dcm/.dicom file in a folder
File list - convert an explicit list of files`,
	},
	"directory": {
		Title:       "INPUT DIRECTORY",
		Description: "Directory containing DICOM files.",
		Details:     "Matching is case-insensitive: .dcm, .DCM and .Dicom all qualify. Other files are ignored.",
	},
	"files": {
		Title:       "INPUT FILES",
		Description: "DICOM files to convert.",
		Details:     "Comma-separated paths. Paths that are not readable files are reported and skipped.",
	},
	"output": {
		Title:       "OUTPUT DIRECTORY",
		Description: "Where PNG files and the CSV index are written.",
		Details:     "Defaults to output/<input name>. PNGs land in its png/ subdirectory.",
	},
	"window_center": {
		Title:       "WINDOW CENTER",
		Description: "Center of the intensity window.",
		Details: `Pixels are clipped to [center - width/2, center + width/2]
before rescaling to 0-255. Leave empty for no windowing.`,
	},
	"window_width": {
		Title:       "WINDOW WIDTH",
		Description: "Width of the intensity window.",
		Details:     "Must be set together with the center. Smaller widths increase contrast.",
	},
	"csv": {
		Title:       "CSV INDEX",
		Description: "Write a CSV index of the converted files.",
		Details: `Columns: patient_id, exam_id, laterality, view, file_path.
Laterality and view are inferred from the acquisition description when the tags are blank.`,
	},
	"add_metadata": {
		Title:       "REWRITE HEADERS",
		Description: "Write laterality/description headers back into the DICOM files.",
		Details:     "Uses the dcmtk dcmodify tool, which must be installed and on PATH.",
	},
	"delete_backup": {
		Title:       "DELETE BACKUPS",
		Description: "Remove the .bak files dcmodify leaves behind.",
		Details:     "A missing backup is only a warning.",
	},
	"json": {
		Title:       "JSON METADATA DUMP",
		Description: "Dump the full metadata of each file as JSON.",
		Details:     "Writes <name>_metadata.json next to each source file. Sequence elements are skipped.",
	},
}
