// Package export writes the patient/exam CSV index over converted PNGs.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mrsinham/dicomexport/internal/metadata"
	"github.com/mrsinham/dicomexport/internal/util"
)

// FileListName is the CSV file name used in explicit file-list mode.
const FileListName = "patient_info.csv"

var header = []string{"patient_id", "exam_id", "laterality", "view", "file_path"}

// Options selects the PNGs to index and where their DICOM sources live.
type Options struct {
	// PNGFiles are the converted images, one CSV row each.
	PNGFiles []string

	// DICOMDir is the directory the source files live in. Sibling DICOM
	// paths are recomputed from each PNG base name inside it.
	DICOMDir string

	// DICOMFiles, when non-empty, are the sources aligned with PNGFiles
	// and take precedence over sibling recomputation. File-list mode uses
	// this since its inputs may span directories.
	DICOMFiles []string

	// FileList switches the output name to patient_info.csv instead of
	// <base(DICOMDir)>.csv.
	FileList bool

	// SaveDir overrides the default "output" root for the CSV file.
	SaveDir string
}

// CSV writes one row per PNG and returns the written path. Rows whose
// DICOM source cannot be read are logged and skipped. An empty PNG list
// writes nothing and returns "".
func CSV(log *logrus.Logger, opts Options) (string, error) {
	if len(opts.PNGFiles) == 0 {
		log.Warn("no PNG files to index, skipping CSV export")
		return "", nil
	}

	outPath := resolvePath(opts)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("create CSV directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create CSV: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write CSV header: %w", err)
	}

	for i, pngPath := range opts.PNGFiles {
		src := util.SiblingDICOMPath(opts.DICOMDir, pngPath)
		if i < len(opts.DICOMFiles) {
			src = opts.DICOMFiles[i]
		}

		r, err := metadata.Open(src)
		if err != nil {
			log.Warnf("skipping CSV row for %s: %v", pngPath, err)
			continue
		}

		patient := r.PatientInfo()
		study := r.StudyInfo()

		// exam_id is not recoverable from the headers here, so every row
		// carries the placeholder 0.
		row := []string{
			patient.ID,
			"0",
			study.Laterality,
			study.ViewPosition,
			util.NormalizeSlash(pngPath),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush CSV: %w", err)
	}

	log.Infof("wrote CSV index %s", outPath)
	return outPath, nil
}

// resolvePath applies the naming policy: patient_info.csv in file-list
// mode, <base(DICOMDir)>.csv in directory mode, rooted at SaveDir or the
// default output directory.
func resolvePath(opts Options) string {
	name := FileListName
	if !opts.FileList {
		name = filepath.Base(opts.DICOMDir) + ".csv"
	}

	root := opts.SaveDir
	if root == "" {
		root = "output"
	}
	return filepath.Join(root, name)
}
