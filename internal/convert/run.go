package convert

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	internaldicom "github.com/mrsinham/dicomexport/internal/dicom"
	"github.com/mrsinham/dicomexport/internal/export"
	"github.com/mrsinham/dicomexport/internal/metadata"
	"github.com/mrsinham/dicomexport/internal/rewrite"
)

// RunOptions is a full conversion job: a source selection plus the
// post-processing steps to apply. Exactly one of Directory or Files must
// be set.
type RunOptions struct {
	Directory string
	Files     []string

	OutputDir string
	Window    *internaldicom.Window

	CSV          bool
	AddMetadata  bool
	DeleteBackup bool
	JSONDump     bool

	// Editor overrides the dcmodify-backed default, for tests.
	Editor rewrite.Editor
}

// Result reports what a job produced.
type Result struct {
	PNGFiles  []string
	Sources   []string
	Invalid   []string
	CSVPath   string
	OutputDir string
}

// Run executes a conversion job end to end: convert, then optionally
// rewrite headers, delete backups, export CSV, and dump JSON metadata.
// Per-file failures never abort the batch.
func Run(log *logrus.Logger, opts RunOptions) (*Result, error) {
	if (opts.Directory == "") == (len(opts.Files) == 0) {
		return nil, fmt.Errorf("exactly one of directory or file list must be given")
	}

	res := &Result{OutputDir: opts.OutputDir}
	var err error

	if opts.Directory != "" {
		if res.OutputDir == "" {
			res.OutputDir = filepath.Join("output", filepath.Base(opts.Directory))
		}
		res.PNGFiles, res.Sources, err = Directory(log, opts.Directory, res.OutputDir, opts.Window)
		if err != nil {
			return nil, err
		}
	} else {
		if res.OutputDir == "" {
			res.OutputDir = "output"
		}
		res.PNGFiles, res.Sources, res.Invalid = Files(log, opts.Files, res.OutputDir, opts.Window)
	}

	if opts.AddMetadata {
		ed := opts.Editor
		if ed == nil {
			ed = &rewrite.DCMTK{}
		}
		if err := rewrite.Apply(log, ed, res.Sources); err != nil {
			return nil, err
		}
	}

	if opts.DeleteBackup {
		rewrite.DeleteBackups(log, res.Sources)
	}

	if opts.CSV {
		// Directory mode recomputes DICOM siblings from PNG base names;
		// file-list inputs may span directories so they pass explicit
		// sources instead.
		var aligned []string
		if opts.Directory == "" {
			aligned = res.Sources
		}
		csvPath, err := export.CSV(log, export.Options{
			PNGFiles:   res.PNGFiles,
			DICOMDir:   opts.Directory,
			DICOMFiles: aligned,
			FileList:   opts.Directory == "",
			SaveDir:    res.OutputDir,
		})
		if err != nil {
			return nil, err
		}
		res.CSVPath = csvPath
	}

	if opts.JSONDump {
		for _, src := range res.Sources {
			r, err := metadata.Open(src)
			if err != nil {
				log.Warnf("skipping metadata dump for %s: %v", src, err)
				continue
			}
			if _, err := r.SaveJSON(""); err != nil {
				log.Warnf("metadata dump failed for %s: %v", src, err)
			}
		}
	}

	return res, nil
}
