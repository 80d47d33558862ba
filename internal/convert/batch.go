package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	internaldicom "github.com/mrsinham/dicomexport/internal/dicom"
	"github.com/mrsinham/dicomexport/internal/util"
)

// Directory converts every DICOM file in inputDir, writing PNGs under
// outputDir/png. Files that fail to convert are logged and skipped; the
// returned slices stay aligned (pngs[i] came from sources[i]) in
// enumeration order. An unreadable inputDir is the only fatal error.
func Directory(log *logrus.Logger, inputDir, outputDir string, window *internaldicom.Window) (pngs, sources []string, err error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("read directory %s: %w", inputDir, err)
	}

	if outputDir == "" {
		outputDir = filepath.Join("output", filepath.Base(inputDir))
	}
	pngDir := filepath.Join(outputDir, "png")

	for _, entry := range entries {
		if entry.IsDir() || !util.IsDICOMFile(entry.Name()) {
			continue
		}

		src := filepath.Join(inputDir, entry.Name())
		out, convErr := File(log, src, Options{OutputPath: pngDir, Window: window})
		if convErr != nil {
			log.Warnf("skipping %s: %v", src, convErr)
			continue
		}

		pngs = append(pngs, out)
		sources = append(sources, src)
	}

	return pngs, sources, nil
}

// Files converts an explicit list of DICOM files. Paths that are not
// regular files are collected as invalid; conversion failures are logged
// and skipped. The returned pngs and sources slices stay aligned.
func Files(log *logrus.Logger, paths []string, outputDir string, window *internaldicom.Window) (pngs, sources, invalid []string) {
	if outputDir == "" {
		outputDir = "output"
	}
	pngDir := filepath.Join(outputDir, "png")

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			log.Warnf("not a readable file: %s", path)
			invalid = append(invalid, path)
			continue
		}

		out, err := File(log, path, Options{OutputPath: pngDir, Window: window})
		if err != nil {
			log.Warnf("skipping %s: %v", path, err)
			continue
		}

		pngs = append(pngs, out)
		sources = append(sources, path)
	}

	return pngs, sources, invalid
}
