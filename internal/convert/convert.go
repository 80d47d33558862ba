// Package convert turns DICOM files into 8-bit grayscale PNGs, one file
// at a time or in batch.
package convert

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	internaldicom "github.com/mrsinham/dicomexport/internal/dicom"
)

// DefaultOutputDir is where PNGs land when no output path is given.
const DefaultOutputDir = "output/png"

// Options controls a single file conversion.
type Options struct {
	// OutputPath is either a directory or a .png file path. Anything
	// without a .png extension is treated as a directory and the input
	// base name is reused.
	OutputPath string

	// Window, when set, clips intensities before normalization.
	Window *internaldicom.Window
}

// File converts one DICOM file to PNG and returns the written path.
func File(log *logrus.Logger, path string, opts Options) (string, error) {
	ds, err := internaldicom.Load(path)
	if err != nil {
		return "", &internaldicom.ConvertError{Path: path, Err: err}
	}

	img, err := internaldicom.Pixels(ds)
	if err != nil {
		return "", &internaldicom.ConvertError{Path: path, Err: err}
	}
	if img.Frames > 1 {
		log.Warnf("%s has %d frames, converting the first only", path, img.Frames)
	}

	if opts.Window != nil {
		opts.Window.Apply(img.Pixels)
	}
	gray := internaldicom.Grayscale(internaldicom.Normalize(img.Pixels), img.Rows, img.Cols)

	outPath := resolveOutputPath(path, opts.OutputPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", &internaldicom.ConvertError{Path: path, Err: err}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", &internaldicom.ConvertError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, gray); err != nil {
		return "", &internaldicom.ConvertError{Path: path, Err: fmt.Errorf("encode png: %w", err)}
	}

	log.Infof("converted %s to %s", path, outPath)
	return outPath, nil
}

// resolveOutputPath applies the output naming policy: empty means the
// default PNG directory, a path without .png is a directory reusing the
// input base name, and an explicit .png path is used as-is.
func resolveOutputPath(inputPath, outputPath string) string {
	if outputPath == "" {
		outputPath = DefaultOutputDir
	}

	if strings.EqualFold(filepath.Ext(outputPath), ".png") {
		return outputPath
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outputPath, base+".png")
}
