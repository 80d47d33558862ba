// Package dicom provides dataset access and the pixel transforms used to
// turn DICOM images into 8-bit grayscale PNG.
package dicom

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/suyashkumar/dicom"
)

// Load parses a full DICOM file, pixel data included.
func Load(path string) (dicom.Dataset, error) {
	return parse(path)
}

// LoadMetadata parses a DICOM file while skipping the pixel data element.
// Use this for metadata-only access; it avoids decoding large frames.
func LoadMetadata(path string) (dicom.Dataset, error) {
	return parse(path, dicom.SkipPixelData())
}

func parse(path string, opts ...dicom.ParseOption) (dicom.Dataset, error) {
	// Stat first so a missing file keeps its fs.ErrNotExist identity
	// instead of being reported as a parse failure.
	if _, err := os.Stat(path); err != nil {
		return dicom.Dataset{}, err
	}

	ds, err := dicom.ParseFile(path, nil, opts...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dicom.Dataset{}, err
		}
		return dicom.Dataset{}, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}
	return ds, nil
}
