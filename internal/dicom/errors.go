package dicom

import (
	"errors"
	"fmt"
)

// ErrNoPixelData is returned when a dataset carries no decodable pixel data.
var ErrNoPixelData = errors.New("no pixel data")

// ErrInvalidFormat is returned when a file cannot be parsed as DICOM.
var ErrInvalidFormat = errors.New("invalid DICOM format")

// ConvertError wraps a conversion failure with the file it happened on.
type ConvertError struct {
	Path string
	Err  error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Path, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}
