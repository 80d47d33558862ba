package util

import (
	"path/filepath"
	"strings"
)

// IsDICOMFile reports whether the file name carries a DICOM extension.
// Matching is case-insensitive, so .DCM and .Dicom qualify.
func IsDICOMFile(name string) bool {
	ext := filepath.Ext(name)
	return strings.EqualFold(ext, ".dcm") || strings.EqualFold(ext, ".dicom")
}

// SiblingDICOMPath returns the path of the DICOM file a PNG was converted
// from, assuming both share a base name and the DICOM lives in dir.
func SiblingDICOMPath(dir, pngPath string) string {
	base := strings.TrimSuffix(filepath.Base(pngPath), filepath.Ext(pngPath))
	return filepath.Join(dir, base+".dcm")
}

// NormalizeSlash rewrites a path with forward slashes regardless of the
// host separator. CSV output uses this form on every platform.
func NormalizeSlash(path string) string {
	return filepath.ToSlash(path)
}
