package util

import (
	"path/filepath"
	"testing"
)

func TestIsDICOMFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"scan.dcm", true},
		{"scan.DCM", true},
		{"scan.Dicom", true},
		{"scan.dicom", true},
		{"scan.DICOM", true},
		{"scan.png", false},
		{"scan.dcm.txt", false},
		{"notes.txt", false},
		{"dcm", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDICOMFile(tt.name); got != tt.want {
			t.Errorf("IsDICOMFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSiblingDICOMPath(t *testing.T) {
	got := SiblingDICOMPath("exams", filepath.Join("output", "png", "scan01.png"))
	want := filepath.Join("exams", "scan01.dcm")
	if got != want {
		t.Errorf("SiblingDICOMPath = %q, want %q", got, want)
	}
}

func TestNormalizeSlash(t *testing.T) {
	got := NormalizeSlash(filepath.Join("output", "png", "scan01.png"))
	if got != "output/png/scan01.png" {
		t.Errorf("NormalizeSlash = %q", got)
	}
}
