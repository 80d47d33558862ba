// Package metadata extracts patient and study information from DICOM
// datasets, including the laterality/view inference used for mammography
// exports.
package metadata

import (
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	internaldicom "github.com/mrsinham/dicomexport/internal/dicom"
)

var acquisitionDeviceProcessingDescription = tag.Tag{Group: 0x0018, Element: 0x1400}

// Patient holds the patient-level fields of one dataset. Absent tags are
// empty strings.
type Patient struct {
	Name      string
	ID        string
	BirthDate string
	Sex       string
	Age       string
	Weight    string
}

// Study holds the study-level fields of one dataset. Laterality and
// ViewPosition may be inferred from the acquisition description when the
// explicit tags are blank.
type Study struct {
	Date               string
	Time               string
	Description        string
	ID                 string
	AccessionNumber    string
	ReferringPhysician string
	Laterality         string
	ViewPosition       string
}

// Reader wraps a parsed dataset together with its source path.
type Reader struct {
	ds   dicom.Dataset
	path string
}

// NewReader wraps an already-parsed dataset.
func NewReader(ds dicom.Dataset, path string) *Reader {
	return &Reader{ds: ds, path: path}
}

// Open parses the file at path with pixel data skipped and returns a
// reader over it.
func Open(path string) (*Reader, error) {
	ds, err := internaldicom.LoadMetadata(path)
	if err != nil {
		return nil, err
	}
	return NewReader(ds, path), nil
}

// Path returns the source file path.
func (r *Reader) Path() string {
	return r.path
}

// PatientInfo extracts the patient-level fields.
func (r *Reader) PatientInfo() Patient {
	return Patient{
		Name:      r.stringValue(tag.PatientName),
		ID:        r.stringValue(tag.PatientID),
		BirthDate: r.stringValue(tag.PatientBirthDate),
		Sex:       r.stringValue(tag.PatientSex),
		Age:       r.stringValue(tag.PatientAge),
		Weight:    r.stringValue(tag.PatientWeight),
	}
}

// StudyInfo extracts the study-level fields. When the explicit Laterality
// or ViewPosition tag is blank and the acquisition device processing
// description is present, the value is inferred from that description.
// An explicit non-blank tag always wins over inference.
func (r *Reader) StudyInfo() Study {
	s := Study{
		Date:               r.stringValue(tag.StudyDate),
		Time:               r.stringValue(tag.StudyTime),
		Description:        r.stringValue(tag.StudyDescription),
		ID:                 r.stringValue(tag.StudyID),
		AccessionNumber:    r.stringValue(tag.AccessionNumber),
		ReferringPhysician: r.stringValue(tag.ReferringPhysicianName),
		Laterality:         r.stringValue(tag.Laterality),
		ViewPosition:       r.stringValue(tag.ViewPosition),
	}

	acq := r.stringValue(acquisitionDeviceProcessingDescription)
	if acq == "" {
		return s
	}

	if strings.TrimSpace(s.ViewPosition) == "" {
		if strings.Contains(acq, "MLO") {
			s.ViewPosition = "MLO"
		} else if strings.Contains(acq, "CC") {
			s.ViewPosition = "CC"
		}
	}

	if strings.TrimSpace(s.Laterality) == "" {
		if strings.Contains(acq, "R ") {
			s.Laterality = "R"
		} else if strings.Contains(acq, "L ") {
			s.Laterality = "L"
		}
	}

	return s
}

// SOPClassUID returns the dataset's SOP class UID, or "" when absent.
func (r *Reader) SOPClassUID() string {
	return r.stringValue(tag.SOPClassUID)
}

// stringValue reads a tag as a string, joining multi-valued elements with
// a backslash the way they appear on the wire. Absent tags yield "".
func (r *Reader) stringValue(t tag.Tag) string {
	elem, err := r.ds.FindElementByTag(t)
	if err != nil {
		return ""
	}

	switch v := elem.Value.GetValue().(type) {
	case []string:
		switch len(v) {
		case 0:
			return ""
		case 1:
			return v[0]
		default:
			return strings.Join(v, `\`)
		}
	default:
		return ""
	}
}
