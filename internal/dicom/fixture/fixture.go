// Package fixture writes small valid DICOM files for tests.
package fixture

import (
	"fmt"
	"os"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Secondary capture SOP class, used when a fixture does not set its own.
const defaultSOPClassUID = "1.2.840.10008.5.1.4.1.1.7"

var acquisitionDeviceProcessingDescription = tag.Tag{Group: 0x0018, Element: 0x1400}

// File describes the DICOM file to write. Zero-value string fields are
// omitted from the dataset so tests can model missing tags.
type File struct {
	PatientName      string
	PatientID        string
	PatientBirthDate string
	PatientSex       string
	PatientAge       string
	PatientWeight    string

	StudyDate          string
	StudyTime          string
	StudyDescription   string
	StudyID            string
	AccessionNumber    string
	ReferringPhysician string

	Laterality             string
	ViewPosition           string
	AcquisitionDescription string

	SOPClassUID string

	Rows, Cols    int
	Pixels        []uint16 // nil uses a deterministic gradient
	OmitPixelData bool
}

// mustNewElement creates a new DICOM element, panicking on error.
func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	elem, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("failed to create element %v: %v", t, err))
	}
	return elem
}

// Write serializes the fixture to path.
func (f File) Write(path string) error {
	rows, cols := f.Rows, f.Cols
	if rows == 0 {
		rows = 8
	}
	if cols == 0 {
		cols = 8
	}

	sopClass := f.SOPClassUID
	if sopClass == "" {
		sopClass = defaultSOPClassUID
	}

	elements := []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{"1.2.840.10008.1.2.1"}),
		mustNewElement(tag.SOPClassUID, []string{sopClass}),
		mustNewElement(tag.SOPInstanceUID, []string{"1.2.826.0.1.3680043.2.1125.1.1"}),
		mustNewElement(tag.Modality, []string{"MG"}),
	}

	appendString := func(t tag.Tag, v string) {
		if v != "" {
			elements = append(elements, mustNewElement(t, []string{v}))
		}
	}

	appendString(tag.PatientName, f.PatientName)
	appendString(tag.PatientID, f.PatientID)
	appendString(tag.PatientBirthDate, f.PatientBirthDate)
	appendString(tag.PatientSex, f.PatientSex)
	appendString(tag.PatientAge, f.PatientAge)
	appendString(tag.PatientWeight, f.PatientWeight)
	appendString(tag.StudyDate, f.StudyDate)
	appendString(tag.StudyTime, f.StudyTime)
	appendString(tag.StudyDescription, f.StudyDescription)
	appendString(tag.StudyID, f.StudyID)
	appendString(tag.AccessionNumber, f.AccessionNumber)
	appendString(tag.ReferringPhysicianName, f.ReferringPhysician)
	appendString(tag.Laterality, f.Laterality)
	appendString(tag.ViewPosition, f.ViewPosition)
	appendString(acquisitionDeviceProcessingDescription, f.AcquisitionDescription)

	if !f.OmitPixelData {
		elements = append(elements,
			mustNewElement(tag.Rows, []int{rows}),
			mustNewElement(tag.Columns, []int{cols}),
			mustNewElement(tag.BitsAllocated, []int{16}),
			mustNewElement(tag.BitsStored, []int{16}),
			mustNewElement(tag.HighBit, []int{15}),
			mustNewElement(tag.PixelRepresentation, []int{0}),
			mustNewElement(tag.SamplesPerPixel, []int{1}),
			mustNewElement(tag.PhotometricInterpretation, []string{"MONOCHROME2"}),
			mustNewElement(tag.PixelData, f.pixelDataInfo(rows, cols)),
		)
	}

	return writeDatasetToFile(path, dicom.Dataset{Elements: elements})
}

func (f File) pixelDataInfo(rows, cols int) dicom.PixelDataInfo {
	nf := frame.NewNativeFrame[uint16](16, rows, cols, rows*cols, 1)
	if f.Pixels != nil {
		copy(nf.RawData, f.Pixels)
	} else {
		for i := range nf.RawData {
			nf.RawData[i] = uint16((i * 64) % 4096)
		}
	}

	return dicom.PixelDataInfo{
		Frames: []*frame.Frame{
			{
				Encapsulated: false,
				NativeData:   nf,
			},
		},
	}
}

// writeDatasetToFile writes a DICOM dataset to a file.
func writeDatasetToFile(filename string, ds dicom.Dataset) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return dicom.Write(f, ds)
}
