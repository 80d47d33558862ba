package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/mrsinham/dicomexport/internal/dicom/fixture"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// writePair writes a DICOM file and an empty PNG sharing a base name.
func writePair(t *testing.T, dicomDir, pngDir, base string, fx fixture.File) (dcm, png string) {
	t.Helper()
	dcm = filepath.Join(dicomDir, base+".dcm")
	if err := fx.Write(dcm); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	png = filepath.Join(pngDir, base+".png")
	if err := os.WriteFile(png, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	return dcm, png
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open CSV: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read CSV: %v", err)
	}
	return rows
}

func TestCSVDirectoryMode(t *testing.T) {
	dir := t.TempDir()
	dicomDir := filepath.Join(dir, "mammo_batch")
	pngDir := filepath.Join(dir, "png")
	for _, d := range []string{dicomDir, pngDir} {
		if err := os.Mkdir(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	_, png1 := writePair(t, dicomDir, pngDir, "scan1", fixture.File{
		PatientID:              "P100",
		AcquisitionDescription: "R MLO breast",
	})
	_, png2 := writePair(t, dicomDir, pngDir, "scan2", fixture.File{
		PatientID:    "P200",
		Laterality:   "L",
		ViewPosition: "CC",
	})

	out, err := CSV(testLogger(), Options{
		PNGFiles: []string{png1, png2},
		DICOMDir: dicomDir,
		SaveDir:  filepath.Join(dir, "save"),
	})
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	if filepath.Base(out) != "mammo_batch.csv" {
		t.Errorf("CSV named %s, want mammo_batch.csv", filepath.Base(out))
	}

	rows := readRows(t, out)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	wantHeader := []string{"patient_id", "exam_id", "laterality", "view", "file_path"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	if rows[1][0] != "P100" || rows[1][2] != "R" || rows[1][3] != "MLO" {
		t.Errorf("row 1 = %v, want inferred R/MLO for P100", rows[1])
	}
	if rows[2][0] != "P200" || rows[2][2] != "L" || rows[2][3] != "CC" {
		t.Errorf("row 2 = %v, want explicit L/CC for P200", rows[2])
	}

	// exam_id is a placeholder: always the literal 0.
	for _, row := range rows[1:] {
		if row[1] != "0" {
			t.Errorf("exam_id = %q, want the constant 0", row[1])
		}
	}

	// Paths use forward slashes on every platform.
	for _, row := range rows[1:] {
		if filepath.ToSlash(row[4]) != row[4] {
			t.Errorf("file_path %q not slash-normalized", row[4])
		}
	}
}

func TestCSVFileListMode(t *testing.T) {
	dir := t.TempDir()
	dcm := filepath.Join(dir, "exam.dcm")
	if err := (fixture.File{PatientID: "P1"}).Write(dcm); err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "exam.png")
	if err := os.WriteFile(png, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := CSV(testLogger(), Options{
		PNGFiles:   []string{png},
		DICOMFiles: []string{dcm},
		FileList:   true,
		SaveDir:    filepath.Join(dir, "save"),
	})
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	if filepath.Base(out) != FileListName {
		t.Errorf("CSV named %s, want %s", filepath.Base(out), FileListName)
	}

	rows := readRows(t, out)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[1][0] != "P1" {
		t.Errorf("patient_id = %q, want P1", rows[1][0])
	}
}

func TestCSVEmptyInput(t *testing.T) {
	out, err := CSV(testLogger(), Options{SaveDir: t.TempDir()})
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}
	if out != "" {
		t.Errorf("got path %q for empty input, want none", out)
	}
}

func TestCSVSkipsUnreadableSibling(t *testing.T) {
	dir := t.TempDir()
	dicomDir := filepath.Join(dir, "batch")
	pngDir := filepath.Join(dir, "png")
	for _, d := range []string{dicomDir, pngDir} {
		if err := os.Mkdir(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	_, goodPNG := writePair(t, dicomDir, pngDir, "good", fixture.File{PatientID: "P1"})

	// PNG with no DICOM sibling: its row is skipped, the rest survive.
	orphanPNG := filepath.Join(pngDir, "orphan.png")
	if err := os.WriteFile(orphanPNG, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := CSV(testLogger(), Options{
		PNGFiles: []string{goodPNG, orphanPNG},
		DICOMDir: dicomDir,
		SaveDir:  filepath.Join(dir, "save"),
	})
	if err != nil {
		t.Fatalf("CSV failed: %v", err)
	}

	rows := readRows(t, out)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 (orphan skipped)", len(rows))
	}
	if rows[1][0] != "P1" {
		t.Errorf("surviving row = %v, want P1", rows[1])
	}
}
