package rewrite

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/mrsinham/dicomexport/internal/dicom/fixture"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeEditor records rewrite calls and optionally fails some of them.
type fakeEditor struct {
	calls  []call
	failOn string
	err    error
}

type call struct {
	path        string
	laterality  string
	description string
}

func (f *fakeEditor) Rewrite(path, laterality, description string) error {
	if f.failOn != "" && strings.Contains(path, f.failOn) {
		return f.err
	}
	f.calls = append(f.calls, call{path, laterality, description})
	return nil
}

func TestApplyUsesInferredLateralityAndSOPClass(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.dcm")
	fx := fixture.File{
		SOPClassUID:            "1.2.840.10008.5.1.4.1.1.1.2",
		AcquisitionDescription: "R MLO breast",
	}
	if err := fx.Write(path); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ed := &fakeEditor{}
	if err := Apply(testLogger(), ed, []string{path}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(ed.calls) != 1 {
		t.Fatalf("got %d rewrite calls, want 1", len(ed.calls))
	}
	got := ed.calls[0]
	if got.laterality != "R" {
		t.Errorf("laterality = %q, want inferred R", got.laterality)
	}
	if got.description != "1.2.840.10008.5.1.4.1.1.1.2" {
		t.Errorf("description = %q, want the SOP class UID", got.description)
	}
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0, 2)
	for _, name := range []string{"first.dcm", "second.dcm"} {
		p := filepath.Join(dir, name)
		if err := (fixture.File{}).Write(p); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	ed := &fakeEditor{failOn: "first", err: errors.New("exit status 1")}
	if err := Apply(testLogger(), ed, paths); err != nil {
		t.Fatalf("Apply returned %v, per-file failures must not abort", err)
	}

	if len(ed.calls) != 1 || !strings.Contains(ed.calls[0].path, "second") {
		t.Errorf("calls = %v, want only second.dcm rewritten", ed.calls)
	}
}

func TestApplyAbortsWhenDCMTKMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.dcm")
	if err := (fixture.File{}).Write(path); err != nil {
		t.Fatal(err)
	}

	ed := &fakeEditor{failOn: "scan", err: ErrDCMTKMissing}
	err := Apply(testLogger(), ed, []string{path})
	if !errors.Is(err, ErrDCMTKMissing) {
		t.Errorf("got %v, want ErrDCMTKMissing to abort the batch", err)
	}
}

func TestApplySkipsUnreadableFiles(t *testing.T) {
	ed := &fakeEditor{}
	err := Apply(testLogger(), ed, []string{filepath.Join(t.TempDir(), "missing.dcm")})
	if err != nil {
		t.Fatalf("Apply returned %v, unreadable files must be skipped", err)
	}
	if len(ed.calls) != 0 {
		t.Errorf("got %d calls, want none", len(ed.calls))
	}
}

func TestDCMTKMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	d := &DCMTK{}
	err := d.Rewrite("scan.dcm", "L", "desc")
	if !errors.Is(err, ErrDCMTKMissing) {
		t.Errorf("got %v, want ErrDCMTKMissing", err)
	}
}

func TestDeleteBackups(t *testing.T) {
	dir := t.TempDir()
	withBak := filepath.Join(dir, "a.dcm")
	if err := os.WriteFile(withBak+".bak", []byte("backup"), 0644); err != nil {
		t.Fatal(err)
	}
	withoutBak := filepath.Join(dir, "b.dcm")

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	DeleteBackups(log, []string{withBak, withoutBak})

	if _, err := os.Stat(withBak + ".bak"); !os.IsNotExist(err) {
		t.Errorf("backup %s.bak still exists", withBak)
	}
	if !strings.Contains(buf.String(), "no backup to delete") {
		t.Errorf("missing backup did not log a warning:\n%s", buf.String())
	}
}
