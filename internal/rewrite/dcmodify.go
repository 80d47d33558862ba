// Package rewrite edits DICOM headers in place through the dcmtk dcmodify
// tool.
package rewrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrsinham/dicomexport/internal/metadata"
)

// ErrDCMTKMissing is returned when the dcmodify binary cannot be found.
var ErrDCMTKMissing = errors.New("dcmodify not found: install dcmtk (apt-get install dcmtk, " +
	"choco install dcmtk, or see https://dicom.offis.de/dcmtk.php.en)")

// DefaultTimeout bounds a single dcmodify invocation.
const DefaultTimeout = 30 * time.Second

// Editor rewrites laterality and series description headers of one file.
// The narrow interface keeps callers testable without spawning dcmodify.
type Editor interface {
	Rewrite(path, laterality, description string) error
}

// DCMTK is the dcmodify-backed Editor.
type DCMTK struct {
	// Timeout bounds each subprocess run. Zero uses DefaultTimeout.
	Timeout time.Duration
}

// Rewrite invokes dcmodify to set the image laterality (0020,0062) and
// series description (0008,103e) tags. A non-zero exit surfaces the exit
// status together with captured stderr; stdout is never inspected.
func (d *DCMTK) Rewrite(path, laterality, description string) error {
	if _, err := exec.LookPath("dcmodify"); err != nil {
		return ErrDCMTKMissing
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "dcmodify",
		"-i", fmt.Sprintf("(0020,0062)=%s", laterality),
		"-i", fmt.Sprintf("(0008,103e)=%s", description),
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("dcmodify exited with status %d: %s", exitErr.ExitCode(), stderr.String())
		}
		return fmt.Errorf("dcmodify: %w", err)
	}
	return nil
}

// Apply rewrites the headers of every file: laterality comes from the
// study info (inference included) and the description is the file's SOP
// class UID. Per-file failures are logged and skipped; a missing dcmodify
// binary aborts, since every remaining file would fail the same way.
func Apply(log *logrus.Logger, ed Editor, files []string) error {
	for _, path := range files {
		r, err := metadata.Open(path)
		if err != nil {
			log.Warnf("skipping header rewrite for %s: %v", path, err)
			continue
		}

		study := r.StudyInfo()
		if err := ed.Rewrite(path, study.Laterality, r.SOPClassUID()); err != nil {
			if errors.Is(err, ErrDCMTKMissing) {
				return err
			}
			log.Warnf("header rewrite failed for %s: %v", path, err)
			continue
		}
		log.Infof("rewrote headers of %s", path)
	}
	return nil
}

// DeleteBackups removes the .bak files dcmodify leaves next to each
// rewritten file. A missing backup is only a warning.
func DeleteBackups(log *logrus.Logger, files []string) {
	for _, path := range files {
		bak := path + ".bak"
		if err := os.Remove(bak); err != nil {
			if os.IsNotExist(err) {
				log.Warnf("no backup to delete: %s", bak)
			} else {
				log.Warnf("delete backup %s: %v", bak, err)
			}
			continue
		}
		log.Infof("deleted backup %s", bak)
	}
}
