// Package logging builds the file logger used by all entry points.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 5
)

// New returns a logger writing to the given file path through a rotating
// writer (5 MB per file, 5 backups kept). Callers own the instance; there
// is no package-level logger.
func New(path string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	})
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return log
}

// NewWriter returns a logger writing to an arbitrary writer. Used by tests
// to capture output without touching the filesystem.
func NewWriter(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	return log
}
