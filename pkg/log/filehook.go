// Package log carries logging plumbing shared by the commands.
package log

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// FileHook mirrors every log entry, regardless of the console level, into a
// plain-text file. Useful for keeping a full debug trace of a crawl while
// the console stays at info.
type FileHook struct {
	file      *os.File
	formatter logrus.Formatter
}

// NewFileHook opens (appending) the log file at path.
func NewFileHook(path string) (*FileHook, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", path, err)
	}
	return &FileHook{
		file: f,
		formatter: &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		},
	}, nil
}

// Levels reports that the hook receives all levels.
func (h *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire writes one formatted entry to the file.
func (h *FileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.file.Write(line)
	return err
}

// Close closes the underlying file.
func (h *FileHook) Close() error {
	return h.file.Close()
}
