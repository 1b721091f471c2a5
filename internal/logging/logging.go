// Package logging builds the service logger.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a [log.Logger] writing to w (stderr when nil) with timestamps and caller reporting.
// An unknown level name falls back to info.
func New(w io.Writer, level string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Prefix:          "catalog",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
