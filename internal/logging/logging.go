// Package logging builds the structured logger shared by the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at level ("debug", "info", "warn", "error").
// An unknown level falls back to info and is reported once.
func New(w io.Writer, level, prefix string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		l.SetLevel(log.InfoLevel)
		l.Warn("unknown log level, using info", "level", level)
		return l
	}
	l.SetLevel(lvl)
	return l
}
