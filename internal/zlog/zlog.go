// Package zlog configures the process-wide logger used by every zorkpp
// subcommand. It wraps charmbracelet/log so build output stays readable on
// a terminal (coloured levels, aligned fields) while still being plain text
// when redirected to a file or CI log.
package zlog

import (
	"os"

	"github.com/charmbracelet/log"
)

// L is the shared logger. Defaults to Info; SetVerbose raises it to Debug.
var L = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Level:           log.InfoLevel,
})

// SetVerbose raises the log level to Debug when verbose is true, otherwise
// leaves it at the default Info level.
func SetVerbose(verbose bool) {
	if verbose {
		L.SetLevel(log.DebugLevel)
	} else {
		L.SetLevel(log.InfoLevel)
	}
}

// WithPrefix returns a derived logger tagging every message with prefix,
// e.g. the config file name or compiler kind currently being processed.
func WithPrefix(prefix string) *log.Logger {
	return L.WithPrefix(prefix)
}
