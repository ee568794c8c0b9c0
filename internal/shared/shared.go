// package shared defines helpers used across the sync service
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// RunLogger creates a child [log.Logger] tagged with a sync run id so that
// every entry of one run can be correlated in aggregated output.
func RunLogger(l *log.Logger, runID string) *log.Logger {
	return l.With("run_id", runID)
}

// GenerateRunID generates a new v4 [uuid.UUID] as a string
func GenerateRunID() string {
	return uuid.New().String()
}
