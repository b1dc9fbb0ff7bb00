// Package runlog correlates one planning run's log lines with a short
// run ID (SPEC_FULL.md §4.10), the way the teacher's services correlate
// request logs: a *log.Logger injected at construction, with a
// nil-argument falling back to log.Default() (see e.g.
// internal/audit.NewService, internal/scene.NewPreFlightChecker).
package runlog

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Run wraps a *log.Logger with a run=<id> prefix and tracks the run's
// wall-clock start for timing log lines.
type Run struct {
	ID     string
	logger *log.Logger
	start  time.Time
}

// New starts a run, generating a fresh UUID correlation ID. A nil logger
// falls back to log.Default(), the same convention every teacher service
// constructor uses.
func New(logger *log.Logger) *Run {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	return &Run{
		ID:     id,
		logger: log.New(logger.Writer(), "run="+id+" ", logger.Flags()),
		start:  time.Now(),
	}
}

// Logf writes one correlated log line.
func (r *Run) Logf(format string, args ...interface{}) {
	r.logger.Printf(format, args...)
}

// Elapsed returns the time since the run started.
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.start)
}

// Done logs the run's total elapsed time, typically called via defer
// right after New.
func (r *Run) Done() {
	r.Logf("done in %s", r.Elapsed())
}
