// Package mock provides scripted blocks for pipeline tests.
package mock

import (
	"github.com/dudk/sdrpipe"
)

// Runner is a scripted block. It reports Progress for Limit steps, then
// Blocked, and counts invocations.
type Runner struct {
	// Limit is the number of steps reporting Progress before the runner
	// blocks.
	Limit int
	// Err, if set, is returned from every step.
	Err error
	// FlushErr, if set, is returned from Flush.
	FlushErr error

	// Steps counts Step invocations.
	Steps int
	// Flushed counts Flush invocations.
	Flushed int
}

// Step implements the sdrpipe.Runner interface.
func (r *Runner) Step() (sdrpipe.Status, error) {
	r.Steps++
	if r.Err != nil {
		return sdrpipe.Blocked, r.Err
	}
	if r.Steps <= r.Limit {
		return sdrpipe.Progress, nil
	}
	return sdrpipe.Blocked, nil
}

// Flush implements the sdrpipe.Flusher interface.
func (r *Runner) Flush() error {
	r.Flushed++
	return r.FlushErr
}
