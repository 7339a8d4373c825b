package pipeline

import (
	"time"

	"github.com/backmassage/loudmaster/internal/naming"
)

// Status is a Job's lifecycle state. Transitions are Pending→Succeeded or
// Pending→Failed; terminal states are final, there are no retries.
type Status int

const (
	StatusPending Status = iota
	StatusSucceeded
	StatusFailed
)

// String returns the lowercase status label used in progress output.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// ReasonOutputExists is the failure reason recorded when a job's output path
// is already occupied. The tool is never invoked for such jobs, so nothing
// is silently overwritten.
const ReasonOutputExists = "output already exists"

// Job tracks one file's normalization task: the source path, the derived
// sibling output path, the terminal outcome, and per-file statistics for the
// run summary. Jobs are created by Discover and resolved exactly once by Run.
type Job struct {
	Source string
	Output string
	Status Status
	Reason string // Set iff Status == StatusFailed.

	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// NewJob creates a pending Job for source with the output path derived from
// the configured prefix.
func NewJob(source, prefix string) *Job {
	return &Job{
		Source: source,
		Output: naming.OutputPath(source, prefix),
		Status: StatusPending,
	}
}

// markFailed resolves the job as Failed with reason. No-op once terminal.
func (j *Job) markFailed(reason string) {
	if j.Status != StatusPending {
		return
	}
	j.Status = StatusFailed
	j.Reason = reason
}

// markSucceeded resolves the job as Succeeded. No-op once terminal.
func (j *Job) markSucceeded() {
	if j.Status != StatusPending {
		return
	}
	j.Status = StatusSucceeded
}
