package pipeline

import "time"

// RunSummary tracks aggregate counters, byte totals, and the ordered list of
// failed jobs across a batch run. It is owned exclusively by Run's sequential
// loop; no locking is needed because nothing else touches it.
type RunSummary struct {
	RunID string

	Total     int
	Current   int
	Succeeded int
	Failed    int

	// FailedJobs lists failed jobs in processing order, for the final report.
	FailedJobs []*Job

	TotalInputBytes  int64
	TotalOutputBytes int64
	Elapsed          time.Duration

	// Interrupted is set when cancellation stopped the run at a job boundary;
	// jobs after the boundary were never attempted and remain Pending.
	Interrupted bool
}

// record folds one resolved job into the summary counters.
func (s *RunSummary) record(j *Job) {
	switch j.Status {
	case StatusSucceeded:
		s.Succeeded++
		s.TotalInputBytes += j.InputBytes
		s.TotalOutputBytes += j.OutputBytes
	case StatusFailed:
		s.Failed++
		s.FailedJobs = append(s.FailedJobs, j)
	}
}

// Completed returns the number of jobs that reached a terminal state.
func (s *RunSummary) Completed() int {
	return s.Succeeded + s.Failed
}
