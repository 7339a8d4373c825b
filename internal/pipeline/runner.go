package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/loudmaster/internal/config"
	"github.com/backmassage/loudmaster/internal/display"
	"github.com/backmassage/loudmaster/internal/logging"
	"github.com/backmassage/loudmaster/internal/naming"
	"github.com/backmassage/loudmaster/internal/probe"
)

// MediaTool is the narrow interface to the external media framework. The
// driver's sequencing and failure-isolation logic only ever sees this
// interface, so it can be tested with a fake implementation and no ffmpeg
// installed. The production implementation is ffmpeg.Runner.
type MediaTool interface {
	// Inspect returns stream metadata for source (pre-flight and reporting).
	Inspect(ctx context.Context, source string) (*probe.Result, error)
	// Normalize writes the loudness-normalized rendition of source to output.
	// A non-nil error carries the failure reason; the caller owns cleanup of
	// any partial output file.
	Normalize(ctx context.Context, source, output string) error
}

// Sources smaller than this are rejected as corrupt before invoking the tool.
const minFileSize = 1000

// Run is the batch driver. It processes jobs strictly one at a time: output
// collision guard, probe, tool invocation, outcome bookkeeping. A failed job
// never aborts the run. Cancellation is honored only between jobs; the
// remaining jobs stay Pending and the summary is marked Interrupted.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, jobs []*Job, tool MediaTool) RunSummary {
	summary := RunSummary{
		RunID: uuid.NewString(),
		Total: len(jobs),
	}
	start := time.Now()

	logBatchHeader(cfg, log, &summary)

	for i, job := range jobs {
		if ctx.Err() != nil {
			log.Warn("Interrupted, %d of %d files not attempted", summary.Total-summary.Completed(), summary.Total)
			summary.Interrupted = true
			break
		}

		summary.Current = i + 1
		processJob(ctx, cfg, log, job, &summary, tool)
		summary.record(job)
	}

	summary.Elapsed = time.Since(start)
	logSummary(cfg, log, &summary)
	return summary
}

// processJob handles one file: validate → collision guard → probe → normalize.
// Exactly one terminal status is assigned before it returns.
func processJob(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	job *Job,
	summary *RunSummary,
	tool MediaTool,
) {
	basename := filepath.Base(job.Source)
	log.Info("[%d/%d] %s", summary.Current, summary.Total, basename)

	if naming.IsPrefixed(job.Source, cfg.OutputPrefix) {
		log.Debug(cfg.Verbose, "Source already carries the %q prefix (prior output?)", cfg.OutputPrefix)
	}

	// --- Validate ---
	fi, err := os.Stat(job.Source)
	if err != nil {
		failJob(log, job, "source file not found or not readable")
		return
	}
	if fi.Size() < minFileSize {
		failJob(log, job, "file too small (possibly corrupt)")
		return
	}
	job.InputBytes = fi.Size()

	// --- Output collision guard (before the tool, so nothing is overwritten) ---
	if !cfg.Force {
		if _, err := os.Stat(job.Output); err == nil {
			failJob(log, job, ReasonOutputExists)
			return
		}
	}

	// --- Probe ---
	pr, err := tool.Inspect(ctx, job.Source)
	if err != nil {
		failJob(log, job, "cannot probe file (possibly corrupt)")
		return
	}
	if !pr.HasAudio() {
		failJob(log, job, "no audio stream")
		return
	}

	log.Info("  Size: %s | Duration: %s",
		display.FormatBytes(job.InputBytes),
		display.FormatDuration(time.Duration(pr.Duration()*float64(time.Second))))
	log.Info("  -> %s", filepath.Base(job.Output))

	// --- Dry-run ---
	if cfg.DryRun {
		job.markSucceeded()
		log.Success("[DRY] Would normalize")
		fmt.Println()
		return
	}

	// --- Invoke the tool ---
	begin := time.Now()
	if err := tool.Normalize(ctx, job.Source, job.Output); err != nil {
		removePartialOutput(log, job)
		failJob(log, job, err.Error())
		return
	}
	job.Elapsed = time.Since(begin)

	if outInfo, err := os.Stat(job.Output); err == nil {
		job.OutputBytes = outInfo.Size()
	}

	job.markSucceeded()
	log.Success("Normalized in %s (%s, output %s)",
		display.FormatDuration(job.Elapsed),
		display.FormatSpeed(job.InputBytes, job.Elapsed),
		display.FormatBytes(job.OutputBytes))
	fmt.Println()
}

// failJob resolves the job as Failed and emits its per-item progress line.
func failJob(log *logging.Logger, job *Job, reason string) {
	job.markFailed(reason)
	log.Error("Failed: %s (%s)", filepath.Base(job.Source), reason)
	fmt.Println()
}

// removePartialOutput deletes whatever the tool left behind at the output
// path after an abnormal exit. The driver, not the tool, owns this cleanup.
func removePartialOutput(log *logging.Logger, job *Job) {
	if err := os.Remove(job.Output); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Could not remove partial output %s: %v", job.Output, err)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, summary *RunSummary) {
	log.Info("Run %s", summary.RunID)
	log.Info("Found %d video files", summary.Total)
	log.Info("Target: %g LUFS, LRA %g, true peak %g dBFS", cfg.TargetLUFS, cfg.LoudnessRange, cfg.TruePeak)
	log.Info("Audio: %s @ %s; video and subtitles stream-copied", cfg.AudioCodec, cfg.AudioBitrate)
	log.Info("Output: sibling files prefixed %q", cfg.OutputPrefix)
	if cfg.Force {
		log.Warn("Force: existing outputs will be overwritten")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, s *RunSummary) {
	log.Info("==============================")
	log.Info("Done: %d normalized, %d failed, %d total", s.Succeeded, s.Failed, s.Total)
	log.Info("  Elapsed: %s", display.FormatDuration(s.Elapsed))

	if cfg.DryRun {
		log.Info("  Bytes processed: n/a (dry run)")
	} else if s.Succeeded > 0 {
		log.Info("  Input %s -> output %s",
			display.FormatBytes(s.TotalInputBytes),
			display.FormatBytes(s.TotalOutputBytes))
	}

	if s.Interrupted {
		log.Warn("  Interrupted: %d of %d files not attempted", s.Total-s.Completed(), s.Total)
	}

	if len(s.FailedJobs) > 0 {
		log.Error("Failed files:")
		rows := make([][]string, 0, len(s.FailedJobs))
		for _, j := range s.FailedJobs {
			rows = append(rows, []string{filepath.Base(j.Source), j.Reason})
		}
		fmt.Println(display.RenderTable([]string{"File", "Reason"}, rows))
	} else if s.Total > 0 && !s.Interrupted {
		log.Success("All files processed successfully")
	}
}
