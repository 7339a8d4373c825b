package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/backmassage/loudmaster/internal/config"
	"github.com/backmassage/loudmaster/internal/probe"
)

// Runner invokes ffmpeg for loudness normalization. It implements the
// driver's MediaTool interface.
type Runner struct {
	cfg *config.Config
}

// NewRunner returns a Runner bound to the run configuration.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Inspect probes source with ffprobe and returns its parsed metadata.
func (r *Runner) Inspect(ctx context.Context, source string) (*probe.Result, error) {
	return probe.Probe(ctx, source)
}

// Normalize runs ffmpeg on source, writing the normalized file to output.
// When live stats are enabled, stderr is tee'd to os.Stderr in real time;
// otherwise it is captured silently. On failure the returned error carries
// a condensed reason extracted from ffmpeg's stderr.
//
// The command is deliberately not bound to ctx: cancellation is honored at
// job boundaries by the driver, never by killing an in-flight write. ctx is
// only consulted before starting, so a cancelled run does not launch new
// ffmpeg processes.
func (r *Runner) Normalize(ctx context.Context, source, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	args := Build(r.cfg, source, output)
	cmd := exec.Command(args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if r.cfg.Verbose || r.cfg.ShowFfmpegStats {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		return errors.New(Reason(stderrBuf.String(), err))
	}
	return nil
}
