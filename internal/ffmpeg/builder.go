package ffmpeg

import (
	"strconv"

	"github.com/backmassage/loudmaster/internal/config"
)

// LoudnormFilter renders the loudnorm audio filter expression for the
// configured targets, e.g. "loudnorm=I=-14:LRA=11:TP=-1.5".
func LoudnormFilter(cfg *config.Config) string {
	return "loudnorm" +
		"=I=" + formatTarget(cfg.TargetLUFS) +
		":LRA=" + formatTarget(cfg.LoudnessRange) +
		":TP=" + formatTarget(cfg.TruePeak)
}

func formatTarget(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Build constructs the complete ffmpeg argument slice for one file. The
// command keeps every stream (-map 0), copies video and subtitles without
// re-encoding, and re-encodes audio to AAC through the loudnorm filter,
// matching the legacy normalizer's invocation.
func Build(cfg *config.Config, inputPath, outputPath string) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	// Loglevel: info when verbose, otherwise error.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// Stats for live progress display.
	if cfg.Verbose || cfg.ShowFfmpegStats {
		args = append(args, "-stats", "-stats_period", "1")
	}

	// Hardware-accelerated decode when available; decode only, the video
	// stream itself is copied.
	args = append(args, "-hwaccel", "auto")

	// --- Input ---
	args = append(args, "-i", inputPath)

	// --- Stream maps and codecs ---
	args = append(args,
		"-map", "0",
		"-threads", "auto",
		"-c:v", "copy",
		"-c:s", "copy",
		"-c:a", cfg.AudioCodec,
		"-b:a", cfg.AudioBitrate,
		"-af", LoudnormFilter(cfg),
	)

	// --- Output ---
	args = append(args, outputPath)

	return args
}
