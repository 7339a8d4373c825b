// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe, the AAC encoder,
// and the loudnorm filter.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool or capability is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrAACEncodeFailed = errors.New("AAC test encode failed (aac encoder unusable)")
	ErrLoudnormMissing = errors.New("loudnorm filter test failed (ffmpeg built without loudnorm)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, the AAC encoder, and the loudnorm filter. Informational only —
// it does not stop on failure. Returns false if any check failed.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFfmpeg(log)
	ok = checkFfprobe(log) && ok
	ok = checkAAC(log) && ok
	ok = checkLoudnorm(log) && ok
	return ok
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) bool {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Error("ffmpeg not found")
		return false
	}
	line, err := versionLine("ffmpeg")
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return false
	}
	log.Success("ffmpeg: %s", line)
	return true
}

// checkFfprobe verifies ffprobe is on PATH and logs its version string.
func checkFfprobe(log Logger) bool {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		log.Error("ffprobe not found")
		return false
	}
	line, err := versionLine("ffprobe")
	if err != nil {
		log.Warn("ffprobe found but -version failed: %v", err)
		return false
	}
	log.Success("ffprobe: %s", line)
	return true
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(log Logger) bool {
	log.Info("Testing AAC encoder...")
	if runSilent("ffmpeg", aacTestArgs()...) {
		log.Success("AAC encoder works")
		return true
	}
	log.Error("AAC encoder test failed")
	return false
}

// checkLoudnorm runs a minimal loudnorm pass to verify the filter is compiled in.
func checkLoudnorm(log Logger) bool {
	log.Info("Testing loudnorm filter...")
	if runSilent("ffmpeg", loudnormTestArgs()...) {
		log.Success("loudnorm filter works")
		return true
	}
	log.Error("loudnorm filter test failed")
	return false
}

// CheckDeps is the pre-pipeline validation: it verifies that ffmpeg and
// ffprobe are on PATH and that the AAC encoder and loudnorm filter actually
// work, via two short synthetic encodes. Returns a sentinel error on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent("ffmpeg", aacTestArgs()...) {
		return ErrAACEncodeFailed
	}
	if !runSilent("ffmpeg", loudnormTestArgs()...) {
		return ErrLoudnormMissing
	}
	return nil
}

// --- internal helpers ---

// versionLine returns the first line of "<tool> -version" output.
func versionLine(tool string) (string, error) {
	out, err := exec.Command(tool, "-version").Output()
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return line, nil
}

// aacTestArgs returns the ffmpeg arguments for a minimal AAC test encode.
// Shared by checkAAC and CheckDeps to avoid duplicating the argument list.
func aacTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	}
}

// loudnormTestArgs returns the ffmpeg arguments for a minimal loudnorm pass.
func loudnormTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-af", "loudnorm=I=-14:LRA=11:TP=-1.5",
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
