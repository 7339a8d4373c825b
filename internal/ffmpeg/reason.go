package ffmpeg

import (
	"errors"
	"os/exec"
	"regexp"
	"strings"
)

// Pre-compiled patterns mapping well-known ffmpeg stderr output to concise
// failure reasons. Checked in order; the first match wins. Everything else
// falls back to the last meaningful stderr line.
var reasonPatterns = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`No such file or directory`), "source file not found or not readable"},
	{regexp.MustCompile(`Permission denied`), "permission denied"},
	{regexp.MustCompile(`Invalid data found when processing input`), "invalid or corrupt input data"},
	{regexp.MustCompile(`(?i)matches no streams|Cannot find a matching stream`), "no matching audio stream for loudnorm"},
	{regexp.MustCompile(`No space left on device`), "no space left on device"},
	{regexp.MustCompile(`(?i)Unknown encoder`), "required encoder not available"},
	{regexp.MustCompile(`(?i)Error while decoding stream`), "decode error in source stream"},
}

// Reason condenses a failed ffmpeg invocation into a single human-readable
// line for the job record: a classified stderr pattern when one matches,
// the signal name when ffmpeg was killed, otherwise the last non-empty
// stderr line (or the raw exec error as a last resort).
func Reason(stderr string, err error) string {
	for _, p := range reasonPatterns {
		if p.re.MatchString(stderr) {
			return p.reason
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && !exitErr.Exited() {
		return "ffmpeg terminated: " + exitErr.String()
	}

	if line := lastLine(stderr); line != "" {
		return line
	}
	if err != nil {
		return err.Error()
	}
	return "ffmpeg failed"
}

// lastLine returns the last non-empty line of s, skipping ffmpeg's
// carriage-return progress updates.
func lastLine(s string) string {
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		// Progress lines carry no diagnostic value.
		if strings.HasPrefix(line, "frame=") || strings.HasPrefix(line, "size=") {
			continue
		}
		return line
	}
	return ""
}
