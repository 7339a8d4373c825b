// Package display provides the startup banner and human-readable formatting
// for sizes, durations, throughput, and the end-of-run failure table.
package display

import (
	"fmt"
	"time"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDuration renders d as HH:MM:SS, matching the legacy script's
// elapsed-time display. Sub-second precision is truncated.
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatSpeed renders average throughput as "X.XX MB/s" from bytes processed
// over an elapsed wall-clock duration. Returns "n/a" for zero durations.
func FormatSpeed(bytes int64, elapsed time.Duration) string {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return "n/a"
	}
	mbps := float64(bytes) / (1024 * 1024) / secs
	return fmt.Sprintf("%.2f MB/s", mbps)
}
