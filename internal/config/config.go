// Package config holds runtime configuration: defaults, the optional TOML
// config file, CLI flag parsing, interactive prompting, and validation.
// All processing defaults match the legacy normalizer script for parity.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Loudness parameter bounds accepted by ffmpeg's loudnorm filter.
const (
	TargetLUFSMin = -70.0
	TargetLUFSMax = -5.0
	LRAMin        = 1.0
	LRAMax        = 50.0
	TruePeakMin   = -9.0
	TruePeakMax   = 0.0
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it. It is read-only once
// the run starts.
type Config struct {
	// Input (positional arg or interactive prompt).
	InputDir string `toml:"-"`
	Recurse  bool   `toml:"recurse"`

	// Loudness normalization targets (EBU R128 via loudnorm).
	TargetLUFS    float64 `toml:"target_lufs"`    // Default: -14.
	LoudnessRange float64 `toml:"loudness_range"` // Default: 11.
	TruePeak      float64 `toml:"true_peak"`      // Default: -1.5 dBFS.

	// Audio encoding.
	AudioCodec   string `toml:"-"`             // Fixed: "aac".
	AudioBitrate string `toml:"audio_bitrate"` // Default: "192k".

	// Output naming.
	OutputPrefix string   `toml:"output_prefix"` // Default: "normalized_".
	Extensions   []string `toml:"extensions"`    // Default: mp4 mkv avi mov wmv flv.

	// Behavior flags.
	DryRun bool `toml:"-"`
	Force  bool `toml:"-"` // Overwrite existing outputs instead of failing the job.

	// Display and logging.
	Verbose         bool      `toml:"-"`
	ShowFfmpegStats bool      `toml:"show_ffmpeg_stats"` // Default: true. Live -stats tee.
	ColorMode       ColorMode `toml:"color"`             // Default: "auto".
	LogFile         string    `toml:"log_file"`          // Optional log file path.
	CheckOnly       bool      `toml:"-"`                 // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the legacy
// normalizer behavior (-14 LUFS, LRA 11, TP -1.5, AAC 192k, prefix
// "normalized_"). Used as the base before file and flag overrides.
func DefaultConfig() Config {
	return Config{
		Recurse:         false,
		TargetLUFS:      -14,
		LoudnessRange:   11,
		TruePeak:        -1.5,
		AudioCodec:      "aac",
		AudioBitrate:    "192k",
		OutputPrefix:    "normalized_",
		Extensions:      []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv"},
		DryRun:          false,
		Force:           false,
		Verbose:         false,
		ShowFfmpegStats: true,
		ColorMode:       ColorAuto,
		CheckOnly:       false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks loudness targets against loudnorm's accepted ranges,
// canonicalizes the audio bitrate and extension set, and rejects output
// prefixes that would escape the source directory or collide with the
// source filename.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.TargetLUFS < TargetLUFSMin || c.TargetLUFS > TargetLUFSMax {
		return fmt.Errorf("target loudness %g LUFS out of range (%g to %g)",
			c.TargetLUFS, TargetLUFSMin, TargetLUFSMax)
	}
	if c.LoudnessRange < LRAMin || c.LoudnessRange > LRAMax {
		return fmt.Errorf("loudness range %g out of range (%g to %g)",
			c.LoudnessRange, LRAMin, LRAMax)
	}
	if c.TruePeak < TruePeakMin || c.TruePeak > TruePeakMax {
		return fmt.Errorf("true peak %g dBFS out of range (%g to %g)",
			c.TruePeak, TruePeakMin, TruePeakMax)
	}

	normalizedBitrate, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalizedBitrate

	if err := validatePrefix(c.OutputPrefix); err != nil {
		return err
	}

	normalizedExts, err := normalizeExtensions(c.Extensions)
	if err != nil {
		return err
	}
	c.Extensions = normalizedExts

	return nil
}

// validatePrefix ensures the output prefix is non-empty and cannot change the
// output's directory. The prefix is what guarantees output path != source
// path, so an empty prefix would silently overwrite sources.
func validatePrefix(prefix string) error {
	if prefix == "" {
		return errors.New("output prefix must not be empty")
	}
	if strings.ContainsRune(prefix, filepath.Separator) || strings.ContainsRune(prefix, '/') {
		return fmt.Errorf("output prefix %q must not contain a path separator", prefix)
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "192", "192k", "192K", "192kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 192k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}

// normalizeExtensions lowercases each extension and ensures a leading dot.
// Accepted forms: "mp4", ".mp4", "MP4".
func normalizeExtensions(exts []string) ([]string, error) {
	if len(exts) == 0 {
		return nil, errors.New("extension set must not be empty")
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		s := strings.ToLower(strings.TrimSpace(e))
		if s != "" && !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		if len(s) < 2 {
			return nil, errors.New("extension set contains an empty entry")
		}
		out = append(out, s)
	}
	return out, nil
}

// ExtensionSet returns the configured extensions as a lookup map keyed by
// lowercase extension with leading dot.
func (c *Config) ExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.Extensions))
	for _, e := range c.Extensions {
		set[e] = true
	}
	return set
}
