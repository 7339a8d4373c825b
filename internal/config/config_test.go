package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/library", "/media/library"},
		{"single trailing slash", "/media/library/", "/media/library"},
		{"multiple trailing slashes", "/media/library///", "/media/library"},
		{"root path", "/", "/"},
		{"relative path", "videos", "videos"},
		{"relative with slash", "videos/", "videos"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_LoudnessRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"target at lower bound", func(c *Config) { c.TargetLUFS = -70 }, false},
		{"target below lower bound", func(c *Config) { c.TargetLUFS = -70.5 }, true},
		{"target above upper bound", func(c *Config) { c.TargetLUFS = -4 }, true},
		{"lra at upper bound", func(c *Config) { c.LoudnessRange = 50 }, false},
		{"lra below range", func(c *Config) { c.LoudnessRange = 0.5 }, true},
		{"true peak zero is valid", func(c *Config) { c.TruePeak = 0 }, false},
		{"true peak positive", func(c *Config) { c.TruePeak = 1 }, true},
		{"true peak too low", func(c *Config) { c.TruePeak = -10 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AudioBitrate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare number", "192", "192k", false},
		{"k suffix", "192k", "192k", false},
		{"uppercase K", "192K", "192k", false},
		{"kbps suffix", "192kbps", "192k", false},
		{"other value", "256k", "256k", false},
		{"empty", "", "", true},
		{"zero", "0", "", true},
		{"negative", "-5k", "", true},
		{"garbage", "fast", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AudioBitrate = tt.in
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.AudioBitrate != tt.want {
				t.Errorf("AudioBitrate = %q, want %q", cfg.AudioBitrate, tt.want)
			}
		})
	}
}

func TestValidate_OutputPrefix(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"default prefix", "normalized_", false},
		{"custom prefix", "loud-", false},
		{"empty prefix", "", true},
		{"prefix with slash", "out/", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.OutputPrefix = tt.prefix
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Extensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extensions = []string{"MP4", ".mkv", "webm"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []string{".mp4", ".mkv", ".webm"}
	for i, e := range want {
		if cfg.Extensions[i] != e {
			t.Errorf("Extensions[%d] = %q, want %q", i, cfg.Extensions[i], e)
		}
	}

	cfg = DefaultConfig()
	cfg.Extensions = nil
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with empty extension set")
	}

	cfg = DefaultConfig()
	cfg.Extensions = []string{"mp4", ""}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with a blank extension entry")
	}
}

func TestExtensionSet(t *testing.T) {
	cfg := DefaultConfig()
	set := cfg.ExtensionSet()
	for _, e := range []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv"} {
		if !set[e] {
			t.Errorf("ExtensionSet() missing %q", e)
		}
	}
	if set[".mp3"] {
		t.Error("ExtensionSet() should not contain .mp3")
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TargetLUFS != -14 {
		t.Errorf("default TargetLUFS = %g, want -14", cfg.TargetLUFS)
	}
	if cfg.LoudnessRange != 11 {
		t.Errorf("default LoudnessRange = %g, want 11", cfg.LoudnessRange)
	}
	if cfg.TruePeak != -1.5 {
		t.Errorf("default TruePeak = %g, want -1.5", cfg.TruePeak)
	}
	if cfg.AudioBitrate != "192k" {
		t.Errorf("default AudioBitrate = %q, want 192k", cfg.AudioBitrate)
	}
	if cfg.OutputPrefix != "normalized_" {
		t.Errorf("default OutputPrefix = %q, want normalized_", cfg.OutputPrefix)
	}
	if cfg.Recurse {
		t.Error("default Recurse should be false")
	}
	if cfg.Force {
		t.Error("default Force should be false")
	}
	if !cfg.ShowFfmpegStats {
		t.Error("default ShowFfmpegStats should be true")
	}
}

func TestLoadFileFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
target_lufs = -16.0
audio_bitrate = "256k"
output_prefix = "loud_"
recurse = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFileFrom(&cfg, path); err != nil {
		t.Fatalf("LoadFileFrom: %v", err)
	}

	if cfg.TargetLUFS != -16 {
		t.Errorf("TargetLUFS = %g, want -16", cfg.TargetLUFS)
	}
	if cfg.AudioBitrate != "256k" {
		t.Errorf("AudioBitrate = %q, want 256k", cfg.AudioBitrate)
	}
	if cfg.OutputPrefix != "loud_" {
		t.Errorf("OutputPrefix = %q, want loud_", cfg.OutputPrefix)
	}
	if !cfg.Recurse {
		t.Error("Recurse should be true")
	}
	// Keys absent from the file keep their defaults.
	if cfg.LoudnessRange != 11 {
		t.Errorf("LoudnessRange = %g, want default 11", cfg.LoudnessRange)
	}
}

func TestLoadFileFrom_MissingFileKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFileFrom(&cfg, filepath.Join(t.TempDir(), "nope.toml")); err != nil {
		t.Fatalf("LoadFileFrom on missing file: %v", err)
	}
	if cfg.TargetLUFS != -14 {
		t.Errorf("TargetLUFS = %g, want default -14", cfg.TargetLUFS)
	}
}

func TestLoadFileFrom_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("target_lufs = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFileFrom(&cfg, path); err == nil {
		t.Error("LoadFileFrom should fail on malformed TOML")
	}
}

func TestParseFlags(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{
		"--target", "-16", "--lra", "9", "--tp", "-2",
		"-b", "256k", "--prefix", "norm_", "--ext", "mp4,webm",
		"-r", "-f", "-d", "--no-ffmpeg-stats", "--no-color",
		"/media/videos/",
	})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	if cfg.TargetLUFS != -16 || cfg.LoudnessRange != 9 || cfg.TruePeak != -2 {
		t.Errorf("loudness flags: got I=%g LRA=%g TP=%g", cfg.TargetLUFS, cfg.LoudnessRange, cfg.TruePeak)
	}
	if cfg.AudioBitrate != "256k" {
		t.Errorf("AudioBitrate = %q, want 256k", cfg.AudioBitrate)
	}
	if cfg.OutputPrefix != "norm_" {
		t.Errorf("OutputPrefix = %q, want norm_", cfg.OutputPrefix)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != "mp4" {
		t.Errorf("Extensions = %v, want raw [mp4 webm] (normalized later by Validate)", cfg.Extensions)
	}
	if !cfg.Recurse || !cfg.Force || !cfg.DryRun {
		t.Error("behavior flags not applied")
	}
	if cfg.ShowFfmpegStats {
		t.Error("--no-ffmpeg-stats should clear ShowFfmpegStats")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if cfg.InputDir != "/media/videos" {
		t.Errorf("InputDir = %q, want /media/videos", cfg.InputDir)
	}
}

func TestParseFlags_NoPositionalLeavesInputEmpty(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.InputDir != "" {
		t.Errorf("InputDir = %q, want empty", cfg.InputDir)
	}
}

func TestParseFlags_TooManyArgs(t *testing.T) {
	cfg := DefaultConfig()
	err := ParseFlags(&cfg, "test", []string{"/a", "/b"})
	if err == nil {
		t.Fatal("ParseFlags should reject two positional args")
	}
}

func TestPromptForInput(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantDir     string
		wantRecurse bool
		wantErr     bool
	}{
		{"yes answer", "/media/videos/\ny\n", "/media/videos", true, false},
		{"uppercase yes", "/media/videos\nYES\n", "/media/videos", true, false},
		{"no answer", "/media/videos\nn\n", "/media/videos", false, false},
		{"anything else means no", "/media/videos\nmaybe\n", "/media/videos", false, false},
		{"empty dir", "\ny\n", "", false, true},
		{"eof before answer", "/media/videos\n", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			var out strings.Builder
			err := PromptForInput(&cfg, strings.NewReader(tt.input), &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PromptForInput error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.InputDir != tt.wantDir {
				t.Errorf("InputDir = %q, want %q", cfg.InputDir, tt.wantDir)
			}
			if cfg.Recurse != tt.wantRecurse {
				t.Errorf("Recurse = %v, want %v", cfg.Recurse, tt.wantRecurse)
			}
			if !strings.Contains(out.String(), "Enter the directory path") {
				t.Errorf("prompt text missing: %q", out.String())
			}
		})
	}
}
