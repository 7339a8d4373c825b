package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into loudness, output, behavior, display, and utility.
// Negated flags (e.g. --no-ffmpeg-stats) are applied after Parse so Config
// defaults (and config-file values) hold unless the user passes the flag.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFlags parses args (excluding the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, too many positional args).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("loudmaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Negated/override flags: we capture values then apply to cfg after Parse,
	// so that defaults from DefaultConfig()/LoadFile hold unless the user
	// passes the flag.
	var negated negatedFlags

	defineLoudnessFlags(fs, cfg)
	defineOutputFlags(fs, cfg, &negated)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "loudmaster v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds flags that are applied after Parse. These either invert
// a default (e.g. noFfmpegStats -> ShowFfmpegStats=false), override a value
// captured as a string (extension list), or trigger exit (showHelp,
// showVersion).
type negatedFlags struct {
	noFfmpegStats bool
	forceColor    bool
	noColor       bool
	extList       string
	showVersion   bool
	showHelp      bool
}

// defineLoudnessFlags registers --target, --lra, --tp, -b/--audio-bitrate.
func defineLoudnessFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.TargetLUFS, "target", cfg.TargetLUFS, "Integrated loudness target in LUFS")
	fs.Float64Var(&cfg.TargetLUFS, "t", cfg.TargetLUFS, "Same as --target")
	fs.Float64Var(&cfg.LoudnessRange, "lra", cfg.LoudnessRange, "Loudness range target (LU)")
	fs.Float64Var(&cfg.TruePeak, "tp", cfg.TruePeak, "Maximum true peak in dBFS")
	fs.StringVar(&cfg.AudioBitrate, "audio-bitrate", cfg.AudioBitrate, "AAC output bitrate (e.g. 192k)")
	fs.StringVar(&cfg.AudioBitrate, "b", cfg.AudioBitrate, "Same as --audio-bitrate")
}

// defineOutputFlags registers --prefix and --ext.
func defineOutputFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.OutputPrefix, "prefix", cfg.OutputPrefix, "Output filename prefix")
	fs.StringVar(&n.extList, "ext", "", "Comma-separated extension set (e.g. mp4,mkv)")
}

// defineBehaviorFlags registers -r/--recurse, -f/--force, -d/--dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Recurse, "recurse", cfg.Recurse, "Process subdirectories")
	fs.BoolVar(&cfg.Recurse, "r", cfg.Recurse, "Same as --recurse")
	fs.BoolVar(&cfg.Force, "force", false, "Overwrite existing output files")
	fs.BoolVar(&cfg.Force, "f", false, "Same as --force")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not invoke ffmpeg")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&n.noFfmpegStats, "no-ffmpeg-stats", false, "Do not show live ffmpeg progress")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg
// (e.g. noFfmpegStats -> ShowFfmpegStats=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noFfmpegStats {
		cfg.ShowFfmpegStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if n.extList != "" {
		cfg.Extensions = strings.Split(n.extList, ",")
	}
}

// parsePositionalArgs sets InputDir from the single optional positional arg.
// When it is absent the caller decides whether to prompt interactively.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.InputDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("expected at most one input_dir argument, got %d", len(args))
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Loudmaster v" + version + " — batch audio loudness normalizer for video files"},
		{"", ""},
		{"  loudmaster [OPTIONS] [input_dir]", ""},
		{"", ""},
		{"  Without input_dir, prompts interactively when run on a terminal.", ""},
		{"", ""},
		{"Loudness", ""},
		{"  -t, --target <lufs>", "Integrated loudness target (default: " + formatFloat(-14) + " LUFS)"},
		{"  --lra <lu>", "Loudness range target (default: 11)"},
		{"  --tp <dbfs>", "Maximum true peak (default: -1.5)"},
		{"  -b, --audio-bitrate <rate>", "AAC output bitrate (default: 192k)"},
		{"", ""},
		{"Output", ""},
		{"  --prefix <string>", "Output filename prefix (default: normalized_)"},
		{"  --ext <list>", "Extension set, comma-separated (default: mp4,mkv,avi,mov,wmv,flv)"},
		{"", ""},
		{"Behavior", ""},
		{"  -r, --recurse", "Process subdirectories"},
		{"  -f, --force", "Overwrite existing output files"},
		{"  -d, --dry-run", "Preview only; do not invoke ffmpeg"},
		{"", ""},
		{"Display", ""},
		{"  --no-ffmpeg-stats", "Disable live ffmpeg progress"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, AAC, loudnorm)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
