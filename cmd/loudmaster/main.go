// Command loudmaster is the entrypoint for the LoudMaster batch loudness
// normalizer. It parses flags (optionally over a TOML config file), validates
// config and the input path, and either runs the system check (--check) or
// the discover/normalize pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/backmassage/loudmaster/internal/check"
	"github.com/backmassage/loudmaster/internal/config"
	"github.com/backmassage/loudmaster/internal/display"
	"github.com/backmassage/loudmaster/internal/ffmpeg"
	"github.com/backmassage/loudmaster/internal/logging"
	"github.com/backmassage/loudmaster/internal/pipeline"
	"github.com/backmassage/loudmaster/internal/term"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

// run holds the real entrypoint so deferred cleanup (log file, run lock)
// survives the exit path.
func run() int {
	// 1. Config: defaults, then the optional TOML file, then CLI flags.
	cfg := config.DefaultConfig()
	if err := config.LoadFile(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "loudmaster: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "loudmaster: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "loudmaster: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loudmaster: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	// 2. If user asked for the system check, run it and exit.
	if cfg.CheckOnly {
		if !check.RunCheck(log) {
			return 1
		}
		return 0
	}

	// 3. No directory argument: fall back to the interactive prompt when
	// stdin is a terminal, otherwise refuse.
	if cfg.InputDir == "" {
		if !term.IsTerminal(os.Stdin) {
			log.Error("%v", config.ErrNoInputDir)
			return 1
		}
		if err := config.PromptForInput(&cfg, os.Stdin, os.Stdout); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// 4. Resolve and validate the input path: must exist and be a directory.
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input path does not exist or is not a directory: %s", cfg.InputDir)
		return 1
	}
	if info, err := os.Stat(inputAbs); err != nil || !info.IsDir() {
		log.Error("Input path does not exist or is not a directory: %s", cfg.InputDir)
		return 1
	}
	cfg.InputDir = inputAbs

	log.Info("=== LoudMaster v%s (%s) ===", version, commit)
	log.Info("In: %s (recurse: %v)", cfg.InputDir, cfg.Recurse)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
	log.Info("")

	// 5. Ensure ffmpeg, ffprobe, the AAC encoder, and loudnorm are usable.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	// 6. One run per input tree: a second invocation on the same directory
	// would race on the normalized_ outputs.
	lock := flock.New(filepath.Join(inputAbs, ".loudmaster.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Error("Cannot acquire run lock: %v", err)
		return 1
	}
	if !locked {
		log.Error("Another loudmaster run is active on %s", inputAbs)
		return 1
	}
	defer lock.Unlock()

	// 7. SIGINT/SIGTERM stop the run at the next job boundary; the file
	// being written is allowed to finish.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Interrupt received, finishing the current file...")
		cancel()
	}()

	// 8. Discover and run.
	jobs, warnings, err := pipeline.Discover(&cfg)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	for _, w := range warnings {
		log.Warn("Skipping unreadable path %s: %v", w.Path, w.Err)
	}
	if len(jobs) == 0 {
		log.Warn("No video files found in %s", cfg.InputDir)
		return 0
	}

	pipeline.Run(ctx, &cfg, log, jobs, ffmpeg.NewRunner(&cfg))

	// Per-file failures are reported in the summary, not the exit code.
	return 0
}

// absPath returns the absolute path with symlinks resolved, so the lock file
// and job paths always refer to the real tree.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
