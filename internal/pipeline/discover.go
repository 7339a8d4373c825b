package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/loudmaster/internal/config"
)

// ErrNotDirectory is returned when the input path does not exist or is not a
// directory. It is fatal to the run; no job is attempted.
var ErrNotDirectory = errors.New("input path does not exist or is not a directory")

// Warning records a subtree that could not be read during discovery.
// Warnings never fail the run; they only shrink the discovered set.
type Warning struct {
	Path string
	Err  error
}

// Discover enumerates candidate video files under cfg.InputDir and returns
// one pending Job per regular file whose extension (case-insensitive) is in
// the configured set. With Recurse set, the walk descends into every
// subdirectory; unreadable subtrees are skipped and reported as Warnings.
// Results are sorted lexicographically by path for deterministic processing
// order.
func Discover(cfg *config.Config) ([]*Job, []Warning, error) {
	info, err := os.Stat(cfg.InputDir)
	if err != nil || !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotDirectory, cfg.InputDir)
	}

	exts := cfg.ExtensionSet()

	var files []string
	var warnings []Warning

	if cfg.Recurse {
		files, warnings = walkTree(cfg.InputDir, exts)
	} else {
		files, warnings = listTopLevel(cfg.InputDir, exts)
	}

	sort.Strings(files)

	jobs := make([]*Job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, NewJob(f, cfg.OutputPrefix))
	}
	return jobs, warnings, nil
}

// walkTree collects matching files from root and every descendant directory.
// A directory that cannot be read becomes a Warning and is pruned; the walk
// continues elsewhere.
func walkTree(root string, exts map[string]bool) ([]string, []Warning) {
	var files []string
	var warnings []Warning

	// WalkDir only returns the callback's error, and the callback never
	// returns one: read failures are downgraded to warnings.
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if exts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})

	return files, warnings
}

// listTopLevel collects matching files directly under root, never descending
// into subdirectories.
func listTopLevel(root string, exts map[string]bool) ([]string, []Warning) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, []Warning{{Path: root, Err: err}}
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	return files, nil
}
