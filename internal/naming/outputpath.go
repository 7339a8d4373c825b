// Package naming derives output file paths from source paths. The fixed
// prefix scheme guarantees that an output path is always distinct from its
// source and from every other source file's output within a directory,
// because the filesystem already guarantees unique names per directory.
package naming

import (
	"path/filepath"
	"strings"
)

// OutputPath returns the sibling output path for source: the source's
// directory joined with prefix + original filename (extension preserved).
//
//	/media/a.mp4 + "normalized_" → /media/normalized_a.mp4
func OutputPath(source, prefix string) string {
	dir := filepath.Dir(source)
	return filepath.Join(dir, prefix+filepath.Base(source))
}

// IsPrefixed reports whether the file's basename already carries the output
// prefix. A name that is nothing but the prefix does not count. Used by
// progress reporting to flag likely prior outputs rediscovered in a later
// run; discovery itself never filters on it.
func IsPrefixed(path, prefix string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, prefix) && len(base) > len(prefix)
}
