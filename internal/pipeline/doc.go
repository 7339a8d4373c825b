// Package pipeline orchestrates file discovery, sequential per-file
// normalization with isolated failures, and batch summary reporting.
//
// Discover walks the input directory and yields one Job per matching video
// file. Run drives the jobs one at a time through a MediaTool, records each
// outcome exactly once, cleans up partial outputs on failure, and returns a
// RunSummary. A failed job never aborts the run; only discovery-time
// environment errors do.
package pipeline
