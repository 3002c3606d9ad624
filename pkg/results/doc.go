// Package results turns the per-task outcomes of a run into a Report: what
// was processed, what was skipped and why, and what failed.
package results
