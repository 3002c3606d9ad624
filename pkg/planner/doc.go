// Package planner walks a source tree and turns it into a types.Plan.
//
// The walk is depth-first and strictly read-only: it stats and lists entries
// through types.FS and never writes. Each visited entry resolves to exactly
// one of three outcomes:
//
//   - a Skip (ignored, hidden, missing, or the output root itself)
//   - a single task (mkdir for directories, copy or minify-* for files)
//   - a copy-tree or copy task for passthrough entries, with no descent
//
// Destinations are computed by substituting the output root for the source
// root in the entry's path.
package planner
