// Package executor runs the tasks of a types.Plan against the filesystem.
//
// A run has two phases. Cleanup removes the output root and completes before
// anything else starts. Tasks then run on a bounded worker pool; they share
// nothing except the results slice, where each task owns its own index.
//
// A failing task is recorded and the remaining tasks continue, unless
// FailFast is set, in which case no further tasks are scheduled. Canceling
// the context also stops scheduling; tasks already running are allowed to
// finish so no output file is left half-written.
package executor
