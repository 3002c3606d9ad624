package types

import (
	"fmt"
	"time"
)

// FileKind is the classification of a source file derived from its extension.
type FileKind string

const (
	FileKindJavaScript FileKind = "javascript"
	FileKindStylesheet FileKind = "stylesheet"
	FileKindMarkup     FileKind = "markup"
	FileKindOther      FileKind = "other"
)

// TaskKind names the operation a task performs.
type TaskKind string

const (
	TaskMkdir      TaskKind = "mkdir"
	TaskCopy       TaskKind = "copy"
	TaskCopyTree   TaskKind = "copy-tree"
	TaskMinifyJS   TaskKind = "minify-js"
	TaskMinifyCSS  TaskKind = "minify-css"
	TaskMinifyHTML TaskKind = "minify-html"
)

// TaskKindFor returns the task that processes a file of the given kind.
func TaskKindFor(kind FileKind) TaskKind {
	switch kind {
	case FileKindJavaScript:
		return TaskMinifyJS
	case FileKindStylesheet:
		return TaskMinifyCSS
	case FileKindMarkup:
		return TaskMinifyHTML
	default:
		return TaskCopy
	}
}

// IsTransform reports whether the task rewrites file content.
func (k TaskKind) IsTransform() bool {
	return k == TaskMinifyJS || k == TaskMinifyCSS || k == TaskMinifyHTML
}

// Task is a unit of work bound to one source path and one destination path.
// Tasks carry all their inputs and never depend on one another.
type Task struct {
	Source string   `json:"source" yaml:"source"`
	Dest   string   `json:"dest" yaml:"dest"`
	Kind   TaskKind `json:"kind" yaml:"kind"`
}

func (t Task) String() string {
	return fmt.Sprintf("%s %s -> %s", t.Kind, t.Source, t.Dest)
}

// SkipReason explains why a source entry produced no task.
type SkipReason string

const (
	SkipIgnored    SkipReason = "ignored"
	SkipHidden     SkipReason = "hidden"
	SkipMissing    SkipReason = "missing"
	SkipOutputRoot SkipReason = "output-root"
	SkipLoop       SkipReason = "symlink-loop"
)

// Skip records a source entry that was left out of the output.
type Skip struct {
	Path   string     `json:"path" yaml:"path"`
	Reason SkipReason `json:"reason" yaml:"reason"`
}

// Plan is the complete, ordered list of tasks for one build. It is built
// once, before anything executes, and is never mutated by the executor.
type Plan struct {
	SourceRoot string `json:"source_root" yaml:"source_root"`
	OutputRoot string `json:"output_root" yaml:"output_root"`
	Tasks      []Task `json:"tasks" yaml:"tasks"`
	Skipped    []Skip `json:"skipped" yaml:"skipped"`
}

// TaskStatus is the lifecycle state of a task: Pending -> Running -> terminal.
type TaskStatus string

const (
	TaskPending  TaskStatus = "pending"
	TaskRunning  TaskStatus = "running"
	TaskDone     TaskStatus = "done"
	TaskFailed   TaskStatus = "failed"
	TaskSkipped  TaskStatus = "skipped"
	TaskCanceled TaskStatus = "canceled"
)

// TaskResult is the outcome of executing one task.
type TaskResult struct {
	Task     Task
	Status   TaskStatus
	Err      error
	Files    int
	BytesIn  int64
	BytesOut int64
	Duration time.Duration
}
