package results

import (
	"time"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/types"
)

// Status summarizes a whole run.
type Status string

const (
	StatusPending  Status = "pending"
	StatusSuccess  Status = "success"
	StatusPartial  Status = "partial"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
	StatusEmpty    Status = "empty"
)

// Entry is a task that completed.
type Entry struct {
	Source   string         `json:"source" yaml:"source"`
	Dest     string         `json:"dest" yaml:"dest"`
	Kind     types.TaskKind `json:"kind" yaml:"kind"`
	Files    int            `json:"files" yaml:"files"`
	BytesIn  int64          `json:"bytes_in" yaml:"bytes_in"`
	BytesOut int64          `json:"bytes_out" yaml:"bytes_out"`
	Duration time.Duration  `json:"-" yaml:"-"`
}

// Failure is a task that did not complete, with the reason it gave.
type Failure struct {
	Path   string           `json:"path" yaml:"path"`
	Kind   types.TaskKind   `json:"kind" yaml:"kind"`
	Code   errors.ErrorCode `json:"code" yaml:"code"`
	Reason string           `json:"reason" yaml:"reason"`
}

// Report is the outcome of one build.
type Report struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	SourceRoot string    `json:"source_root" yaml:"source_root"`
	OutputRoot string    `json:"output_root" yaml:"output_root"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	EndedAt    time.Time `json:"ended_at" yaml:"ended_at"`
	Status     Status    `json:"status" yaml:"status"`

	Processed   []Entry      `json:"processed" yaml:"processed"`
	Directories int          `json:"directories" yaml:"directories"`
	Skipped     []types.Skip `json:"skipped" yaml:"skipped"`
	Failed      []Failure    `json:"failed" yaml:"failed"`
	Canceled    []string     `json:"canceled" yaml:"canceled"`

	Files    int   `json:"files" yaml:"files"`
	BytesIn  int64 `json:"bytes_in" yaml:"bytes_in"`
	BytesOut int64 `json:"bytes_out" yaml:"bytes_out"`
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Saved returns how many bytes the transforms removed.
func (r *Report) Saved() int64 {
	return r.BytesIn - r.BytesOut
}

// Err returns a BUILD_FAILED error when any task failed, nil otherwise.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	paths := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		paths[i] = f.Path
	}
	return errors.Newf(errors.ErrBuildFailed, "%d file(s) failed to build", len(r.Failed)).
		WithDetail("failed", len(r.Failed)).
		WithDetail("paths", paths)
}
