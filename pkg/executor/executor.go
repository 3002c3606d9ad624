package executor

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/filesystem"
	"github.com/arthur-debert/dodist/pkg/logging"
	"github.com/arthur-debert/dodist/pkg/transform"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options contains configuration for the executor
type Options struct {
	// Filesystem operations interface for testing
	FS types.FS
	// Transforms supplies the transformer for every minify-* task.
	Transforms *transform.Registry
	// Workers bounds the number of tasks running at once; 0 means CPU count.
	Workers int
	// FailFast stops scheduling new tasks after the first failure.
	FailFast bool
	// Clean removes the output root before any task runs.
	Clean bool
	// Logger defaults to the "executor" component logger.
	Logger *zerolog.Logger
}

// Executor runs plans.
type Executor struct {
	fs         types.FS
	transforms *transform.Registry
	workers    int
	failFast   bool
	clean      bool
	logger     zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) (*Executor, error) {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	transforms := opts.Transforms
	if transforms == nil {
		reg, err := transform.NewRegistry(transform.DefaultOptions())
		if err != nil {
			return nil, err
		}
		transforms = reg
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Executor{
		fs:         fs,
		transforms: transforms,
		workers:    workers,
		failFast:   opts.FailFast,
		clean:      opts.Clean,
		logger:     logger,
	}, nil
}

// Run executes every task in plan and returns one result per task, in plan
// order. Task failures are reported through the results; the returned error
// is reserved for failures that prevent the run itself (cleanup, output root
// creation, cancellation).
func (e *Executor) Run(ctx context.Context, plan *types.Plan) ([]types.TaskResult, error) {
	if plan == nil {
		return nil, errors.New(errors.ErrInvalidInput, "plan is required")
	}

	results := make([]types.TaskResult, len(plan.Tasks))
	for i, task := range plan.Tasks {
		results[i] = types.TaskResult{Task: task, Status: types.TaskPending}
	}

	if err := ctx.Err(); err != nil {
		markCanceled(results)
		return results, errors.Wrap(err, errors.ErrCanceled, "build canceled")
	}

	if e.clean {
		if err := e.Clean(plan); err != nil {
			return results, err
		}
	}
	if outputRootIsDir(plan) {
		if err := e.fs.MkdirAll(plan.OutputRoot, filesystem.DirPerm); err != nil {
			return results, errors.Wrapf(err, errors.ErrDirCreate, "failed to create output root %s", plan.OutputRoot).
				WithDetail("path", plan.OutputRoot)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	e.logger.Debug().
		Int("tasks", len(plan.Tasks)).
		Int("workers", e.workers).
		Bool("fail_fast", e.failFast).
		Msg("Running plan")

	for i := range plan.Tasks {
		i := i
		if runCtx.Err() != nil {
			results[i].Status = types.TaskCanceled
			continue
		}
		g.Go(func() error {
			if runCtx.Err() != nil {
				results[i].Status = types.TaskCanceled
				return nil
			}
			results[i].Status = types.TaskRunning
			// In-flight tasks finish even if the run is canceled meanwhile.
			results[i] = e.runTask(context.WithoutCancel(runCtx), results[i].Task, plan.OutputRoot)
			if results[i].Status == types.TaskFailed {
				failed.Add(1)
				if e.failFast {
					cancel()
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Debug().Int64("failed", failed.Load()).Msg("Plan finished")

	if err := ctx.Err(); err != nil {
		return results, errors.Wrap(err, errors.ErrCanceled, "build canceled")
	}
	return results, nil
}

// Clean removes the output root. A missing output root is not an error. It
// refuses to remove a directory that is, or contains, the source root.
func (e *Executor) Clean(plan *types.Plan) error {
	source := filepath.Clean(plan.SourceRoot)
	output := filepath.Clean(plan.OutputRoot)

	if output == source || contains(output, source) {
		return errors.Newf(errors.ErrInvalidInput,
			"refusing to clean output %s: it contains the source %s", output, source).
			WithDetail("path", output)
	}

	e.logger.Debug().Str("path", output).Msg("Removing output root")
	if err := e.fs.RemoveAll(output); err != nil {
		return errors.Wrapf(err, errors.ErrFileDelete, "failed to remove %s", output).
			WithDetail("path", output)
	}
	return nil
}

func (e *Executor) runTask(ctx context.Context, task types.Task, outputRoot string) types.TaskResult {
	start := time.Now()
	result := types.TaskResult{Task: task}

	var err error
	switch {
	case task.Kind == types.TaskMkdir:
		if err = e.fs.MkdirAll(task.Dest, filesystem.DirPerm); err != nil {
			err = errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", task.Dest).
				WithDetail("path", task.Dest)
		}
	case task.Kind == types.TaskCopy:
		var n int64
		n, err = filesystem.CopyFile(e.fs, task.Source, task.Dest)
		result.Files, result.BytesIn, result.BytesOut = 1, n, n
	case task.Kind == types.TaskCopyTree:
		var files int
		var n int64
		files, n, err = filesystem.CopyTree(e.fs, task.Source, task.Dest, outputRoot)
		result.Files, result.BytesIn, result.BytesOut = files, n, n
	case task.Kind.IsTransform():
		err = e.transformFile(ctx, task, &result)
	default:
		err = errors.Newf(errors.ErrInternal, "unknown task kind %q", task.Kind)
	}
	result.Duration = time.Since(start)

	switch {
	case err == nil:
		result.Status = types.TaskDone
		e.logger.Trace().
			Str("task", string(task.Kind)).
			Str("source", task.Source).
			Dur("duration", result.Duration).
			Msg("Task done")
	case errors.IsErrorCode(err, errors.ErrNotFound):
		// The source vanished between planning and execution.
		result.Status = types.TaskSkipped
		result.Err = err
		e.logger.Debug().Err(err).Str("source", task.Source).Msg("Source disappeared, skipping")
	default:
		result.Status = types.TaskFailed
		result.Err = err
		e.logger.Error().
			Err(err).
			Str("task", string(task.Kind)).
			Str("source", task.Source).
			Msg("Task failed")
	}
	return result
}

func (e *Executor) transformFile(ctx context.Context, task types.Task, result *types.TaskResult) error {
	t, err := e.transforms.For(task.Kind)
	if err != nil {
		return err
	}

	src, perm, err := filesystem.ReadSource(e.fs, task.Source)
	if err != nil {
		return err
	}
	result.BytesIn = int64(len(src))

	out, err := t.Transform(ctx, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTransform, "failed to process %s", task.Source).
			WithDetail("path", task.Source).
			WithDetail("task", string(task.Kind))
	}

	if err := filesystem.WriteFileAtomic(e.fs, task.Dest, out, perm); err != nil {
		return err
	}
	result.Files = 1
	result.BytesOut = int64(len(out))
	return nil
}

// outputRootIsDir reports whether the output root is a directory. It is not
// when the source root is a single file whose task writes the root itself.
func outputRootIsDir(plan *types.Plan) bool {
	for _, task := range plan.Tasks {
		if task.Dest == plan.OutputRoot {
			return task.Kind == types.TaskMkdir
		}
	}
	return true
}

func markCanceled(results []types.TaskResult) {
	for i := range results {
		results[i].Status = types.TaskCanceled
	}
}

// contains reports whether child is strictly below parent.
func contains(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
