package planner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/filesystem"
	"github.com/arthur-debert/dodist/pkg/logging"
	"github.com/arthur-debert/dodist/pkg/rules"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a single planning pass.
type Options struct {
	// SourceRoot and OutputRoot must be absolute and cleaned.
	SourceRoot string
	OutputRoot string
	Rules      *rules.RuleSet
	Extensions Extensions
	// Strict turns a missing source root into a NOT_FOUND error instead of
	// a recorded skip.
	Strict bool
}

// Planner builds plans by walking the source tree.
type Planner struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a planner. A nil fs means the OS filesystem.
func New(fs types.FS) *Planner {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Planner{
		fs:     fs,
		logger: logging.GetLogger("planner"),
	}
}

// Plan walks opts.SourceRoot and returns the tasks needed to mirror it into
// opts.OutputRoot.
func (p *Planner) Plan(opts Options) (*types.Plan, error) {
	if opts.SourceRoot == "" || opts.OutputRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "source and output roots are required")
	}
	if opts.Rules == nil {
		return nil, errors.New(errors.ErrInvalidInput, "rule set is required")
	}
	if opts.Extensions == nil {
		opts.Extensions = DefaultExtensions()
	}

	w := &walk{
		fs:     p.fs,
		opts:   opts,
		logger: p.logger,
		plan: &types.Plan{
			SourceRoot: filepath.Clean(opts.SourceRoot),
			OutputRoot: filepath.Clean(opts.OutputRoot),
			Tasks:      []types.Task{},
			Skipped:    []types.Skip{},
		},
	}

	if opts.Strict {
		if _, err := p.fs.Stat(w.plan.SourceRoot); err != nil {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "source root %s not found", w.plan.SourceRoot).
				WithDetail("path", w.plan.SourceRoot)
		}
	}

	w.visit(w.plan.SourceRoot)

	p.logger.Debug().
		Str("source", w.plan.SourceRoot).
		Str("output", w.plan.OutputRoot).
		Int("tasks", len(w.plan.Tasks)).
		Int("skipped", len(w.plan.Skipped)).
		Msg("Plan built")

	return w.plan, nil
}

type walk struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
	plan   *types.Plan
	// ancestors holds the directories on the current walk path.
	ancestors []fs.FileInfo
}

func (w *walk) skip(path string, reason types.SkipReason) {
	w.logger.Trace().Str("path", path).Str("reason", string(reason)).Msg("Skipping")
	w.plan.Skipped = append(w.plan.Skipped, types.Skip{Path: path, Reason: reason})
}

func (w *walk) emit(src, dest string, kind types.TaskKind) {
	w.plan.Tasks = append(w.plan.Tasks, types.Task{Source: src, Dest: dest, Kind: kind})
}

func (w *walk) visit(path string) {
	class := w.opts.Rules.Classify(path)
	if class == rules.Ignore {
		w.skip(path, types.SkipIgnored)
		return
	}
	if path == w.plan.OutputRoot {
		w.skip(path, types.SkipOutputRoot)
		return
	}

	dest, err := w.destination(path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("Cannot map path into output tree")
		w.skip(path, types.SkipMissing)
		return
	}

	info, err := w.fs.Stat(path)
	if err != nil {
		w.logger.Debug().Err(err).Str("path", path).Msg("Source entry missing")
		w.skip(path, types.SkipMissing)
		return
	}

	if class == rules.Passthrough {
		if info.IsDir() {
			if within(path, w.plan.OutputRoot) {
				w.skip(w.plan.OutputRoot, types.SkipOutputRoot)
			}
			w.emit(path, dest, types.TaskCopyTree)
		} else {
			w.emit(path, dest, types.TaskCopy)
		}
		return
	}

	if !info.IsDir() {
		w.emit(path, dest, types.TaskKindFor(w.opts.Extensions.Kind(path)))
		return
	}

	for _, seen := range w.ancestors {
		if os.SameFile(seen, info) {
			w.skip(path, types.SkipLoop)
			return
		}
	}
	w.ancestors = append(w.ancestors, info)
	defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()

	w.emit(path, dest, types.TaskMkdir)

	entries, err := w.fs.ReadDir(path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", path).Msg("Cannot list directory")
		w.skip(path, types.SkipMissing)
		return
	}

	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if w.opts.Rules.IsHidden(entry.Name()) {
			w.skip(child, types.SkipHidden)
			continue
		}
		w.visit(child)
	}
}

func (w *walk) destination(path string) (string, error) {
	rel, err := filepath.Rel(w.plan.SourceRoot, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.plan.OutputRoot, rel), nil
}

// within reports whether child is strictly below dir.
func within(dir, child string) bool {
	rel, err := filepath.Rel(dir, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
