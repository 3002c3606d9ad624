package core

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/dodist/pkg/config"
	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/executor"
	"github.com/arthur-debert/dodist/pkg/filesystem"
	"github.com/arthur-debert/dodist/pkg/logging"
	"github.com/arthur-debert/dodist/pkg/planner"
	"github.com/arthur-debert/dodist/pkg/results"
	"github.com/arthur-debert/dodist/pkg/rules"
	"github.com/arthur-debert/dodist/pkg/transform"
	"github.com/arthur-debert/dodist/pkg/types"
)

// BuildOptions contains everything a build needs.
type BuildOptions struct {
	SourceRoot  string
	OutputRoot  string
	Ignore      []string
	Passthrough []string
	SkipHidden  bool
	Extensions  planner.Extensions
	Transform   transform.Options

	Workers  int
	FailFast bool
	Strict   bool
	NoClean  bool

	// FileSystem defaults to the OS filesystem.
	FileSystem types.FS
}

// BuildOptionsFromConfig maps a loaded configuration onto build options.
func BuildOptionsFromConfig(cfg *config.Config) BuildOptions {
	return BuildOptions{
		SourceRoot:  cfg.Build.Source,
		OutputRoot:  cfg.Build.Output,
		Ignore:      cfg.Build.Ignore,
		Passthrough: cfg.Build.Passthrough,
		SkipHidden:  cfg.Build.SkipHidden,
		Extensions:  cfg.ExtensionTable(),
		Transform:   cfg.TransformOptions(),
		Workers:     cfg.Build.Workers,
		FailFast:    cfg.Build.FailFast,
		Strict:      cfg.Build.Strict,
		NoClean:     !cfg.Build.Clean,
	}
}

// PlanBuild walks the source tree and returns the plan without executing it.
func PlanBuild(opts BuildOptions) (*types.Plan, error) {
	logger := logging.GetLogger("core.plan")
	done := logging.Track(logger, "plan")
	defer done()

	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	rs, err := rules.New(rules.Options{
		SourceRoot:  opts.SourceRoot,
		Ignore:      opts.Ignore,
		Passthrough: opts.Passthrough,
		SkipHidden:  opts.SkipHidden,
	})
	if err != nil {
		return nil, err
	}

	return planner.New(opts.FileSystem).Plan(planner.Options{
		SourceRoot: opts.SourceRoot,
		OutputRoot: opts.OutputRoot,
		Rules:      rs,
		Extensions: opts.Extensions,
		Strict:     opts.Strict,
	})
}

// Build mirrors the source tree into the output tree, transforming files on
// the way. The report is returned whenever execution started, even when the
// error is non-nil.
func Build(ctx context.Context, opts BuildOptions) (*results.Report, error) {
	logger := logging.GetLogger("core.build")
	done := logging.Track(logger, "build")
	defer done()

	opts, err := normalize(opts)
	if err != nil {
		return nil, err
	}

	// Transform options are validated before anything touches the disk.
	registry, err := transform.NewRegistry(opts.Transform)
	if err != nil {
		return nil, err
	}

	plan, err := PlanBuild(opts)
	if err != nil {
		return nil, err
	}

	agg := results.NewAggregator()
	report := agg.Start(plan)
	logger = logging.ForRun(logger, report.RunID)
	execLogger := logging.ForRun(logging.GetLogger("executor"), report.RunID)

	exec, err := executor.New(executor.Options{
		FS:         opts.FileSystem,
		Transforms: registry,
		Workers:    opts.Workers,
		FailFast:   opts.FailFast,
		Clean:      !opts.NoClean,
		Logger:     &execLogger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", plan.SourceRoot).
		Str("output", plan.OutputRoot).
		Int("tasks", len(plan.Tasks)).
		Msg("Starting build")

	taskResults, runErr := exec.Run(ctx, plan)
	agg.AddAll(report, taskResults)
	agg.Complete(report)

	logger.Info().
		Str("status", string(report.Status)).
		Int("files", report.Files).
		Int("failed", len(report.Failed)).
		Dur("duration", report.Duration()).
		Msg("Build finished")

	if runErr != nil {
		return report, runErr
	}
	return report, report.Err()
}

func normalize(opts BuildOptions) (BuildOptions, error) {
	if opts.SourceRoot == "" {
		return opts, errors.New(errors.ErrInvalidInput, "source root is required")
	}
	if opts.OutputRoot == "" {
		return opts, errors.New(errors.ErrInvalidInput, "output root is required")
	}

	var err error
	if opts.SourceRoot, err = filepath.Abs(opts.SourceRoot); err != nil {
		return opts, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", opts.SourceRoot)
	}
	if opts.OutputRoot, err = filepath.Abs(opts.OutputRoot); err != nil {
		return opts, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", opts.OutputRoot)
	}

	if opts.SourceRoot == opts.OutputRoot {
		return opts, errors.Newf(errors.ErrInvalidInput, "output root cannot be the source root %s", opts.SourceRoot).
			WithDetail("path", opts.SourceRoot)
	}

	if opts.FileSystem == nil {
		opts.FileSystem = filesystem.NewOS()
	}
	if opts.Extensions == nil {
		opts.Extensions = planner.DefaultExtensions()
	}
	return opts, nil
}
