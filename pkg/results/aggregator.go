package results

import (
	"time"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Aggregator builds reports from plans and task results without embedding
// that logic in the Report itself.
type Aggregator struct {
	now func() time.Time
}

// NewAggregator creates a new results aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{now: time.Now}
}

// Start creates the report for a plan about to run. Entries the planner
// skipped are recorded immediately.
func (a *Aggregator) Start(plan *types.Plan) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		SourceRoot: plan.SourceRoot,
		OutputRoot: plan.OutputRoot,
		StartedAt:  a.now(),
		Status:     StatusPending,
		Processed:  []Entry{},
		Skipped:    append([]types.Skip{}, plan.Skipped...),
		Failed:     []Failure{},
		Canceled:   []string{},
	}
}

// Add records the outcome of one task.
func (a *Aggregator) Add(report *Report, result types.TaskResult) {
	task := result.Task
	switch result.Status {
	case types.TaskDone:
		if task.Kind == types.TaskMkdir {
			report.Directories++
			return
		}
		report.Processed = append(report.Processed, Entry{
			Source:   task.Source,
			Dest:     task.Dest,
			Kind:     task.Kind,
			Files:    result.Files,
			BytesIn:  result.BytesIn,
			BytesOut: result.BytesOut,
			Duration: result.Duration,
		})
	case types.TaskSkipped:
		report.Skipped = append(report.Skipped, types.Skip{Path: task.Source, Reason: types.SkipMissing})
	case types.TaskFailed:
		failure := Failure{Path: task.Source, Kind: task.Kind, Code: errors.ErrUnknown}
		if result.Err != nil {
			failure.Code = errors.GetErrorCode(result.Err)
			failure.Reason = result.Err.Error()
		}
		report.Failed = append(report.Failed, failure)
	default:
		report.Canceled = append(report.Canceled, task.Source)
	}
}

// AddAll records every result in order.
func (a *Aggregator) AddAll(report *Report, results []types.TaskResult) {
	for _, r := range results {
		a.Add(report, r)
	}
}

// Complete stamps the end time, totals, and overall status.
func (a *Aggregator) Complete(report *Report) {
	report.EndedAt = a.now()
	report.Files = lo.SumBy(report.Processed, func(e Entry) int { return e.Files })
	report.BytesIn = lo.SumBy(report.Processed, func(e Entry) int64 { return e.BytesIn })
	report.BytesOut = lo.SumBy(report.Processed, func(e Entry) int64 { return e.BytesOut })
	a.updateStatus(report)
}

func (a *Aggregator) updateStatus(report *Report) {
	done := len(report.Processed) + report.Directories
	switch {
	case len(report.Failed) > 0 && done == 0:
		report.Status = StatusFailed
	case len(report.Failed) > 0:
		report.Status = StatusPartial
	case len(report.Canceled) > 0:
		report.Status = StatusCanceled
	case done == 0:
		report.Status = StatusEmpty
	default:
		report.Status = StatusSuccess
	}
}

// CountByKind tallies processed entries per task kind.
func CountByKind(report *Report) map[types.TaskKind]int {
	return lo.CountValuesBy(report.Processed, func(e Entry) types.TaskKind { return e.Kind })
}

// SkippedByReason groups skipped paths per reason.
func SkippedByReason(report *Report) map[types.SkipReason][]string {
	grouped := lo.GroupBy(report.Skipped, func(s types.Skip) types.SkipReason { return s.Reason })
	return lo.MapValues(grouped, func(skips []types.Skip, _ types.SkipReason) []string {
		return lo.Map(skips, func(s types.Skip, _ int) string { return s.Path })
	})
}
