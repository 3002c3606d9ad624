package style

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dodist/pkg/results"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Printer writes reports and plans in a fixed format.
type Printer struct {
	out      io.Writer
	format   Format
	detailed bool
	markup   *MarkupParser
}

// NewPrinter creates a printer. FormatAuto must be resolved by the caller;
// it is treated as FormatText here.
func NewPrinter(out io.Writer, format Format, detailed bool) *Printer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Printer{out: out, format: format, detailed: detailed, markup: NewMarkupParser()}
}

func (p *Printer) styled() bool {
	return p.format == FormatTerminal
}

// line styles the markup in format, then fills in args. Values are never read
// as markup.
func (p *Printer) line(format string, args ...interface{}) {
	if p.styled() {
		format = p.markup.Render(format)
	} else {
		format = p.markup.Strip(format)
	}
	_, _ = fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// kindCell is the template fragment for a padded, styled task kind label.
func kindCell(kind types.TaskKind) string {
	tag := KindTag(kind)
	return "[" + tag + "]%-5s[/" + tag + "]"
}

// Report writes a build report.
func (p *Printer) Report(report *results.Report) error {
	switch p.format {
	case FormatJSON:
		return p.json(report)
	case FormatYAML:
		return p.yaml(report)
	}

	p.line("[title]dodist build[/title] %s  [muted]run %s[/muted]",
		StatusBadge(report.Status, p.styled()), shortID(report.RunID))
	p.line("  source  [path]%s[/path]", report.SourceRoot)
	p.line("  output  [path]%s[/path]", report.OutputRoot)
	p.line("")

	p.line("[success]Processed[/success] %d file(s), %d director(ies) in %s",
		report.Files, report.Directories, report.Duration().Round(1e6))
	if report.BytesIn > 0 {
		p.line("  %s -> %s, saved %s",
			humanize.Bytes(uint64(report.BytesIn)),
			humanize.Bytes(uint64(report.BytesOut)),
			humanize.Bytes(uint64(max(report.Saved(), 0))))
	}

	if p.detailed {
		for _, e := range report.Processed {
			p.line("  "+kindCell(e.Kind)+" %s  [muted]%s -> %s[/muted]",
				KindLabel(e.Kind),
				rel(report.SourceRoot, e.Source),
				humanize.Bytes(uint64(e.BytesIn)), humanize.Bytes(uint64(e.BytesOut)))
		}
	} else {
		counts := results.CountByKind(report)
		kinds := make([]string, 0, len(counts))
		for kind := range counts {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			kind := types.TaskKind(k)
			p.line("  "+kindCell(kind)+" %d", KindLabel(kind), counts[kind])
		}
	}

	if len(report.Skipped) > 0 {
		p.line("")
		p.line("[warning]Skipped[/warning] %d", len(report.Skipped))
		grouped := results.SkippedByReason(report)
		reasons := make([]string, 0, len(grouped))
		for reason := range grouped {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			paths := grouped[types.SkipReason(reason)]
			if !p.detailed {
				p.line("  %-11s %d", reason, len(paths))
				continue
			}
			for _, path := range paths {
				p.line("  %-11s [muted]%s[/muted]", reason, rel(report.SourceRoot, path))
			}
		}
	}

	if len(report.Failed) > 0 {
		p.line("")
		p.line("[error]Failed[/error] %d", len(report.Failed))
		for _, f := range report.Failed {
			p.line("  %s %s  [muted]%s[/muted]", indicator(p.styled()), rel(report.SourceRoot, f.Path), f.Code)
			if f.Reason != "" {
				p.line("      %s", f.Reason)
			}
		}
	}

	if len(report.Canceled) > 0 {
		p.line("")
		p.line("[warning]Canceled[/warning] %d task(s) never ran", len(report.Canceled))
	}
	return nil
}

// Plan writes the tasks of a plan without running them.
func (p *Printer) Plan(plan *types.Plan) error {
	switch p.format {
	case FormatJSON:
		return p.json(plan)
	case FormatYAML:
		return p.yaml(plan)
	}

	p.line("[title]dodist plan[/title]  [path]%s[/path] -> [path]%s[/path]", plan.SourceRoot, plan.OutputRoot)
	for _, task := range plan.Tasks {
		if task.Kind == types.TaskMkdir && !p.detailed {
			continue
		}
		p.line("  "+kindCell(task.Kind)+" %s", KindLabel(task.Kind), rel(plan.SourceRoot, task.Source))
	}
	for _, s := range plan.Skipped {
		p.line("  [muted]skip  %s (%s)[/muted]", rel(plan.SourceRoot, s.Path), s.Reason)
	}
	p.line("%d task(s), %d skipped", len(plan.Tasks), len(plan.Skipped))
	return nil
}

func (p *Printer) json(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) yaml(v interface{}) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func indicator(styled bool) string {
	if styled {
		return ErrorIndicator
	}
	return "x"
}

func rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(r, "..") {
		return path
	}
	if r == "." {
		return "./"
	}
	return r
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
