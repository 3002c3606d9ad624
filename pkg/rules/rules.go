package rules

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/samber/lo"
)

// HiddenPrefix marks a file or directory as hidden.
const HiddenPrefix = "."

// Class is the routing decision for a single path.
type Class int

const (
	// Default paths go through type dispatch.
	Default Class = iota
	// Ignore paths produce no output at all.
	Ignore
	// Passthrough paths are copied byte for byte, recursively for directories.
	Passthrough
)

func (c Class) String() string {
	switch c {
	case Ignore:
		return "ignore"
	case Passthrough:
		return "passthrough"
	default:
		return "default"
	}
}

// Options configures a RuleSet.
type Options struct {
	// SourceRoot is the absolute root relative entries are resolved against.
	SourceRoot string
	// Ignore lists paths excluded entirely from the output.
	Ignore []string
	// Passthrough lists paths copied verbatim.
	Passthrough []string
	// SkipHidden drops entries whose name starts with HiddenPrefix.
	SkipHidden bool
}

// RuleSet classifies paths by exact match against the configured lists.
type RuleSet struct {
	ignore      map[string]struct{}
	passthrough map[string]struct{}
	skipHidden  bool
}

// New builds a RuleSet. A path listed as both ignore and passthrough is a
// configuration error.
func New(opts Options) (*RuleSet, error) {
	resolve := func(p string, _ int) string {
		return Resolve(opts.SourceRoot, p)
	}
	ignore := lo.Uniq(lo.Map(lo.Compact(opts.Ignore), resolve))
	passthrough := lo.Uniq(lo.Map(lo.Compact(opts.Passthrough), resolve))

	if both := lo.Intersect(ignore, passthrough); len(both) > 0 {
		sort.Strings(both)
		return nil, errors.Newf(errors.ErrConfigValid,
			"paths cannot be both ignored and passed through: %s", strings.Join(both, ", ")).
			WithDetail("paths", both)
	}

	toSet := func(p string) (string, struct{}) { return p, struct{}{} }
	return &RuleSet{
		ignore:      lo.SliceToMap(ignore, toSet),
		passthrough: lo.SliceToMap(passthrough, toSet),
		skipHidden:  opts.SkipHidden,
	}, nil
}

// Resolve turns a configured entry into the absolute, cleaned form it is
// matched in. Relative entries are taken relative to root.
func Resolve(root, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// Classify returns the routing decision for an absolute path.
func (r *RuleSet) Classify(path string) Class {
	path = filepath.Clean(path)
	if _, ok := r.ignore[path]; ok {
		return Ignore
	}
	if _, ok := r.passthrough[path]; ok {
		return Passthrough
	}
	return Default
}

// IsHidden reports whether an entry name should be skipped as hidden.
func (r *RuleSet) IsHidden(name string) bool {
	return r.skipHidden && strings.HasPrefix(name, HiddenPrefix)
}

// SkipHidden reports whether hidden entries are skipped.
func (r *RuleSet) SkipHidden() bool {
	return r.skipHidden
}

// Ignored returns the resolved ignore list, sorted.
func (r *RuleSet) Ignored() []string {
	return sortedKeys(r.ignore)
}

// PassedThrough returns the resolved passthrough list, sorted.
func (r *RuleSet) PassedThrough() []string {
	return sortedKeys(r.passthrough)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := lo.Keys(set)
	sort.Strings(keys)
	return keys
}
