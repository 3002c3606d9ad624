package planner

import (
	"path/filepath"

	"github.com/arthur-debert/dodist/pkg/types"
)

// Extensions maps a file extension, including the leading dot, to its kind.
// Lookups are exact and case-sensitive.
type Extensions map[string]types.FileKind

// DefaultExtensions returns the built-in extension table.
func DefaultExtensions() Extensions {
	return Extensions{
		".js":   types.FileKindJavaScript,
		".css":  types.FileKindStylesheet,
		".html": types.FileKindMarkup,
	}
}

// NewExtensions builds a table from per-kind extension lists. Empty lists
// leave that kind without any extension.
func NewExtensions(javascript, stylesheet, markup []string) Extensions {
	ext := Extensions{}
	for kind, list := range map[types.FileKind][]string{
		types.FileKindJavaScript: javascript,
		types.FileKindStylesheet: stylesheet,
		types.FileKindMarkup:     markup,
	} {
		for _, e := range list {
			if e == "" {
				continue
			}
			if e[0] != '.' {
				e = "." + e
			}
			ext[e] = kind
		}
	}
	return ext
}

// Kind classifies path by its final extension.
func (e Extensions) Kind(path string) types.FileKind {
	if kind, ok := e[filepath.Ext(path)]; ok {
		return kind
	}
	return types.FileKindOther
}
