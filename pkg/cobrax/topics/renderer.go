package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns raw topic content into what is printed. format is the
// topic file extension, e.g. ".md".
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics as written, for pipes and files.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown topics for the terminal with glamour.
// Topics in any other format are returned unchanged.
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a path to
	// a style file. Empty picks one from the terminal background.
	Style string
	// Width wraps rendered text; 0 leaves glamour's default.
	Width int
}

// NewGlamourRenderer creates a markdown renderer with automatic style detection.
func NewGlamourRenderer(width int) *GlamourRenderer {
	return &GlamourRenderer{Width: width}
}

// Render converts markdown to styled terminal output, falling back to the
// raw content when glamour fails.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Style != "" {
		options = []glamour.TermRendererOption{glamour.WithStylePath(r.Style)}
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
