package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// MarkupParser renders "[tag]text[/tag]" markup. Unknown tags are left as
// they are.
type MarkupParser struct {
	tags []markupTag
}

type markupTag struct {
	name    string
	style   lipgloss.Style
	pattern *regexp.Regexp
}

// NewMarkupParser creates a parser knowing the theme styles and one tag per
// task kind.
func NewMarkupParser() *MarkupParser {
	styles := map[string]lipgloss.Style{
		"title":   TitleStyle,
		"path":    PathStyle,
		"muted":   MutedStyle,
		"code":    CodeStyle,
		"success": SuccessStyle,
		"error":   ErrorStyle,
		"warning": WarningStyle,
		"info":    InfoStyle,
		"bold":    lipgloss.NewStyle().Bold(true),
	}
	for tag, style := range kindStyles {
		styles[tag] = style
	}

	names := lo.Keys(styles)
	sort.Strings(names)
	return &MarkupParser{
		tags: lo.Map(names, func(name string, _ int) markupTag {
			return markupTag{
				name:    name,
				style:   styles[name],
				pattern: regexp.MustCompile(`\[` + name + `\](.*?)\[/` + name + `\]`),
			}
		}),
	}
}

// Render replaces every known tag pair with its styled content. Nested tags
// are resolved by repeating until nothing changes.
func (p *MarkupParser) Render(text string) string {
	for {
		before := text
		for _, tag := range p.tags {
			text = tag.pattern.ReplaceAllStringFunc(text, func(match string) string {
				return tag.style.Render(tag.pattern.FindStringSubmatch(match)[1])
			})
		}
		if text == before {
			return text
		}
	}
}

// Strip removes known tag pairs and keeps their content.
func (p *MarkupParser) Strip(text string) string {
	for _, tag := range p.tags {
		text = tag.pattern.ReplaceAllString(text, "$1")
	}
	return text
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
