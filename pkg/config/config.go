package config

import (
	"github.com/arthur-debert/dodist/pkg/planner"
	"github.com/arthur-debert/dodist/pkg/transform"
)

// Config is the complete dodist configuration.
type Config struct {
	Build      Build      `koanf:"build" toml:"build"`
	Extensions Extensions `koanf:"extensions" toml:"extensions"`
	JavaScript JavaScript `koanf:"javascript" toml:"javascript"`
	Stylesheet Stylesheet `koanf:"stylesheet" toml:"stylesheet"`
	HTML       HTML       `koanf:"html" toml:"html"`
}

// Build holds the [build] section.
type Build struct {
	Source      string   `koanf:"source" toml:"source"`
	Output      string   `koanf:"output" toml:"output"`
	SkipHidden  bool     `koanf:"skip_hidden" toml:"skip_hidden"`
	Ignore      []string `koanf:"ignore" toml:"ignore"`
	Passthrough []string `koanf:"passthrough" toml:"passthrough"`
	Clean       bool     `koanf:"clean" toml:"clean"`
	Strict      bool     `koanf:"strict" toml:"strict"`
	FailFast    bool     `koanf:"fail_fast" toml:"fail_fast"`
	Workers     int      `koanf:"workers" toml:"workers"`
}

// Extensions holds the [extensions] section.
type Extensions struct {
	JavaScript []string `koanf:"javascript" toml:"javascript"`
	Stylesheet []string `koanf:"stylesheet" toml:"stylesheet"`
	Markup     []string `koanf:"markup" toml:"markup"`
}

// JavaScript holds the [javascript] section.
type JavaScript struct {
	Target string `koanf:"target" toml:"target"`
}

// Stylesheet holds the [stylesheet] section.
type Stylesheet struct {
	Autoprefix bool     `koanf:"autoprefix" toml:"autoprefix"`
	Browsers   []string `koanf:"browsers" toml:"browsers"`
}

// HTML holds the [html] section.
type HTML struct {
	CollapseWhitespace    bool `koanf:"collapse_whitespace" toml:"collapse_whitespace"`
	RemoveEmptyAttributes bool `koanf:"remove_empty_attributes" toml:"remove_empty_attributes"`
	RemoveComments        bool `koanf:"remove_comments" toml:"remove_comments"`
}

// ExtensionTable returns the configured extension table.
func (c *Config) ExtensionTable() planner.Extensions {
	return planner.NewExtensions(c.Extensions.JavaScript, c.Extensions.Stylesheet, c.Extensions.Markup)
}

// TransformOptions returns the transformer options for this configuration.
func (c *Config) TransformOptions() transform.Options {
	return transform.Options{
		JavaScript: transform.JavaScriptOptions{Target: c.JavaScript.Target},
		Stylesheet: transform.StylesheetOptions{
			Autoprefix: c.Stylesheet.Autoprefix,
			Browsers:   c.Stylesheet.Browsers,
		},
		HTML: transform.HTMLOptions{
			CollapseWhitespace:    c.HTML.CollapseWhitespace,
			RemoveEmptyAttributes: c.HTML.RemoveEmptyAttributes,
			RemoveComments:        c.HTML.RemoveComments,
		},
	}
}
