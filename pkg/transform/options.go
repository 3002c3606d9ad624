package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2/html"
)

// Options configures every transformer in a Registry.
type Options struct {
	JavaScript JavaScriptOptions
	Stylesheet StylesheetOptions
	HTML       HTMLOptions
}

// JavaScriptOptions configures script minification.
type JavaScriptOptions struct {
	// Target is an ECMAScript version such as "es5" or "es2015". When set,
	// scripts are lowered to that version by esbuild while being minified.
	Target string
}

// StylesheetOptions configures stylesheet processing.
type StylesheetOptions struct {
	// Autoprefix adds vendor-prefixed declarations for Browsers.
	Autoprefix bool
	// Browsers lists engines and versions such as "chrome58" or "safari11".
	Browsers []string
}

// HTMLOptions configures markup minification.
type HTMLOptions struct {
	CollapseWhitespace    bool
	RemoveEmptyAttributes bool
	RemoveComments        bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Stylesheet: StylesheetOptions{
			Autoprefix: true,
			Browsers:   []string{"chrome58", "edge16", "firefox57", "safari11", "ios11"},
		},
		HTML: HTMLOptions{
			CollapseWhitespace:    true,
			RemoveEmptyAttributes: true,
			RemoveComments:        true,
		},
	}
}

// Validate checks that the target and browser list can be understood.
func (o Options) Validate() error {
	if _, err := ParseTarget(o.JavaScript.Target); err != nil {
		return err
	}
	if o.Stylesheet.Autoprefix {
		if _, err := ParseEngines(o.Stylesheet.Browsers); err != nil {
			return err
		}
	}
	return nil
}

func (o HTMLOptions) minifier() *html.Minifier {
	return &html.Minifier{
		KeepWhitespace:      !o.CollapseWhitespace,
		KeepComments:        !o.RemoveComments,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepDefaultAttrVals: true,
	}
}

var targets = map[string]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es6":    api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"esnext": api.ESNext,
}

// ParseTarget converts an ECMAScript version name into an esbuild target.
// An empty name yields api.DefaultTarget.
func ParseTarget(name string) (api.Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return api.DefaultTarget, nil
	}
	target, ok := targets[name]
	if !ok {
		return api.DefaultTarget, errors.Newf(errors.ErrConfigValid, "unknown javascript target %q", name).
			WithDetail("target", name)
	}
	return target, nil
}

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"deno":    api.EngineDeno,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"hermes":  api.EngineHermes,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"node":    api.EngineNode,
	"opera":   api.EngineOpera,
	"rhino":   api.EngineRhino,
	"safari":  api.EngineSafari,
}

var browserPattern = regexp.MustCompile(`^([a-z]+)(\d[\d.]*)$`)

// ParseEngines converts browser strings such as "safari11" into esbuild
// engine constraints.
func ParseEngines(browsers []string) ([]api.Engine, error) {
	engines := make([]api.Engine, 0, len(browsers))
	for _, b := range browsers {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		match := browserPattern.FindStringSubmatch(b)
		if match == nil {
			return nil, invalidBrowser(b, "expected a name followed by a version, e.g. chrome58")
		}
		name, ok := engineNames[match[1]]
		if !ok {
			return nil, invalidBrowser(b, fmt.Sprintf("unknown engine %q", match[1]))
		}
		engines = append(engines, api.Engine{Name: name, Version: match[2]})
	}
	return engines, nil
}

func invalidBrowser(b, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "invalid browser %q: %s", b, reason).
		WithDetail("browser", b)
}
