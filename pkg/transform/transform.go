package transform

import (
	"context"
	"regexp"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

// Media types used to dispatch content to the minifier.
const (
	MediaTypeJavaScript = "application/javascript"
	MediaTypeStylesheet = "text/css"
	MediaTypeMarkup     = "text/html"
)

var scriptMediaType = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)

// Transformer rewrites the content of a single file.
type Transformer interface {
	Transform(ctx context.Context, src []byte) ([]byte, error)
}

// Func adapts a plain function to Transformer.
type Func func(ctx context.Context, src []byte) ([]byte, error)

// Transform calls f.
func (f Func) Transform(ctx context.Context, src []byte) ([]byte, error) {
	return f(ctx, src)
}

// Registry maps transform task kinds to their transformers.
type Registry struct {
	transformers map[types.TaskKind]Transformer
}

// NewRegistry builds the transformers described by opts.
func NewRegistry(opts Options) (*Registry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m := newMinifier(opts.HTML)

	r := &Registry{transformers: map[types.TaskKind]Transformer{}}
	r.Register(types.TaskMinifyJS, newJavaScript(m, opts.JavaScript))
	r.Register(types.TaskMinifyCSS, newStylesheet(m, opts.Stylesheet))
	r.Register(types.TaskMinifyHTML, newMarkup(m, opts.HTML))
	return r, nil
}

// Register sets the transformer for kind, replacing any previous one.
func (r *Registry) Register(kind types.TaskKind, t Transformer) {
	r.transformers[kind] = t
}

// For returns the transformer for kind.
func (r *Registry) For(kind types.TaskKind) (Transformer, error) {
	t, ok := r.transformers[kind]
	if !ok {
		return nil, errors.Newf(errors.ErrInternal, "no transformer registered for %s", kind).
			WithDetail("task", string(kind))
	}
	return t, nil
}

// newMinifier registers every media type so inline <script> and <style>
// blocks inside HTML are minified as well.
func newMinifier(html HTMLOptions) *minify.M {
	m := minify.New()
	m.AddFunc(MediaTypeStylesheet, css.Minify)
	m.AddFuncRegexp(scriptMediaType, js.Minify)
	m.Add(MediaTypeMarkup, html.minifier())
	return m
}

// minifyTransformer runs a registered media type through tdewolff/minify.
type minifyTransformer struct {
	m         *minify.M
	mediaType string
}

func (t *minifyTransformer) Transform(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCanceled, "transform canceled")
	}
	out, err := t.m.Bytes(t.mediaType, src)
	if err != nil {
		return nil, transformError(err, t.mediaType)
	}
	return out, nil
}

func transformError(err error, mediaType string) error {
	return errors.Wrapf(err, errors.ErrTransform, "%s minification failed", mediaType).
		WithDetail("media_type", mediaType)
}
