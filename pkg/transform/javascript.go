package transform

import (
	"context"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2"
)

func newJavaScript(m *minify.M, opts JavaScriptOptions) Transformer {
	if opts.Target == "" {
		return &minifyTransformer{m: m, mediaType: MediaTypeJavaScript}
	}
	// Validate has already accepted the target.
	target, _ := ParseTarget(opts.Target)
	return &esbuildTransformer{
		mediaType: MediaTypeJavaScript,
		options: api.TransformOptions{
			Loader:            api.LoaderJS,
			Target:            target,
			MinifyWhitespace:  true,
			MinifyIdentifiers: true,
			MinifySyntax:      true,
			LogLevel:          api.LogLevelSilent,
		},
	}
}

// esbuildTransformer runs content through esbuild's transform API.
type esbuildTransformer struct {
	mediaType string
	options   api.TransformOptions
}

func (t *esbuildTransformer) Transform(ctx context.Context, src []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCanceled, "transform canceled")
	}
	result := api.Transform(string(src), t.options)
	if len(result.Errors) > 0 {
		return nil, esbuildError(result.Errors, t.mediaType)
	}
	return result.Code, nil
}

func esbuildError(msgs []api.Message, mediaType string) error {
	first := msgs[0]
	err := errors.Newf(errors.ErrTransform, "%s transform failed: %s", mediaType, first.Text).
		WithDetail("media_type", mediaType).
		WithDetail("messages", len(msgs))
	if first.Location != nil {
		err = err.WithDetail("line", first.Location.Line).
			WithDetail("column", first.Location.Column)
	}
	return err
}
