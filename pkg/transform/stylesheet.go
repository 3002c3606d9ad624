package transform

import (
	"context"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2"
)

func newStylesheet(m *minify.M, opts StylesheetOptions) Transformer {
	minifier := &minifyTransformer{m: m, mediaType: MediaTypeStylesheet}
	if !opts.Autoprefix {
		return minifier
	}
	engines, _ := ParseEngines(opts.Browsers)
	return &stylesheet{
		prefix: &esbuildTransformer{
			mediaType: MediaTypeStylesheet,
			options: api.TransformOptions{
				Loader:   api.LoaderCSS,
				Engines:  engines,
				LogLevel: api.LogLevelSilent,
			},
		},
		minify: minifier,
	}
}

// stylesheet adds vendor prefixes with esbuild and then minifies.
type stylesheet struct {
	prefix Transformer
	minify Transformer
}

func (s *stylesheet) Transform(ctx context.Context, src []byte) ([]byte, error) {
	prefixed, err := s.prefix.Transform(ctx, src)
	if err != nil {
		return nil, err
	}
	return s.minify.Transform(ctx, prefixed)
}
