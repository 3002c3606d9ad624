package transform

import (
	"bytes"
	"context"
	"io"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/parse/v2"
	parsehtml "github.com/tdewolff/parse/v2/html"
)

func newMarkup(m *minify.M, opts HTMLOptions) Transformer {
	minifier := &minifyTransformer{m: m, mediaType: MediaTypeMarkup}
	if !opts.RemoveEmptyAttributes {
		return minifier
	}
	return Func(func(ctx context.Context, src []byte) ([]byte, error) {
		return minifier.Transform(ctx, StripEmptyAttributes(src))
	})
}

// emptyRemovable lists the attributes dropped when their value is empty.
// Event handlers (on*) are matched separately.
var emptyRemovable = map[string]bool{
	"class": true,
	"id":    true,
	"style": true,
	"title": true,
	"lang":  true,
	"dir":   true,
}

// StripEmptyAttributes removes native attributes with an empty value, such
// as class="" or onclick="". Attributes without any value (disabled) are
// kept. Input the lexer cannot tokenize is returned unchanged.
func StripEmptyAttributes(src []byte) []byte {
	l := parsehtml.NewLexer(parse.NewInputBytes(src))
	out := bytes.NewBuffer(make([]byte, 0, len(src)))
	for {
		tt, data := l.Next()
		switch tt {
		case parsehtml.ErrorToken:
			if l.Err() != io.EOF {
				return src
			}
			return out.Bytes()
		case parsehtml.AttributeToken:
			if isRemovable(l.Text()) && isEmptyValue(l.AttrVal()) {
				continue
			}
		}
		out.Write(data)
	}
}

func isRemovable(name []byte) bool {
	n := string(bytes.ToLower(name))
	if emptyRemovable[n] {
		return true
	}
	return len(n) > 2 && n[:2] == "on"
}

func isEmptyValue(val []byte) bool {
	if val == nil {
		return false
	}
	return len(bytes.TrimSpace(bytes.Trim(val, `"'`))) == 0
}
