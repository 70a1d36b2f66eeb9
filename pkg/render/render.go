package render

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

type (
	// Renderer turns markdown / mdx post bodies into html fragments
	Renderer struct {
		l      *zap.Logger
		md     goldmark.Markdown
		unsafe bool
	}
	Option func(*Renderer)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func New(l *zap.Logger, opts ...Option) *Renderer {
	inst := &Renderer{
		l: l.Named("render"),
	}

	for _, opt := range opts {
		opt(inst)
	}

	rendererOptions := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	}
	if inst.unsafe {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithUnsafe()))
	} else {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(gmhtml.WithHardWraps()))
	}
	inst.md = goldmark.New(rendererOptions...)

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

// WithUnsafe keeps raw html from the source
func WithUnsafe(v bool) Option {
	return func(o *Renderer) {
		o.unsafe = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (r *Renderer) Render(w io.Writer, body string) error {
	if err := r.md.Convert([]byte(body), w); err != nil {
		return errors.Wrap(err, "failed to render markdown")
	}
	return nil
}

func (r *Renderer) RenderString(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, body); err != nil {
		r.l.Debug("render failed", zap.Error(err))
		return "", err
	}
	return buf.String(), nil
}
