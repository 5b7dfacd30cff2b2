// Package markdown renders Markdown document pages to HTML with goldmark.
//
// A thematic break (a line holding only ---, separated by blank lines) is
// rendered as <hr> or, in XHTML mode, <hr />. The paginator relies on that
// to find page breaks in converted documents.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"artifact-chat/internal/config"
)

type Converter struct {
	md goldmark.Markdown
}

func New(cfg config.MarkdownConfig) *Converter {
	var exts []goldmark.Extender
	if cfg.GFMEnabled() {
		exts = append(exts, extension.GFM)
	}

	var opts []renderer.Option
	if cfg.HardWraps {
		opts = append(opts, html.WithHardWraps())
	}
	if cfg.XHTML {
		opts = append(opts, html.WithXHTML())
	}
	if cfg.UnsafeEnabled() {
		opts = append(opts, html.WithUnsafe())
	}

	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(opts...),
		),
	}
}

// Convert renders src to an HTML fragment.
func (c *Converter) Convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
