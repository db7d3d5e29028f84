// Package markdown converts Markdown (README files and symbol descriptions)
// to HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders Markdown with GitHub flavoured extensions. Raw HTML in
// the source is passed through, since descriptions extracted from doc
// comments often carry inline tags. A Converter is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// New returns a Converter. With headingIDs, headings get generated ids.
func New(headingIDs bool) *Converter {
	var popts []parser.Option
	if headingIDs {
		popts = append(popts, parser.WithAutoHeadingID())
	}
	return &Converter{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(popts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)}
}

// Convert renders src.
func (c *Converter) Convert(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // rendered from trusted doc sources
}

// Inline renders s and falls back to escaped text when conversion fails.
func (c *Converter) Inline(s string) template.HTML {
	if s == "" {
		return ""
	}
	out, err := c.Convert([]byte(s))
	if err != nil {
		return template.HTML(template.HTMLEscapeString(s)) //nolint:gosec // escaped above
	}
	return out
}
