package render

import (
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter renders code blocks with CSS classes; WriteCSS emits the
// matching stylesheet.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter uses the named chroma style, falling back to chroma's
// default style for unknown names.
func NewHighlighter(style string) *Highlighter {
	return &Highlighter{
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true)),
	}
}

// Highlight renders code as a <pre><code> block. An empty lang asks for
// detection; an unknown lang or a tokenizer failure yields escaped text.
func (h *Highlighter) Highlight(code, lang string) template.HTML {
	if lexer, name := h.lexer(code, lang); lexer != nil {
		if body, ok := h.format(lexer, code); ok {
			return template.HTML(`<pre class="chroma"><code class="language-` + //nolint:gosec // chroma escapes tokens
				template.HTMLEscapeString(name) + `">` + body + `</code></pre>`)
		}
	}
	return template.HTML(`<pre class="chroma"><code>` + template.HTMLEscapeString(code) + `</code></pre>`) //nolint:gosec // escaped
}

func (h *Highlighter) lexer(code, lang string) (chroma.Lexer, string) {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l, strings.ToLower(lang)
		}
		return nil, ""
	}
	if strings.TrimSpace(code) == "" {
		return nil, ""
	}
	if l := lexers.Analyse(code); l != nil {
		return l, strings.ToLower(l.Config().Name)
	}
	return lexers.Get("plaintext"), "plaintext"
}

func (h *Highlighter) format(lexer chroma.Lexer, code string) (string, bool) {
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", false
	}
	return b.String(), true
}

// WriteCSS writes the stylesheet for the highlighter's style.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}
