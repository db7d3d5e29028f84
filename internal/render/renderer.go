package render

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"os"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/markdown"
)

//go:embed tmpl/*.tmpl
var viewFS embed.FS

// View names.
const (
	LayoutView    = "layout.tmpl"
	ContainerView = "container.tmpl"
	DocView       = "doc.tmpl"
)

// IndexFile is the landing page written next to the symbol pages.
const IndexFile = "index.html"

// Options configures a Renderer.
type Options struct {
	SiteTitle         string
	ShowKindIcons     bool
	TemplatesDir      string
	HighlightStyle    string
	CompactWhitespace bool
	Revision          string
	JavaScripts       []string
	Stylesheets       []string
}

// Renderer holds the parsed views. It is safe for concurrent use once built.
type Renderer struct {
	opts        Options
	views       *template.Template
	highlighter *Highlighter
	markdown    *markdown.Converter
}

// New parses the embedded views and applies overrides from
// opts.TemplatesDir.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		opts:        opts,
		highlighter: NewHighlighter(opts.HighlightStyle),
		markdown:    markdown.New(false),
	}

	views, err := template.New("symdoc").Funcs(r.baseFuncs()).ParseFS(viewFS, "tmpl/*.tmpl")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "parse embedded views").Build()
	}
	if opts.TemplatesDir != "" {
		overrides, err := fs.Glob(os.DirFS(opts.TemplatesDir), "*.tmpl")
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "list template overrides").Build()
		}
		if len(overrides) > 0 {
			if views, err = views.ParseFS(os.DirFS(opts.TemplatesDir), overrides...); err != nil {
				return nil, errors.WrapError(err, errors.CategoryRender, "parse template overrides").
					WithContext("path", opts.TemplatesDir).
					Build()
			}
		}
	}
	r.views = views
	return r, nil
}

// Highlighter returns the code highlighter used by the views.
func (r *Renderer) Highlighter() *Highlighter { return r.highlighter }

// Markdown returns the converter used for descriptions.
func (r *Renderer) Markdown() *markdown.Converter { return r.markdown }

// Site renders the pages of one graph.
type Site struct {
	r     *Renderer
	g     *graph.Graph
	views *template.Template
}

// Bind returns a Site whose link helpers resolve against g.
func (r *Renderer) Bind(g *graph.Graph) (*Site, error) {
	views, err := r.views.Clone()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "clone views").Build()
	}
	return &Site{r: r, g: g, views: views.Funcs(graphFuncs(g))}, nil
}

// Graph returns the bound graph.
func (s *Site) Graph() *graph.Graph { return s.g }

type layoutView struct {
	Title         string
	SiteTitle     string
	Content       template.HTML
	Nav           []graph.NavGroup
	ActiveHref    string
	JavaScripts   []string
	Stylesheets   []string
	Revision      string
	ShowKindIcons bool
}

type indexView struct {
	Title  string
	Readme template.HTML
	Groups []graph.NavGroup
}

type docView struct {
	Doc      *graph.Node
	Sections []sectionView
}

// IndexContent is what the landing page shows above the symbol listing.
type IndexContent struct {
	Title  string
	Readme template.HTML
}

// RenderIndex renders the landing page: the README (if any) followed by
// every symbol grouped by kind.
func (s *Site) RenderIndex(c IndexContent) ([]byte, error) {
	title := c.Title
	if title == "" {
		title = s.r.opts.SiteTitle
	}
	body, err := s.execute(ContainerView, indexView{Title: title, Readme: c.Readme, Groups: s.g.ByKind()})
	if err != nil {
		return nil, err
	}
	return s.layout(body, title, "")
}

// RenderPage renders the page of a standalone node.
func (s *Site) RenderPage(n *graph.Node) ([]byte, error) {
	if !n.HasPage() {
		return nil, errors.RenderError("symbol has no page of its own").
			WithContext("longname", n.Longname).
			WithContext("href", n.Href).
			Build()
	}
	body, err := s.execute(DocView, docView{Doc: n, Sections: sectionsFor(n)})
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("longname", n.Longname)
		}
		return nil, err
	}
	return s.layout(body, n.Longname, n.Href)
}

func (s *Site) layout(content template.HTML, title, active string) ([]byte, error) {
	out, err := s.execute(LayoutView, layoutView{
		Title:         title,
		SiteTitle:     s.r.opts.SiteTitle,
		Content:       content,
		Nav:           s.g.Nav,
		ActiveHref:    active,
		JavaScripts:   s.r.opts.JavaScripts,
		Stylesheets:   s.r.opts.Stylesheets,
		Revision:      s.r.opts.Revision,
		ShowKindIcons: s.r.opts.ShowKindIcons,
	})
	if err != nil {
		return nil, err
	}
	html := string(out)
	if s.r.opts.CompactWhitespace {
		html = Compact(html)
	}
	return []byte(html), nil
}

func (s *Site) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.views.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "execute view").
			WithContext("view", name).
			Build()
	}
	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template
}
