package render

import (
	"bytes"
	"encoding/json"
	"html/template"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/doclet"
	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

// sectionView is one titled bucket of a symbol. Children with their own page
// are listed as links; anchored children are rendered inline.
type sectionView struct {
	Title  string
	Key    kinds.Bucket
	Pages  []*graph.Node
	Inline []*graph.Node
}

// sectionsFor returns the non-empty sections of n in page order.
func sectionsFor(n *graph.Node) []sectionView {
	var out []sectionView
	for _, s := range kinds.SectionsFor(n.Kind) {
		items := n.Bucket(s.Bucket)
		if len(items) == 0 {
			continue
		}
		v := sectionView{Title: s.Title, Key: s.Bucket}
		for _, it := range items {
			if it.HasPage() {
				v.Pages = append(v.Pages, it)
			} else {
				v.Inline = append(v.Inline, it)
			}
		}
		out = append(out, v)
	}
	return out
}

func kindLabel(kind string, opts ...string) string {
	var lo kinds.LabelOptions
	for _, o := range opts {
		switch o {
		case "plural":
			lo.Plural = true
		case "title":
			lo.Title = true
		}
	}
	return kinds.Label(kind, lo)
}

func typeNames(t *doclet.TypeSpec) string {
	if t == nil {
		return ""
	}
	return strings.Join(t.Names, " | ")
}

// signature renders "(a, [b], ...rest)" for callable kinds and "" otherwise.
func signature(n *graph.Node) string {
	switch n.Kind {
	case kinds.Function, kinds.Method, kinds.Class:
	default:
		return ""
	}
	names := make([]string, 0, len(n.Params))
	for _, p := range n.Params {
		name := p.Name
		if p.Variable {
			name = "..." + name
		}
		if p.IsOptional() {
			name = "[" + name + "]"
		}
		names = append(names, name)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// defaultValue prints a raw JSON default, unquoting plain strings.
func defaultValue(p *doclet.Param) string {
	raw := bytes.TrimSpace(p.DefaultValue)
	var s string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

type exampleView struct {
	Caption string
	Code    string
}

var captionPattern = regexp.MustCompile(`(?s)^\s*<caption>(.*?)</caption>\s*`)

// example splits a leading <caption> from an example body.
func example(s string) exampleView {
	if m := captionPattern.FindStringSubmatchIndex(s); m != nil {
		return exampleView{Caption: s[m[2]:m[3]], Code: s[m[1]:]}
	}
	return exampleView{Code: s}
}

func isURL(s string) bool {
	return urlPattern.MatchString(s)
}

var urlPattern = regexp.MustCompile(`(?i)^(?:[a-z][a-z0-9+.-]*:)?//`)

// baseFuncs are the helpers that do not depend on a graph. linkTo and
// seeLink are placeholders until Bind replaces them.
func (r *Renderer) baseFuncs() template.FuncMap {
	return template.FuncMap{
		"pluralize":     kinds.Pluralize,
		"titleize":      kinds.Titleize,
		"kindLabel":     kindLabel,
		"kindIcon":      kinds.Icon,
		"showKindIcons": func() bool { return r.opts.ShowKindIcons },
		"highlight":     r.highlighter.Highlight,
		"markdown":      r.markdown.Inline,
		"typeNames":     typeNames,
		"signature":     signature,
		"defaultValue":  defaultValue,
		"example":       example,
		"sectionsFor":   sectionsFor,
		"linkTo":        func(string) string { return "" },
		"seeLink":       func(s string) template.HTML { return template.HTML(template.HTMLEscapeString(s)) }, //nolint:gosec // escaped
	}
}

// graphFuncs binds the link helpers to g.
func graphFuncs(g *graph.Graph) template.FuncMap {
	return template.FuncMap{
		"linkTo": g.LinkTo,
		"seeLink": func(ref string) template.HTML {
			esc := template.HTMLEscapeString(ref)
			if href := g.LinkTo(ref); href != "" {
				return template.HTML(`<a href="` + template.HTMLEscapeString(href) + `">` + esc + `</a>`) //nolint:gosec // escaped
			}
			if isURL(ref) {
				return template.HTML(`<a href="` + esc + `">` + esc + `</a>`) //nolint:gosec // escaped
			}
			return template.HTML(`<code>` + esc + `</code>`) //nolint:gosec // escaped
		},
	}
}
