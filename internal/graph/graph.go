package graph

import (
	stdErrors "errors"

	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

// Sentinel causes wrapped by the fatal graph errors.
var (
	ErrReferenceCycle = stdErrors.New("reference cycle between symbols")
	ErrDanglingParent = stdErrors.New("symbol is not reachable from any root")
	ErrMalformedInput = stdErrors.New("record without identity reached the graph")
)

// NavGroup is one top-level navigation entry.
type NavGroup struct {
	Kind  string
	Items []*Node
}

// Graph is the result of one run. It is read-only once Run returns.
type Graph struct {
	// Roots are the nodes without a resolved parent, sorted.
	Roots []*Node
	// Nodes holds every node in input order.
	Nodes []*Node
	// Nav is filled by AssembleNav.
	Nav []NavGroup
	// Diagnostics collects every recoverable condition of the run.
	Diagnostics []Diagnostic
	// Policy is the kind order the graph was sorted with.
	Policy *kinds.Policy

	index   map[string]*Node
	anchors map[string]*Node
}

// Lookup returns the node with the given longname.
func (g *Graph) Lookup(longname string) (*Node, bool) {
	n, ok := g.index[longname]
	return n, ok
}

// LinkTo returns the final href of longname, or "" when unknown.
func (g *Graph) LinkTo(longname string) string {
	if n, ok := g.index[longname]; ok {
		return n.Href
	}
	return ""
}

// AnchorIndex returns the node an anchored href points to. When several
// siblings share an anchor the last one linked wins.
func (g *Graph) AnchorIndex(href string) (*Node, bool) {
	n, ok := g.anchors[href]
	return n, ok
}

// Pages returns the nodes rendered as standalone pages in input order.
func (g *Graph) Pages() []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.HasPage() {
			out = append(out, n)
		}
	}
	return out
}

// ByKind groups every node by kind following the policy order, sorted.
// Kinds outside the order are omitted.
func (g *Graph) ByKind() []NavGroup {
	grouped := make(map[string][]*Node)
	for _, n := range g.Nodes {
		grouped[n.Kind] = append(grouped[n.Kind], n)
	}
	var out []NavGroup
	for _, k := range g.Policy.Order() {
		items := grouped[k]
		if len(items) == 0 {
			continue
		}
		SortNodes(items, g.Policy)
		out = append(out, NavGroup{Kind: k, Items: items})
	}
	return out
}

func (g *Graph) addDiagnostic(d Diagnostic) {
	g.Diagnostics = append(g.Diagnostics, d)
}
