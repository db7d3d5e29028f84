package graph

import (
	"fmt"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

// FinalizeLinks assigns final hrefs parents-first. Anchored kinds with a
// parent point at their anchor on the parent's page; every other node keeps
// its filename. Sibling anchors that repeat are recorded as diagnostics and
// the later one owns the anchor index entry.
func FinalizeLinks(g *Graph) error {
	g.anchors = make(map[string]*Node)

	queue := make([]*Node, 0, len(g.Nodes))
	queue = append(queue, g.Roots...)
	visited := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited++

		if n.Parent != nil && kinds.IsAnchored(n.Kind) {
			n.Href = n.Parent.Page() + "#" + n.Anchor
			if prev, dup := g.anchors[n.Href]; dup {
				g.addDiagnostic(Diagnostic{
					Code:     CodeDuplicateAnchor,
					Longname: n.Longname,
					Ref:      n.Href,
					Detail:   fmt.Sprintf("shares anchor with %s", prev.Longname),
				})
			}
			g.anchors[n.Href] = n
		} else {
			n.Href = n.Filename
		}

		for _, b := range kinds.AllBuckets {
			queue = append(queue, n.Members[b]...)
		}
	}

	if visited != len(g.Nodes) {
		return errors.WrapError(ErrDanglingParent, errors.CategoryGraph, "link pass did not reach every symbol").
			Fatal().
			WithContext("visited", visited).
			WithContext("total", len(g.Nodes)).
			Build()
	}
	return nil
}
