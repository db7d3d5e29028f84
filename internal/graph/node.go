package graph

import (
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/doclet"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
	"git.home.luguber.info/inful/symdoc/internal/slug"
)

// AnchorPrefix starts every symbol anchor.
const AnchorPrefix = "symbol-"

// Node is a doclet augmented with its place in the page graph.
type Node struct {
	*doclet.Symbol

	// Filename is the page filename allocated for the node. It is allocated
	// for every node, including anchored ones that never get a page.
	Filename string
	// Href is the final link target once FinalizeLinks has run.
	Href string
	// Anchor is the fragment id of the node on whichever page shows it.
	Anchor string
	// Parent is the owning node, nil for roots. It never owns the node.
	Parent *Node
	// MemberofLongname is the raw owner reference as written in the record.
	MemberofLongname string
	// Members holds the owned children per bucket.
	Members map[kinds.Bucket][]*Node
	// SectionKey is the bucket this node is filed under on Parent.
	SectionKey kinds.Bucket
}

func newNode(rec *doclet.Symbol, alloc *slug.Allocator) *Node {
	sym := *rec
	sym.Params = doclet.ConsolidateParams(rec.Params)
	sym.Properties = doclet.ConsolidateParams(rec.Properties)

	filename := alloc.Allocate(rec.Longname, rec.Name, rec.Longname, rec.Kind)
	return &Node{
		Symbol:           &sym,
		Filename:         filename,
		Href:             filename,
		Anchor:           anchorFor(rec),
		MemberofLongname: rec.Memberof,
		Members:          make(map[kinds.Bucket][]*Node),
	}
}

func anchorFor(rec *doclet.Symbol) string {
	for _, s := range []string{rec.Longname, rec.Name, rec.Kind} {
		if id := slug.Slugify(s); id != "" {
			return AnchorPrefix + id
		}
	}
	return AnchorPrefix + "symbol"
}

// HasPage reports whether the node is rendered as a standalone page.
func (n *Node) HasPage() bool { return !strings.Contains(n.Href, "#") }

// Page returns the page the node is shown on: its own for standalone nodes,
// the nearest standalone ancestor's for anchored ones.
func (n *Node) Page() string {
	page, _, _ := strings.Cut(n.Href, "#")
	return page
}

// Bucket returns the children filed under b.
func (n *Node) Bucket(b kinds.Bucket) []*Node { return n.Members[b] }

// Children returns every child in bucket rendering order.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, b := range kinds.AllBuckets {
		out = append(out, n.Members[b]...)
	}
	return out
}

// Depth is the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// DisplayName is the name shown in listings.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Longname
}
