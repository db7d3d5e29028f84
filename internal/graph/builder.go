package graph

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/doclet"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
	"git.home.luguber.info/inful/symdoc/internal/slug"
)

// Builder links records into a tree. A Builder serves a single run.
type Builder struct {
	policy *kinds.Policy
	alloc  *slug.Allocator
	graph  *Graph
}

// NewBuilder returns a builder for one run.
func NewBuilder(opts Options) *Builder {
	policy := opts.policy()
	var allocOpts []slug.Option
	if opts.Extension != "" {
		allocOpts = append(allocOpts, slug.WithExtension(opts.Extension))
	}
	alloc := slug.NewAllocator(allocOpts...)
	alloc.Reserve(opts.Reserved...)
	return &Builder{
		policy: policy,
		alloc:  alloc,
		graph:  &Graph{Policy: policy},
	}
}

// Build creates nodes for records and links them. Records must already be
// filtered: each needs a longname and a kind, and longnames must be unique.
func Build(records []*doclet.Symbol, opts Options) (*Graph, error) {
	return NewBuilder(opts).Build(records)
}

// Build runs both passes and sorts the result.
func (b *Builder) Build(records []*doclet.Symbol) (*Graph, error) {
	if err := b.index(records); err != nil {
		return nil, err
	}
	b.link()
	if err := checkAcyclic(b.graph.Nodes); err != nil {
		return nil, err
	}
	b.sort()
	return b.graph, nil
}

// index is pass one: one node per record, filenames allocated in input order.
func (b *Builder) index(records []*doclet.Symbol) error {
	g := b.graph
	g.index = make(map[string]*Node, len(records))
	g.Nodes = make([]*Node, 0, len(records))

	for i, rec := range records {
		if rec == nil || rec.Longname == "" || rec.Kind == "" {
			return errors.WrapError(ErrMalformedInput, errors.CategoryGraph, "graph input must be filtered").
				Fatal().
				WithContext("index", i).
				Build()
		}
		if _, dup := g.index[rec.Longname]; dup {
			return errors.WrapError(ErrMalformedInput, errors.CategoryGraph, "duplicate longname in graph input").
				Fatal().
				WithContext("longname", rec.Longname).
				Build()
		}
		n := newNode(rec, b.alloc)
		g.index[rec.Longname] = n
		g.Nodes = append(g.Nodes, n)
	}

	for _, c := range b.alloc.Collisions() {
		g.addDiagnostic(Diagnostic{
			Code:     CodeSlugCollision,
			Longname: c.Identity,
			Detail:   fmt.Sprintf("%s taken, using %s", c.Base, c.Filename),
		})
	}
	return nil
}

// link is pass two: resolve each owner reference and file the node.
func (b *Builder) link() {
	g := b.graph
	resolver := NewResolver(g.Nodes)
	for _, n := range g.Nodes {
		parent := b.resolveParent(resolver, n)
		if parent == nil {
			g.Roots = append(g.Roots, n)
			continue
		}
		bucket := kinds.BucketFor(n.Kind, n.Scope, parent.Kind)
		n.Parent = parent
		n.SectionKey = bucket
		parent.Members[bucket] = append(parent.Members[bucket], n)
	}
}

func (b *Builder) resolveParent(resolver *Resolver, n *Node) *Node {
	ref := n.MemberofLongname
	if ref == "" {
		return nil
	}
	parent, res := resolver.Resolve(ref, n)
	switch res {
	case Unresolved:
		b.graph.addDiagnostic(Diagnostic{
			Code:     CodeUnresolvedReference,
			Longname: n.Longname,
			Ref:      ref,
			Detail:   "promoted to root",
		})
	case Ambiguous:
		names := make([]string, 0)
		for _, c := range resolver.Candidates(ref, n) {
			names = append(names, c.Longname)
		}
		b.graph.addDiagnostic(Diagnostic{
			Code:     CodeAmbiguousReference,
			Longname: n.Longname,
			Ref:      ref,
			Detail:   fmt.Sprintf("chose %s from %s", parent.Longname, strings.Join(names, ", ")),
		})
	}
	return parent
}

func (b *Builder) sort() {
	SortNodes(b.graph.Roots, b.policy)
	for _, n := range b.graph.Nodes {
		for _, list := range n.Members {
			SortNodes(list, b.policy)
		}
	}
}

// checkAcyclic fails when following Parent from any node loops.
func checkAcyclic(nodes []*Node) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*Node]int, len(nodes))
	for _, start := range nodes {
		var path []*Node
		n := start
		for n != nil && state[n] == unvisited {
			state[n] = visiting
			path = append(path, n)
			n = n.Parent
		}
		if n != nil && state[n] == visiting {
			return cycleError(n)
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}

func cycleError(at *Node) error {
	chain := []string{at.Longname}
	for n := at.Parent; n != at; n = n.Parent {
		chain = append(chain, n.Longname)
	}
	chain = append(chain, at.Longname)
	return errors.WrapError(ErrReferenceCycle, errors.CategoryGraph, "symbols are members of each other").
		Fatal().
		WithContext("longname", at.Longname).
		WithContext("cycle", strings.Join(chain, " -> ")).
		Build()
}
