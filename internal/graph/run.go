package graph

import (
	"fmt"

	"git.home.luguber.info/inful/symdoc/internal/doclet"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

// Options configures a run.
type Options struct {
	// Policy orders kinds; nil means kinds.DefaultPolicy.
	Policy *kinds.Policy
	// Extension of allocated filenames; empty means slug.DefaultExt.
	Extension string
	// Reserved filenames are never allocated to symbols.
	Reserved []string
	Nav      NavOptions
}

func (o Options) policy() *kinds.Policy {
	if o.Policy != nil {
		return o.Policy
	}
	return kinds.DefaultPolicy()
}

// Run builds the graph from filtered records, finalizes links and assembles
// navigation.
func Run(records []*doclet.Symbol, opts Options) (*Graph, error) {
	g, err := Build(records, opts)
	if err != nil {
		return nil, err
	}
	if err := FinalizeLinks(g); err != nil {
		return nil, err
	}
	g.Nav = AssembleNav(g.Roots, g.Nodes, g.Policy, opts.Nav)
	return g, nil
}

// FromRecords filters raw records and runs the graph over the kept ones.
// Malformed records become diagnostics ahead of the graph's own.
func FromRecords(raw []*doclet.Symbol, opts Options) (*Graph, doclet.FilterResult, error) {
	filtered := doclet.Filter(raw)
	g, err := Run(filtered.Kept, opts)
	if err != nil {
		return nil, filtered, err
	}
	malformed := make([]Diagnostic, 0, len(filtered.Malformed)+len(g.Diagnostics))
	for _, d := range filtered.Malformed {
		malformed = append(malformed, Diagnostic{
			Code:     CodeMalformedRecord,
			Longname: d.Longname,
			Detail:   fmt.Sprintf("record %d dropped: %s", d.Index, d.Reason),
		})
	}
	g.Diagnostics = append(malformed, g.Diagnostics...)
	return g, filtered, nil
}
