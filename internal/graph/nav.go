package graph

import (
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/kinds"
	"git.home.luguber.info/inful/symdoc/internal/util/sets"
)

// NavOptions tunes AssembleNav.
type NavOptions struct {
	// PromoteModuleMembers also lists the direct members of modules at the
	// top level.
	PromoteModuleMembers bool
}

// AssembleNav groups roots by kind in policy order. Each longname appears at
// most once, groups without items are skipped and kinds outside the order
// are not listed.
func AssembleNav(roots, all []*Node, policy *kinds.Policy, opts NavOptions) []NavGroup {
	candidates := roots
	if opts.PromoteModuleMembers {
		candidates = append(candidates[:len(candidates):len(candidates)], moduleMembers(all)...)
	}

	seen := sets.New[string]()
	grouped := make(map[string][]*Node)
	for _, n := range candidates {
		if !seen.Insert(n.Longname) {
			continue
		}
		grouped[n.Kind] = append(grouped[n.Kind], n)
	}

	var out []NavGroup
	for _, kind := range policy.Order() {
		items := grouped[kind]
		if len(items) == 0 {
			continue
		}
		SortNodes(items, policy)
		out = append(out, NavGroup{Kind: kind, Items: items})
	}
	return out
}

func moduleMembers(all []*Node) []*Node {
	var out []*Node
	for _, n := range all {
		switch {
		case n.Parent != nil && n.Parent.Kind == kinds.Module:
			out = append(out, n)
		case strings.HasPrefix(n.MemberofLongname, kinds.ModulePrefix):
			out = append(out, n)
		}
	}
	return out
}
