package graph

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

// Less orders a before b: ranked kinds by policy rank, unranked kinds after
// every ranked one, then by name.
func Less(policy *kinds.Policy, a, b *Node) bool {
	return compareNodes(policy, a, b) < 0
}

func compareNodes(policy *kinds.Policy, a, b *Node) int {
	if c := policy.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// SortNodes sorts list in place. Equal nodes keep their relative order.
func SortNodes(list []*Node, policy *kinds.Policy) {
	slices.SortStableFunc(list, func(a, b *Node) int {
		return compareNodes(policy, a, b)
	})
}
