package kinds

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/util/sets"
)

// DefaultOrder is the kind order used when no override is configured.
var DefaultOrder = []string{Module, Class, Interface, Mixin, Namespace, Method, Member, Typedef, Enum, Event}

// ResolveOrder computes the effective kind order.
//
// A non-empty userOrder is deduplicated (first occurrence wins) and followed by
// every default kind it does not mention; otherwise defaultOrder is used as is.
// Kinds named in userExclude are removed, each entry matched both as written
// and in its singular form, so "events" removes "event".
func ResolveOrder(defaultOrder, userOrder, userExclude []string) []string {
	var order []string
	if user := normalizeList(userOrder); len(user) > 0 {
		seen := sets.New[string]()
		for _, k := range user {
			if seen.Insert(k) {
				order = append(order, k)
			}
		}
		for _, k := range defaultOrder {
			if seen.Insert(k) {
				order = append(order, k)
			}
		}
	} else {
		order = slices.Clone(defaultOrder)
	}

	excluded := excludeSet(userExclude)
	if len(excluded) == 0 {
		return order
	}
	return slices.DeleteFunc(order, excluded.Has)
}

func excludeSet(userExclude []string) sets.Set[string] {
	excluded := sets.New[string]()
	for _, e := range normalizeList(userExclude) {
		excluded.Add(e)
		excluded.Add(Singularize(e))
	}
	return excluded
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Policy is the resolved kind order as a rank map consumed by comparators.
type Policy struct {
	order    []string
	rank     map[string]int
	excluded sets.Set[string]
}

// NewPolicy resolves the order and builds the rank map.
func NewPolicy(defaultOrder, userOrder, userExclude []string) *Policy {
	order := ResolveOrder(defaultOrder, userOrder, userExclude)
	rank := make(map[string]int, len(order))
	for i, k := range order {
		rank[k] = i
	}
	return &Policy{order: order, rank: rank, excluded: excludeSet(userExclude)}
}

// DefaultPolicy returns the policy for DefaultOrder without overrides.
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultOrder, nil, nil)
}

// Order returns a copy of the effective kind order.
func (p *Policy) Order() []string { return slices.Clone(p.order) }

// Rank returns the position of kind in the order.
func (p *Policy) Rank(kind string) (int, bool) {
	r, ok := p.rank[kind]
	return r, ok
}

// Excluded reports whether kind was removed by the exclusion list.
func (p *Policy) Excluded(kind string) bool { return p.excluded.Has(kind) }

// Compare orders kinds by rank; unranked kinds sort after every ranked kind
// and compare equal to each other.
func (p *Policy) Compare(a, b string) int {
	ra, okA := p.rank[a]
	rb, okB := p.rank[b]
	switch {
	case okA && okB:
		return ra - rb
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
