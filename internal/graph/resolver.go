package graph

import (
	"strings"

	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

// Resolution reports which rule matched a reference.
type Resolution int

const (
	Unresolved Resolution = iota
	Exact
	ModuleShorthand
	ByName
	Ambiguous
)

func (r Resolution) String() string {
	switch r {
	case Exact:
		return "exact"
	case ModuleShorthand:
		return "module_shorthand"
	case ByName:
		return "by_name"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unresolved"
	}
}

// Found reports whether the reference matched a node.
func (r Resolution) Found() bool { return r != Unresolved }

// namespaceSeparators mark a reference as already qualified.
const namespaceSeparators = ".#~:"

// preference breaks ties between several nodes sharing a short name.
var preference = []string{
	kinds.Module, kinds.Namespace, kinds.Class, kinds.Mixin, kinds.Interface,
	kinds.Typedef, kinds.Enum, kinds.Event, kinds.Function, kinds.Method, kinds.Member,
}

func preferenceRank(kind string) int {
	for i, k := range preference {
		if k == kind {
			return i
		}
	}
	return len(preference)
}

// Resolver maps reference strings to nodes of one run.
type Resolver struct {
	byLongname map[string]*Node
	byName     map[string][]*Node
}

// NewResolver indexes nodes by longname and by short name. Name candidates
// keep input order.
func NewResolver(nodes []*Node) *Resolver {
	r := &Resolver{
		byLongname: make(map[string]*Node, len(nodes)),
		byName:     make(map[string][]*Node),
	}
	for _, n := range nodes {
		if _, ok := r.byLongname[n.Longname]; !ok {
			r.byLongname[n.Longname] = n
		}
		if n.Name != "" {
			r.byName[n.Name] = append(r.byName[n.Name], n)
		}
	}
	return r
}

// Resolve finds the node ref points to, never returning self.
//
// The rules are tried in order: exact longname, the "module:" shorthand for
// unqualified references, then short name. Several short-name matches are
// narrowed by kind preference and then by longname; the winner is returned
// with Ambiguous.
func (r *Resolver) Resolve(ref string, self *Node) (*Node, Resolution) {
	if ref == "" {
		return nil, Unresolved
	}
	if n, ok := r.byLongname[ref]; ok && n != self {
		return n, Exact
	}
	if !strings.ContainsAny(ref, namespaceSeparators) {
		if n, ok := r.byLongname[kinds.ModulePrefix+ref]; ok && n != self {
			return n, ModuleShorthand
		}
	}

	candidates := r.Candidates(ref, self)
	switch len(candidates) {
	case 0:
		return nil, Unresolved
	case 1:
		return candidates[0], ByName
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if preferred(c, best) {
			best = c
		}
	}
	return best, Ambiguous
}

// Candidates lists every node sharing the short name ref, self excluded.
func (r *Resolver) Candidates(ref string, self *Node) []*Node {
	var out []*Node
	for _, n := range r.byName[ref] {
		if n != self {
			out = append(out, n)
		}
	}
	return out
}

func preferred(a, b *Node) bool {
	ra, rb := preferenceRank(a.Kind), preferenceRank(b.Kind)
	if ra != rb {
		return ra < rb
	}
	return a.Longname < b.Longname
}
