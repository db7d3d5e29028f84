package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

func TestResolver(t *testing.T) {
	mk := func(longname, name, kind string) *Node {
		return &Node{Symbol: sym(longname, name, kind, "", ""), Members: map[kinds.Bucket][]*Node{}}
	}
	mod := mk("module:util", "util", "module")
	cls := mk("util.Util", "Util", "class")
	td := mk("types.Util", "Util", "typedef")
	a := mk("a.Point", "Point", "class")
	b := mk("b.Point", "Point", "class")
	self := mk("Self", "Self", "class")
	r := NewResolver([]*Node{mod, cls, td, a, b, self})

	tests := []struct {
		name string
		ref  string
		self *Node
		want *Node
		res  Resolution
	}{
		{"exact", "util.Util", nil, cls, Exact},
		{"module shorthand", "util", nil, mod, ModuleShorthand},
		{"qualified ref skips shorthand", "x.util", nil, nil, Unresolved},
		{"kind preference", "Util", nil, cls, Ambiguous},
		{"lexical longname", "Point", nil, a, Ambiguous},
		{"single name match", "Point", a, b, ByName},
		{"self excluded", "Self", self, nil, Unresolved},
		{"empty", "", nil, nil, Unresolved},
		{"unknown", "Nothing", nil, nil, Unresolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := r.Resolve(tt.ref, tt.self)
			assert.Same(t, tt.want, got)
			assert.Equal(t, tt.res, res, res.String())
			assert.Equal(t, tt.want != nil, res.Found())
		})
	}
}

func TestResolverCandidatesKeepInputOrder(t *testing.T) {
	n1 := &Node{Symbol: sym("z.X", "X", "class", "", "")}
	n2 := &Node{Symbol: sym("a.X", "X", "class", "", "")}
	r := NewResolver([]*Node{n1, n2})
	assert.Equal(t, []*Node{n1, n2}, r.Candidates("X", nil))
	assert.Equal(t, []*Node{n2}, r.Candidates("X", n1))
}
