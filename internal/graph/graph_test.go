package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/symdoc/internal/doclet"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

func sym(longname, name, kind, memberof, scope string) *doclet.Symbol {
	return &doclet.Symbol{Longname: longname, Name: name, Kind: kind, Memberof: memberof, Scope: scope}
}

func mustRun(t *testing.T, records []*doclet.Symbol, opts Options) *Graph {
	t.Helper()
	g, err := Run(records, opts)
	require.NoError(t, err)
	return g
}

func node(t *testing.T, g *Graph, longname string) *Node {
	t.Helper()
	n, ok := g.Lookup(longname)
	require.True(t, ok, "missing %s", longname)
	return n
}

func codes(diags []Diagnostic) []DiagnosticCode {
	out := make([]DiagnosticCode, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestRunClassWithInstanceMethod(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("Foo", "Foo", "class", "", ""),
		sym("Foo#bar", "bar", "function", "Foo", "instance"),
	}, Options{})

	foo := node(t, g, "Foo")
	bar := node(t, g, "Foo#bar")

	assert.Equal(t, "foo.html", foo.Href)
	assert.True(t, foo.HasPage())
	assert.Equal(t, "foo.html#symbol-foo-bar", bar.Href)
	assert.False(t, bar.HasPage())
	assert.Equal(t, kinds.InstanceMethods, bar.SectionKey)
	assert.Same(t, foo, bar.Parent)
	assert.Equal(t, []*Node{bar}, foo.Bucket(kinds.InstanceMethods))
	assert.Equal(t, []*Node{foo}, g.Roots)
	assert.Equal(t, []*Node{foo}, g.Pages())
	assert.Empty(t, g.Diagnostics)
}

func TestRunZeroOptionsKeepDefaultExtension(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("Foo", "Foo", "class", "", ""),
		sym("Foo#bar", "bar", "method", "Foo", "instance"),
		sym("module:a.Util", "Util", "class", "", ""),
		sym("module:b.Util", "Util", "class", "", ""),
	}, Options{})

	foo := node(t, g, "Foo")
	bar := node(t, g, "Foo#bar")
	assert.Equal(t, "foo.html", foo.Href)
	assert.True(t, foo.HasPage())
	assert.Equal(t, "foo.html#symbol-foo-bar", bar.Href)
	assert.False(t, bar.HasPage())
	assert.Same(t, foo, bar.Parent)
	assert.Equal(t, []*Node{bar}, foo.Bucket(kinds.InstanceMethods))
	assert.Equal(t, "util.html", node(t, g, "module:a.Util").Href)
	assert.Equal(t, "util-2.html", node(t, g, "module:b.Util").Href)
}

func TestRunFilenameCollision(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("module:a.Util", "Util", "class", "", ""),
		sym("module:b.Util", "Util", "class", "", ""),
	}, Options{})

	assert.Equal(t, "util.html", node(t, g, "module:a.Util").Href)
	assert.Equal(t, "util-2.html", node(t, g, "module:b.Util").Href)
	require.Len(t, g.Diagnostics, 1)
	assert.Equal(t, CodeSlugCollision, g.Diagnostics[0].Code)
	assert.Equal(t, "module:b.Util", g.Diagnostics[0].Longname)
}

func TestRunModuleShorthand(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("module:mymodule", "mymodule", "module", "", ""),
		sym("module:mymodule.helper", "helper", "function", "mymodule", "static"),
	}, Options{})

	mod := node(t, g, "module:mymodule")
	helper := node(t, g, "module:mymodule.helper")
	assert.Same(t, mod, helper.Parent)
	assert.Equal(t, kinds.Methods, helper.SectionKey)
	assert.Equal(t, "mymodule.html", mod.Href)
	assert.Equal(t, "mymodule.html#symbol-module-mymodule.helper", helper.Href)
	assert.Empty(t, g.Diagnostics)
}

func TestRunNavWithPolicy(t *testing.T) {
	policy := kinds.NewPolicy(kinds.DefaultOrder, []string{"class", "module"}, []string{"events"})
	g := mustRun(t, []*doclet.Symbol{
		sym("ns", "ns", "namespace", "", ""),
		sym("module:m", "m", "module", "", ""),
		sym("Zed", "Zed", "class", "", ""),
		sym("Alpha", "Alpha", "class", "", ""),
		sym("changed", "changed", "event", "", ""),
	}, Options{Policy: policy})

	var got []string
	for _, grp := range g.Nav {
		for _, it := range grp.Items {
			got = append(got, grp.Kind+":"+it.Longname)
		}
	}
	assert.Equal(t, []string{"class:Alpha", "class:Zed", "module:module:m", "namespace:ns"}, got)
	assert.True(t, policy.Excluded("event"))
}

func TestRunUnresolvedParentBecomesRoot(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("Foo", "Foo", "class", "", ""),
		sym("Nope#x", "x", "member", "Nope", "instance"),
	}, Options{})

	x := node(t, g, "Nope#x")
	assert.Nil(t, x.Parent)
	assert.Empty(t, x.SectionKey)
	assert.Equal(t, "x.html", x.Href)
	assert.True(t, x.HasPage())

	count := 0
	for _, r := range g.Roots {
		if r == x {
			count++
		}
	}
	assert.Equal(t, 1, count)
	for _, n := range g.Nodes {
		assert.NotContains(t, n.Children(), x)
	}
	require.Len(t, g.Diagnostics, 1)
	assert.Equal(t, CodeUnresolvedReference, g.Diagnostics[0].Code)
	assert.Equal(t, "Nope", g.Diagnostics[0].Ref)
}

func TestRunSelfReferenceIsNotAParent(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("Loop", "Loop", "class", "Loop", ""),
	}, Options{})

	loop := node(t, g, "Loop")
	assert.Nil(t, loop.Parent)
	assert.Equal(t, []*Node{loop}, g.Roots)
	assert.Equal(t, []DiagnosticCode{CodeUnresolvedReference}, codes(g.Diagnostics))
}

func TestRunAmbiguousNamePrefersKind(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("draw.Shape", "Shape", "class", "", ""),
		sym("geo.Shape", "Shape", "namespace", "", ""),
		sym("geo.Shape.area", "area", "function", "Shape", "static"),
	}, Options{})

	area := node(t, g, "geo.Shape.area")
	require.NotNil(t, area.Parent)
	assert.Equal(t, "geo.Shape", area.Parent.Longname)
	require.Len(t, g.Diagnostics, 2)
	assert.Equal(t, CodeSlugCollision, g.Diagnostics[0].Code)
	assert.Equal(t, CodeAmbiguousReference, g.Diagnostics[1].Code)
	assert.Contains(t, g.Diagnostics[1].Detail, "chose geo.Shape")
}

func TestRunReferenceCycleIsFatal(t *testing.T) {
	_, err := Run([]*doclet.Symbol{
		sym("A", "A", "class", "B", ""),
		sym("B", "B", "class", "A", ""),
	}, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReferenceCycle)
	assert.Equal(t, errors.CategoryGraph, errors.GetCategory(err))
	assert.Equal(t, errors.SeverityFatal, errors.GetSeverity(err))
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	cycle, _ := ce.Context().GetString("cycle")
	assert.Contains(t, cycle, "A -> B -> A")
}

func TestBuildRejectsUnfilteredInput(t *testing.T) {
	_, err := Build([]*doclet.Symbol{sym("", "x", "member", "", "")}, Options{})
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Build([]*doclet.Symbol{
		sym("Dup", "Dup", "class", "", ""),
		sym("Dup", "Dup", "class", "", ""),
	}, Options{})
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestRunNestedAnchorUsesPageOfParent(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("Foo", "Foo", "class", "", ""),
		sym("Foo#bar", "bar", "member", "Foo", "instance"),
		sym("Foo#bar.baz", "baz", "member", "Foo#bar", "static"),
	}, Options{})

	baz := node(t, g, "Foo#bar.baz")
	assert.Equal(t, "foo.html#symbol-foo-bar.baz", baz.Href)
	assert.Equal(t, "foo.html", baz.Page())
	assert.Equal(t, kinds.Members, baz.SectionKey)
	assert.Equal(t, 2, baz.Depth())
}

func TestRunDuplicateAnchorsAreKept(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("Foo", "Foo", "class", "", ""),
		sym("Foo#a-b", "a-b", "member", "Foo", "instance"),
		sym("Foo#a b", "a b", "member", "Foo", "instance"),
	}, Options{})

	first := node(t, g, "Foo#a b")
	second := node(t, g, "Foo#a-b")
	assert.Equal(t, "foo.html#symbol-foo-a-b", first.Href)
	assert.Equal(t, first.Href, second.Href)
	assert.Equal(t, []*Node{first, second}, node(t, g, "Foo").Bucket(kinds.InstanceMembers))

	owner, ok := g.AnchorIndex("foo.html#symbol-foo-a-b")
	require.True(t, ok)
	assert.Same(t, second, owner)
	assert.Contains(t, codes(g.Diagnostics), CodeDuplicateAnchor)
}

func TestRunSortsByPolicyThenName(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("zeta", "zeta", "function", "", ""),
		sym("Beta", "Beta", "class", "", ""),
		sym("module:z", "z", "module", "", ""),
		sym("Alpha", "Alpha", "class", "", ""),
		sym("alpha", "alpha", "function", "", ""),
	}, Options{})

	var got []string
	for _, r := range g.Roots {
		got = append(got, r.Longname)
	}
	// function is not ranked by default and sorts after every ranked kind.
	assert.Equal(t, []string{"module:z", "Alpha", "Beta", "alpha", "zeta"}, got)
}

func TestRunStandaloneHrefsAreUnique(t *testing.T) {
	var records []*doclet.Symbol
	for i := range 20 {
		records = append(records,
			sym(fmt.Sprintf("pkg%d.Item", i), "Item", "class", "", ""),
			sym(fmt.Sprintf("pkg%d.Item#run", i), "run", "function", fmt.Sprintf("pkg%d.Item", i), "instance"),
			sym(fmt.Sprintf("pkg%d.item", i), "item", "typedef", "", ""),
		)
	}
	g := mustRun(t, records, Options{})

	seen := map[string]string{}
	for _, n := range g.Nodes {
		if !n.HasPage() {
			require.NotNil(t, n.Parent)
			assert.Equal(t, n.Parent.Page()+"#"+n.Anchor, n.Href)
			continue
		}
		prev, dup := seen[n.Href]
		assert.False(t, dup, "%s shares %s with %s", n.Longname, n.Href, prev)
		seen[n.Href] = n.Longname
	}
	assert.Len(t, seen, 40)
}

func TestRunIsDeterministic(t *testing.T) {
	records := []*doclet.Symbol{
		sym("module:a", "a", "module", "", ""),
		sym("module:a.Util", "Util", "class", "module:a", ""),
		sym("module:b.Util", "Util", "class", "b", ""),
		sym("module:a.Util#x", "x", "member", "module:a.Util", "instance"),
		sym("module:a.Util.y", "y", "function", "module:a.Util", "static"),
		sym("Shape", "Shape", "interface", "", ""),
		sym("draw.Shape", "Shape", "class", "", ""),
		sym("draw.Shape#paint", "paint", "function", "Shape", "instance"),
		sym("orphan", "orphan", "member", "missing", ""),
	}
	snapshot := func() []string {
		g := mustRun(t, records, Options{})
		var out []string
		for _, n := range g.Nodes {
			parent := ""
			if n.Parent != nil {
				parent = n.Parent.Longname
			}
			out = append(out, fmt.Sprintf("%s|%s|%s|%s", n.Longname, n.Href, parent, n.SectionKey))
		}
		for _, r := range g.Roots {
			out = append(out, "root:"+r.Longname)
		}
		for _, grp := range g.Nav {
			for _, it := range grp.Items {
				out = append(out, "nav:"+grp.Kind+":"+it.Longname)
			}
		}
		for _, d := range g.Diagnostics {
			out = append(out, fmt.Sprintf("diag:%s:%s:%s", d.Code, d.Longname, d.Detail))
		}
		return out
	}
	assert.Equal(t, snapshot(), snapshot())
}

func TestRunPromoteModuleMembers(t *testing.T) {
	records := []*doclet.Symbol{
		sym("module:util", "util", "module", "", ""),
		sym("module:util.Helper", "Helper", "class", "module:util", ""),
	}

	plain := mustRun(t, records, Options{})
	require.Len(t, plain.Nav, 1)
	assert.Equal(t, kinds.Module, plain.Nav[0].Kind)

	promoted := mustRun(t, records, Options{Nav: NavOptions{PromoteModuleMembers: true}})
	require.Len(t, promoted.Nav, 2)
	assert.Equal(t, kinds.Class, promoted.Nav[1].Kind)
	assert.Equal(t, "module:util.Helper", promoted.Nav[1].Items[0].Longname)
}

func TestRunCustomExtension(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("Foo", "Foo", "class", "", ""),
		sym("Foo#bar", "bar", "member", "Foo", "instance"),
	}, Options{Extension: "htm"})

	assert.Equal(t, "foo.htm", node(t, g, "Foo").Href)
	assert.Equal(t, "foo.htm#symbol-foo-bar", g.LinkTo("Foo#bar"))
	assert.Equal(t, "", g.LinkTo("Missing"))
}

func TestFromRecordsFixture(t *testing.T) {
	raw, err := doclet.LoadFile("../doclet/testdata/doclets.json")
	require.NoError(t, err)

	g, filtered, err := FromRecords(raw, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Undocumented)

	counts := CountByCode(g.Diagnostics)
	assert.Equal(t, len(filtered.Malformed), counts[CodeMalformedRecord])
	assert.Equal(t, CodeMalformedRecord, g.Diagnostics[0].Code)

	person := node(t, g, "Person")
	assert.Len(t, person.Bucket(kinds.InstanceMethods), 2)
	assert.Len(t, person.Bucket(kinds.StaticMethods), 1)
	assert.Len(t, person.Bucket(kinds.InstanceMembers), 1)

	reload := node(t, g, "Person#reload")
	require.Len(t, reload.Params, 1)
	require.Len(t, reload.Params[0].Properties, 1)
	assert.Equal(t, "force", reload.Params[0].Properties[0].Name)

	capitalize := node(t, g, "module:util.capitalize")
	assert.Equal(t, "util.html#symbol-module-util.capitalize", capitalize.Href)

	byKind := g.ByKind()
	require.NotEmpty(t, byKind)
	assert.Equal(t, kinds.Module, byKind[0].Kind)
}

func TestRunReservedFilenames(t *testing.T) {
	g := mustRun(t, []*doclet.Symbol{
		sym("index", "index", "namespace", "", ""),
	}, Options{Reserved: []string{"index.html"}})

	assert.Equal(t, "index-2.html", node(t, g, "index").Href)
	assert.Equal(t, []DiagnosticCode{CodeSlugCollision}, codes(g.Diagnostics))
}
