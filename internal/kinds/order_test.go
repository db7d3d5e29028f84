package kinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrder(t *testing.T) {
	t.Run("defaults verbatim when no override", func(t *testing.T) {
		assert.Equal(t, DefaultOrder, ResolveOrder(DefaultOrder, nil, nil))
		assert.Equal(t, DefaultOrder, ResolveOrder(DefaultOrder, []string{}, nil))
	})

	t.Run("user order first then remaining defaults, plural exclusion", func(t *testing.T) {
		got := ResolveOrder(DefaultOrder, []string{"class", "module"}, []string{"events"})
		require.Equal(t, []string{"class", "module"}, got[:2])
		assert.NotContains(t, got, "event")
		assert.Equal(t, []string{"class", "module", "interface", "mixin", "namespace", "method", "member", "typedef", "enum"}, got)
	})

	t.Run("user order deduplicated first occurrence wins", func(t *testing.T) {
		got := ResolveOrder([]string{"a", "b", "c"}, []string{"c", "a", "c", " A "}, nil)
		assert.Equal(t, []string{"c", "a", "b"}, got)
	})

	t.Run("user order may introduce unknown kinds", func(t *testing.T) {
		got := ResolveOrder([]string{"module"}, []string{"function"}, nil)
		assert.Equal(t, []string{"function", "module"}, got)
	})

	t.Run("singular exclusion and class exclusion", func(t *testing.T) {
		got := ResolveOrder(DefaultOrder, nil, []string{"classes", "typedef"})
		assert.NotContains(t, got, "class")
		assert.NotContains(t, got, "typedef")
		assert.Contains(t, got, "module")
	})

	t.Run("default slice is not mutated", func(t *testing.T) {
		def := []string{"module", "event"}
		_ = ResolveOrder(def, nil, []string{"event"})
		assert.Equal(t, []string{"module", "event"}, def)
	})
}

func TestPolicy(t *testing.T) {
	p := NewPolicy(DefaultOrder, []string{"class", "module"}, []string{"events"})

	r, ok := p.Rank("class")
	require.True(t, ok)
	assert.Equal(t, 0, r)
	_, ok = p.Rank("event")
	assert.False(t, ok)
	assert.True(t, p.Excluded("event"))
	assert.False(t, p.Excluded("class"))

	assert.Negative(t, p.Compare("class", "module"))
	assert.Positive(t, p.Compare("function", "member"), "unranked sorts after ranked")
	assert.Zero(t, p.Compare("function", "event"), "unranked kinds tie")

	order := p.Order()
	order[0] = "mutated"
	assert.Equal(t, "class", p.Order()[0])
}
