package doclet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestConsolidateParams_MergesIntoExistingRoot(t *testing.T) {
	in := []*Param{
		{Name: "employee", Type: &TypeSpec{Names: []string{"Object"}}},
		{Name: "employee.name", Type: &TypeSpec{Names: []string{"string"}}, Description: "The name."},
		{Name: "employee.department", Optional: boolPtr(true), DefaultValue: json.RawMessage(`"sales"`)},
		{Name: "callback"},
	}

	out := ConsolidateParams(in)

	require.Len(t, out, 2)
	assert.Equal(t, "employee", out[0].Name)
	assert.Equal(t, "callback", out[1].Name)
	require.Len(t, out[0].Properties, 2)
	assert.Equal(t, "name", out[0].Properties[0].Name)
	assert.Equal(t, "The name.", out[0].Properties[0].Description)
	assert.True(t, out[0].Properties[1].IsOptional())
	assert.JSONEq(t, `"sales"`, string(out[0].Properties[1].DefaultValue))

	assert.Empty(t, in[0].Properties, "input params must not be mutated")
}

func TestConsolidateParams_SynthesizesMissingRoot(t *testing.T) {
	out := ConsolidateParams([]*Param{
		{Name: "a"},
		{Name: "details.location.city", Type: &TypeSpec{Names: []string{"string"}}},
		{Name: "details.location.zip"},
	})

	require.Len(t, out, 2)
	details := out[1]
	assert.Equal(t, "details", details.Name)
	assert.Equal(t, []string{"Object"}, details.Type.Names)
	require.Len(t, details.Properties, 1)
	location := details.Properties[0]
	assert.Equal(t, "location", location.Name)
	assert.Nil(t, location.Type, "intermediate segments carry no attributes")
	require.Len(t, location.Properties, 2)
	assert.Equal(t, "city", location.Properties[0].Name)
	assert.Equal(t, []string{"string"}, location.Properties[0].Type.Names)
	assert.Equal(t, "zip", location.Properties[1].Name)
}

func TestConsolidateParams_EdgeCases(t *testing.T) {
	assert.Nil(t, ConsolidateParams(nil))

	out := ConsolidateParams([]*Param{nil, {Name: "...rest", Variable: true}})
	require.Len(t, out, 1)
	assert.Equal(t, "...rest", out[0].Name)
}
