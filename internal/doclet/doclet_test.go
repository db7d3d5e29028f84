package doclet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

func TestLoadFile_DecodesKnownFieldsAndExtra(t *testing.T) {
	records, err := LoadFile("testdata/doclets.json")
	require.NoError(t, err)
	require.Len(t, records, 10)

	person := records[0]
	assert.Equal(t, "Person", person.Longname)
	assert.Equal(t, "class", person.Kind)
	assert.Equal(t, "Represents a person.", person.Classdesc)
	require.NotNil(t, person.Meta)
	assert.Equal(t, 4, person.Meta.Lineno)
	require.Len(t, person.Params, 2)
	assert.True(t, person.Params[1].IsOptional())
	assert.Contains(t, person.Extra, "classdesc")
	assert.Contains(t, person.Extra, "meta")

	reload := records[4]
	assert.True(t, reload.Async)
	assert.True(t, reload.Params[0].HasDefault())
	assert.JSONEq(t, `"{}"`, string(reload.Params[0].DefaultValue))
	assert.JSONEq(t, `false`, string(reload.Params[1].DefaultValue))
}

func TestLoad_InvalidJSONIsInputError(t *testing.T) {
	_, err := Load(strings.NewReader(`{"not": "an array"}`))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryInput))
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json")
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	path, _ := ce.Context().GetString("path")
	assert.Equal(t, "testdata/does-not-exist.json", path)
}

func TestFilter(t *testing.T) {
	records, err := LoadFile("testdata/doclets.json")
	require.NoError(t, err)
	records = append(records, nil, &Symbol{Longname: "NoKind"})

	res := Filter(records)

	assert.Equal(t, 1, res.Undocumented)
	longnames := make([]string, 0, len(res.Kept))
	for _, k := range res.Kept {
		longnames = append(longnames, k.Longname)
	}
	assert.Equal(t, []string{
		"Person", "Person#greet", "Person.allHumans", "Person#id", "Person#reload",
		"module:util", "module:util.capitalize",
	}, longnames)

	reasons := make([]DropReason, 0, len(res.Malformed))
	for _, d := range res.Malformed {
		reasons = append(reasons, d.Reason)
	}
	assert.Equal(t, []DropReason{ReasonMissingLongname, ReasonDuplicateLongname, ReasonNilRecord, ReasonMissingKind}, reasons)
	assert.Equal(t, 9, res.Malformed[1].Index)
}

func TestDeprecation(t *testing.T) {
	assert.False(t, (&Symbol{}).IsDeprecated())
	assert.True(t, (&Symbol{Deprecated: true}).IsDeprecated())
	assert.False(t, (&Symbol{Deprecated: false}).IsDeprecated())
	s := &Symbol{Deprecated: "use bar"}
	assert.True(t, s.IsDeprecated())
	assert.Equal(t, "use bar", s.DeprecationNote())
}
