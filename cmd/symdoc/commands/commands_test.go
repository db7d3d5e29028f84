package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/symdoc/internal/config"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

const fixture = "../../../internal/doclet/testdata/doclets.json"

// run parses args like main does and returns what the command printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("symdoc"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	var out bytes.Buffer
	err = ctx.Run(&Global{Out: &out}, &cli)
	return out.String(), err
}

func absFixture(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(fixture)
	require.NoError(t, err)
	return p
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "site")
	metricsFile := filepath.Join(dir, "build.prom")

	stdout, err := run(t, "--config", filepath.Join(dir, config.DefaultFile),
		"build", "-i", absFixture(t), "-o", out, "--metrics-file", metricsFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "warning")
	for _, name := range []string{"index.html", "person.html", "util.html"} {
		assert.FileExists(t, filepath.Join(out, name))
	}
	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_writes_total")
}

func TestBuildCommandUsesConfigDirectory(t *testing.T) {
	dir := t.TempDir()
	input, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doclets.json"), input, 0o600))
	cfgPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input:\n  path: doclets.json\noutput:\n  directory: public\n"), 0o600))

	_, err = run(t, "--config", cfgPath, "build")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "public", "index.html"))
}

func TestBuildCommandRequiresInput(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "--config", filepath.Join(dir, config.DefaultFile), "build")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryConfig, errors.GetCategory(err))
}

func TestExplicitMissingConfigFails(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "other.yaml"), "nav")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
}

func TestNavCommandJSON(t *testing.T) {
	dir := t.TempDir()
	stdout, err := run(t, "--config", filepath.Join(dir, config.DefaultFile), "nav", "-i", absFixture(t), "--json")
	require.NoError(t, err)

	var groups []navGroup
	require.NoError(t, json.Unmarshal([]byte(stdout), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "module", groups[0].Kind)
	assert.Equal(t, "Modules", groups[0].Label)
	assert.Equal(t, "module:util", groups[0].Items[0].Longname)
	assert.Equal(t, "class", groups[1].Kind)
	person := groups[1].Items[0]
	assert.Equal(t, "Person", person.Longname)
	assert.Equal(t, "person.html", person.Href)
	assert.NotEmpty(t, person.Children)
	for _, c := range person.Children {
		assert.Empty(t, c.Children, "depth 1 stops below direct members")
	}
}

func TestNavCommandTree(t *testing.T) {
	dir := t.TempDir()
	stdout, err := run(t, "--config", filepath.Join(dir, config.DefaultFile), "nav", "-i", absFixture(t), "-d", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Modules\n")
	assert.Contains(t, stdout, "Classes\n")
	assert.Contains(t, stdout, "  Person (class) person.html\n")
	assert.NotContains(t, stdout, "greet")
}

func TestGraphCommand(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "graph.json")
	_, err := run(t, "--config", filepath.Join(dir, config.DefaultFile), "graph", "-i", absFixture(t), "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var dump graphDump
	require.NoError(t, json.Unmarshal(data, &dump))
	assert.Len(t, dump.Nodes, 7)
	assert.ElementsMatch(t, []string{"Person", "module:util"}, dump.Roots)

	rows := make(map[string]nodeRow, len(dump.Nodes))
	for _, r := range dump.Nodes {
		rows[r.Longname] = r
	}
	greet := rows["Person#greet"]
	assert.Equal(t, "Person", greet.Parent)
	assert.Equal(t, "person.html#"+greet.Anchor, greet.Href)
	assert.NotEmpty(t, greet.SectionKey)
	assert.Empty(t, rows["Person"].Parent)
	assert.NotEmpty(t, dump.Diagnostics)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.DefaultFile)

	stdout, err := run(t, "--config", cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, cfgPath)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "doclets.json", cfg.Input.Path)

	_, err = run(t, "--config", cfgPath, "init")
	require.Error(t, err, "existing file needs --force")
	_, err = run(t, "--config", cfgPath, "init", "--force")
	require.NoError(t, err)

	other := t.TempDir()
	_, err = run(t, "init", "-o", other)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(other, config.DefaultFile))
}

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(site, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte(`<a href="a.html#x">a</a>`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(site, "a.html"), []byte(`<h1 id="x">A</h1><a href="index.html">home</a>`), 0o600))
	cfgArg := filepath.Join(dir, config.DefaultFile)

	stdout, err := run(t, "--config", cfgArg, "verify", site)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 pages, 2 links checked, 0 broken")

	require.NoError(t, os.WriteFile(filepath.Join(site, "a.html"), []byte(`<a href="gone.html">x</a>`), 0o600))
	stdout, err = run(t, "--config", cfgArg, "verify", site, "--json")
	require.Error(t, err)
	assert.Equal(t, errors.CategoryValidation, errors.GetCategory(err))
	assert.Equal(t, 2, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	assert.Contains(t, stdout, `"url": "gone.html"`)
}

func TestNewLoggerHonoursVerboseAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false, config.LogLevelWarn, config.LogFormatJSON)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	newLogger(&buf, true, config.LogLevelError, config.LogFormatText).Debug("debugging")
	assert.Contains(t, buf.String(), "msg=debugging")
}
