package publish

import (
	"io"
	"path/filepath"

	"git.home.luguber.info/inful/symdoc/internal/config"
	"git.home.luguber.info/inful/symdoc/internal/doclet"
	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/metrics"
	"git.home.luguber.info/inful/symdoc/internal/render"
)

// BuildState is the mutable state shared by the stages of one run.
type BuildState struct {
	Config   *config.Config
	BaseDir  string
	Stdin    io.Reader
	Recorder metrics.Recorder
	Report   *BuildReport

	Records  []*doclet.Symbol
	Filtered doclet.FilterResult
	Graph    *graph.Graph
	Renderer *render.Renderer
	Site     *render.Site
	Revision string

	// Staged asset references as they appear in the pages.
	JavaScripts []string
	Stylesheets []string
}

// Path resolves p against the state's base directory unless it is absolute.
func (bs *BuildState) Path(p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(bs.BaseDir, p)
}

// OutputDir is the resolved output directory.
func (bs *BuildState) OutputDir() string { return bs.Path(bs.Config.Output.Directory) }
