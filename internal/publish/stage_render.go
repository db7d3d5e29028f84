package publish

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/symdoc/internal/config"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/git"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
	"git.home.luguber.info/inful/symdoc/internal/render"
)

// Asset subdirectories for user supplied files.
const (
	scriptsDir = "scripts"
	stylesDir  = "styles"
)

// stageAssets copies the static files, stages user scripts and stylesheets
// and binds a renderer to the graph.
func stageAssets(_ context.Context, bs *BuildState) error {
	out := bs.OutputDir()
	t := bs.Config.Templates

	written, err := render.CopyStatic(out)
	if err != nil {
		return err
	}
	if bs.JavaScripts, err = render.StageAssets(t.JavaScripts, scriptsDir, bs.BaseDir, out); err != nil {
		return err
	}
	if bs.Stylesheets, err = render.StageAssets(t.Stylesheets, stylesDir, bs.BaseDir, out); err != nil {
		return err
	}
	bs.Revision = resolveRevision(bs)

	r, err := render.New(render.Options{
		SiteTitle:         t.Title,
		ShowKindIcons:     t.ShowKindIcons,
		TemplatesDir:      bs.Path(t.Templates),
		HighlightStyle:    t.HighlightStyle,
		CompactWhitespace: bs.Config.Render.CompactWhitespace,
		Revision:          bs.Revision,
		JavaScripts:       bs.JavaScripts,
		Stylesheets:       bs.Stylesheets,
	})
	if err != nil {
		return err
	}
	if err := r.WriteHighlightCSS(out); err != nil {
		return err
	}
	site, err := r.Bind(bs.Graph)
	if err != nil {
		return err
	}
	bs.Renderer, bs.Site = r, site
	bs.Report.Revision = bs.Revision
	bs.Report.Counts.Assets = len(written) + 1 + staged(t.JavaScripts, bs.JavaScripts) + staged(t.Stylesheets, bs.Stylesheets)
	return nil
}

// staged counts entries StageAssets replaced with a copied file.
func staged(before, after []string) int {
	n := 0
	for i := range after {
		if after[i] != before[i] {
			n++
		}
	}
	return n
}

// resolveRevision turns templates.source_revision into the footer text.
func resolveRevision(bs *BuildState) string {
	switch rev := bs.Config.Templates.SourceRevision; rev {
	case "", config.SourceRevisionNone:
		return ""
	case config.SourceRevisionAuto:
		dir := bs.BaseDir
		if in := bs.Config.Input.Path; in != "" && in != "-" {
			dir = filepath.Dir(bs.Path(in))
		}
		r, err := git.ReadRevision(dir)
		if err != nil {
			slog.Debug("Source revision unavailable", logfields.Path(dir), logfields.Error(err))
			return ""
		}
		return r.Short()
	default:
		return rev
	}
}

func (bs *BuildState) writer() *render.Writer {
	w := render.NewWriter(bs.OutputDir(), bs.Config.Render.Concurrency)
	if bs.Recorder != nil {
		w.OnWrite = bs.Recorder.IncPageWrite
	}
	return w
}

// stageRenderIndex writes the landing page. A configured README that cannot
// be read or parsed downgrades to a warning and the index is written
// without it.
func stageRenderIndex(_ context.Context, bs *BuildState) error {
	content, readmeErr := render.LoadReadme(bs.Path(bs.Config.Input.Readme))
	if readmeErr != nil {
		content = render.IndexContent{}
	}

	page, err := bs.Site.RenderIndex(content)
	if err != nil {
		return err
	}
	skipped, err := bs.writer().Write(render.IndexFile, page)
	if err != nil {
		return err
	}
	bs.countWrite(skipped)

	if readmeErr != nil {
		if ce, ok := errors.AsClassified(readmeErr); ok && ce.Category() == errors.CategoryInput {
			return NewWarnStageError(StageRenderIndex, readmeErr)
		}
		return readmeErr
	}
	return nil
}

func (bs *BuildState) countWrite(skipped bool) {
	if skipped {
		bs.Report.Counts.PagesUnchanged++
	} else {
		bs.Report.Counts.PagesWritten++
	}
}

func stageRenderPages(ctx context.Context, bs *BuildState) error {
	stats, err := bs.Site.RenderPages(ctx, bs.writer())
	bs.Report.Counts.PagesWritten += stats.Written
	bs.Report.Counts.PagesUnchanged += stats.Unchanged
	if err != nil {
		return err
	}
	slog.Info("Pages rendered",
		slog.Int("written", stats.Written),
		slog.Int("unchanged", stats.Unchanged),
		logfields.Path(bs.OutputDir()))
	return nil
}
