package publish

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/symdoc/internal/doclet"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
	"git.home.luguber.info/inful/symdoc/internal/render"
)

// ErrGraphWarnings marks a graph that was built but carries warning
// diagnostics.
var ErrGraphWarnings = stderrors.New("symbol graph has warnings")

func stageLoadDoclets(_ context.Context, bs *BuildState) error {
	path := bs.Config.Input.Path
	if path == "" {
		return errors.ConfigError("no doclet input configured (input.path or --input)").Build()
	}

	var (
		records []*doclet.Symbol
		err     error
	)
	if path == "-" && bs.Stdin != nil {
		records, err = doclet.Load(bs.Stdin)
	} else {
		records, err = doclet.LoadFile(bs.Path(path))
	}
	if err != nil {
		return err
	}

	bs.Records = records
	bs.Report.Counts.Records = len(records)
	slog.Info("Loaded doclets", logfields.Path(path), logfields.Count(len(records)))
	return nil
}

// GraphOptions derives the graph options from the configuration.
func GraphOptions(bs *BuildState) graph.Options {
	t := bs.Config.Templates
	return graph.Options{
		Policy:    kinds.NewPolicy(kinds.DefaultOrder, t.KindOrder, t.KindExclude),
		Extension: bs.Config.Output.Extension,
		Reserved:  []string{render.IndexFile, "index" + bs.Config.Output.Extension},
		Nav:       graph.NavOptions{PromoteModuleMembers: t.Nav.PromoteModuleMembers},
	}
}

func stageBuildGraph(_ context.Context, bs *BuildState) error {
	g, filtered, err := graph.FromRecords(bs.Records, GraphOptions(bs))
	bs.Filtered = filtered
	bs.Report.Counts.Kept = len(filtered.Kept)
	bs.Report.Counts.Undocumented = filtered.Undocumented
	bs.Report.Counts.Malformed = len(filtered.Malformed)
	if err != nil {
		return err
	}

	bs.Graph = g
	pages := len(g.Pages())
	bs.Report.Diagnostics = g.Diagnostics
	bs.Report.Counts.Nodes = len(g.Nodes)
	bs.Report.Counts.Roots = len(g.Roots)
	bs.Report.Counts.Pages = pages
	if bs.Recorder != nil {
		bs.Recorder.SetGraphSize(len(g.Nodes), pages)
		for code, n := range graph.CountByCode(g.Diagnostics) {
			bs.Recorder.AddDiagnostics(string(code), n)
		}
	}

	warnings := logDiagnostics(g.Diagnostics)
	slog.Info("Symbol graph built",
		logfields.Count(len(g.Nodes)),
		slog.Int("pages", pages),
		slog.Int("roots", len(g.Roots)),
		slog.Int("undocumented", filtered.Undocumented),
		slog.Int("diagnostics", len(g.Diagnostics)))

	if warnings > 0 {
		return NewWarnStageError(StageBuildGraph, fmt.Errorf("%w: %d of %d diagnostics", ErrGraphWarnings, warnings, len(g.Diagnostics)))
	}
	return nil
}

// logDiagnostics logs each diagnostic at its severity and returns the number
// of warnings.
func logDiagnostics(diags []graph.Diagnostic) int {
	warnings := 0
	for _, d := range diags {
		attrs := []any{logfields.Code(string(d.Code)), logfields.Longname(d.Longname)}
		if d.Ref != "" {
			attrs = append(attrs, logfields.Ref(d.Ref))
		}
		if d.Detail != "" {
			attrs = append(attrs, slog.String("detail", d.Detail))
		}
		if d.Severity() == errors.SeverityWarning {
			warnings++
			slog.Warn("Symbol diagnostic", attrs...)
		} else {
			slog.Debug("Symbol diagnostic", attrs...)
		}
	}
	return warnings
}
