package publish

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/symdoc/internal/linkverify"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
)

// ErrBrokenLinks is wrapped by the verify_links stage when links are broken.
var ErrBrokenLinks = stderrors.New("broken links")

func stageVerifyLinks(ctx context.Context, bs *BuildState) error {
	v := linkverify.New(bs.OutputDir(), linkverify.Options{
		Concurrency: bs.Config.Render.Concurrency,
		External:    bs.Config.Verify.External,
	})
	res, err := v.Verify(ctx)
	if err != nil {
		return err
	}

	bs.Report.Counts.LinksChecked = res.Checked
	bs.Report.Counts.BrokenLinks = len(res.Broken)
	bs.Report.BrokenLinks = res.Broken
	if bs.Recorder != nil {
		bs.Recorder.AddBrokenLinks(len(res.Broken))
	}
	slog.Info("Links verified", slog.Int("pages", res.Pages), slog.Int("checked", res.Checked), logfields.Count(len(res.Broken)))

	if res.OK() {
		return nil
	}
	err = fmt.Errorf("%w: %d of %d checked links", ErrBrokenLinks, len(res.Broken), res.Checked)
	if bs.Config.Verify.FailOnBroken {
		return NewFatalStageError(StageVerifyLinks, err)
	}
	return NewWarnStageError(StageVerifyLinks, err)
}

func stageWriteReport(_ context.Context, bs *BuildState) error {
	path := bs.Path(bs.Config.Output.ReportFile)
	if err := bs.Report.Persist(path); err != nil {
		return err
	}
	slog.Info("Build report written", logfields.Path(path), logfields.BuildID(bs.Report.BuildID))
	return nil
}
