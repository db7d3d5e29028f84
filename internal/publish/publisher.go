package publish

import (
	"context"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/symdoc/internal/config"
	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
	"git.home.luguber.info/inful/symdoc/internal/metrics"
)

// Publisher runs the publish pipeline for one configuration.
type Publisher struct {
	cfg      *config.Config
	baseDir  string
	stdin    io.Reader
	recorder metrics.Recorder
}

// Option customizes a Publisher.
type Option func(*Publisher)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Publisher) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithBaseDir resolves relative configured paths against dir.
func WithBaseDir(dir string) Option {
	return func(p *Publisher) { p.baseDir = dir }
}

// WithStdin sets the reader used for input path "-".
func WithStdin(r io.Reader) Option {
	return func(p *Publisher) { p.stdin = r }
}

// New returns a Publisher for cfg.
func New(cfg *config.Config, opts ...Option) *Publisher {
	p := &Publisher{cfg: cfg, baseDir: ".", stdin: os.Stdin, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) newState() *BuildState {
	report := NewBuildReport()
	report.Input = p.cfg.Input.Path
	report.Output = p.cfg.Output.Directory
	return &BuildState{
		Config:   p.cfg,
		BaseDir:  p.baseDir,
		Stdin:    p.stdin,
		Recorder: p.recorder,
		Report:   report,
	}
}

// Pipeline returns the stages of a full run.
func (p *Publisher) Pipeline() *Pipeline {
	return NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageLoadDoclets, stageLoadDoclets).
		Add(StageBuildGraph, stageBuildGraph).
		Add(StageAssets, stageAssets).
		Add(StageRenderIndex, stageRenderIndex).
		Add(StageRenderPages, stageRenderPages).
		AddIf(p.cfg.Verify.Enabled, StageVerifyLinks, stageVerifyLinks)
}

// Run executes the full pipeline. The report is returned even when the run
// fails; when a report file is configured it is written in either case.
func (p *Publisher) Run(ctx context.Context) (*BuildReport, error) {
	bs := p.newState()
	slog.Info("Publish started", logfields.BuildID(bs.Report.BuildID), logfields.Path(p.cfg.Output.Directory))

	err := RunStages(ctx, bs, p.Pipeline().Build())
	bs.Report.Finish()

	if p.cfg.Output.ReportFile != "" {
		// The report is written after a failure too, so cancellation is ignored.
		if werr := RunStages(context.WithoutCancel(ctx), bs, []StageDef{{Name: StageWriteReport, Fn: stageWriteReport}}); werr != nil && err == nil {
			err = werr
		}
		bs.Report.Finish()
	}

	p.recorder.ObserveBuildDuration(bs.Report.Duration())
	p.recorder.IncBuildOutcome(bs.Report.Outcome.label())

	level := slog.LevelInfo
	if bs.Report.Outcome == OutcomeFailed || bs.Report.Outcome == OutcomeCanceled {
		level = slog.LevelError
	}
	slog.Log(ctx, level, "Publish finished",
		logfields.BuildID(bs.Report.BuildID),
		logfields.Outcome(string(bs.Report.Outcome)),
		slog.String("summary", bs.Report.Summary()))
	return bs.Report, err
}

// Graph loads the doclets and builds the graph without rendering anything.
func (p *Publisher) Graph(ctx context.Context) (*graph.Graph, *BuildReport, error) {
	bs := p.newState()
	err := RunStages(ctx, bs, NewPipeline().
		Add(StageLoadDoclets, stageLoadDoclets).
		Add(StageBuildGraph, stageBuildGraph).
		Build())
	bs.Report.Finish()
	if err != nil {
		return nil, bs.Report, err
	}
	return bs.Graph, bs.Report, nil
}
