package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/symdoc/internal/config"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/metrics"
	"git.home.luguber.info/inful/symdoc/internal/publish"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Input       string `short:"i" help:"Doclet JSON file, - for stdin (overrides input.path)"`
	Output      string `short:"o" help:"Output directory (overrides output.directory)"`
	Readme      string `help:"Markdown file for the index page (overrides input.readme)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics of the build to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, baseDir, err := root.LoadConfig()
	if err != nil {
		return err
	}
	b.apply(cfg)

	ctx, cancel := signalContext()
	defer cancel()
	return RunBuild(ctx, g.Out, cfg, baseDir, b.MetricsFile)
}

func (b *BuildCmd) apply(cfg *config.Config) {
	applyInputFlags(cfg, b.Input, b.Readme)
	if b.Output != "" {
		cfg.Output.Directory = absFlag(b.Output)
	}
}

// RunBuild publishes the site described by cfg and prints a summary to out.
func RunBuild(ctx context.Context, out io.Writer, cfg *config.Config, baseDir, metricsFile string) error {
	if cfg.Input.Path == "" {
		return errors.ConfigError("no input file configured (set input.path or pass --input)").Build()
	}

	reg := prom.NewRegistry()
	p := publish.New(cfg,
		publish.WithRecorder(metrics.NewPrometheusRecorder(reg)),
		publish.WithBaseDir(baseDir),
	)
	report, err := p.Run(ctx)
	printReport(out, report)

	if metricsFile != "" {
		if werr := metrics.WriteTextfile(reg, absFlag(metricsFile)); werr != nil && err == nil {
			err = errors.WrapError(werr, errors.CategoryFileSystem, "failed to write metrics file").
				WithContext("path", metricsFile).
				Build()
		}
	}
	return err
}

func printReport(out io.Writer, r *publish.BuildReport) {
	if r == nil {
		return
	}
	status := color.New(color.FgGreen, color.Bold)
	switch r.Outcome {
	case publish.OutcomeWarning:
		status = color.New(color.FgYellow, color.Bold)
	case publish.OutcomeFailed, publish.OutcomeCanceled:
		status = color.New(color.FgRed, color.Bold)
	}
	_, _ = status.Fprintf(out, "%s", r.Outcome)
	_, _ = fmt.Fprintf(out, " %s\n", r.Summary())
	for _, w := range r.Warnings {
		_, _ = color.New(color.FgYellow).Fprintf(out, "  warning: %v\n", w)
	}
	for _, bl := range r.BrokenLinks {
		_, _ = fmt.Fprintf(out, "  broken link %s -> %s (%s)\n", bl.Page, bl.URL, bl.Reason)
	}
}
