package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/metrics"
	"git.home.luguber.info/inful/symdoc/internal/preview"
	"git.home.luguber.info/inful/symdoc/internal/publish"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Input  string `short:"i" help:"Doclet JSON file (overrides input.path)"`
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
	Readme string `help:"Markdown file for the index page (overrides input.readme)"`
	Port   int    `short:"p" default:"8080" help:"HTTP port"`
	Watch  bool   `short:"w" help:"Rebuild when the input, README or config changes"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, baseDir, err := root.LoadConfig()
	if err != nil {
		return err
	}
	applyInputFlags(cfg, s.Input, s.Readme)
	if s.Output != "" {
		cfg.Output.Directory = absFlag(s.Output)
	}
	if cfg.Input.Path == "" {
		return errors.ConfigError("no input file configured (set input.path or pass --input)").Build()
	}
	if s.Watch && cfg.Input.Path == "-" {
		return errors.ValidationError("cannot watch standard input").Build()
	}

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	outDir := resolve(baseDir, cfg.Output.Directory)
	build := func(ctx context.Context) error {
		_, err := publish.New(cfg, publish.WithRecorder(recorder), publish.WithBaseDir(baseDir)).Run(ctx)
		return err
	}

	opts := preview.Options{Addr: fmt.Sprintf(":%d", s.Port), Registry: reg}
	if s.Watch {
		opts.WatchPaths = []string{resolve(baseDir, cfg.Input.Path)}
		if cfg.Input.Readme != "" {
			opts.WatchPaths = append(opts.WatchPaths, resolve(baseDir, cfg.Input.Readme))
		}
		if _, statErr := os.Stat(root.Config); statErr == nil {
			opts.WatchPaths = append(opts.WatchPaths, root.Config)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()
	_, _ = fmt.Fprintf(g.Out, "Serving %s on http://localhost:%d\n", outDir, s.Port)
	return preview.New(outDir, build, opts).Run(ctx)
}

func resolve(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
