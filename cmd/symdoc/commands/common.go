// Package commands implements the symdoc subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/symdoc/internal/config"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"symdoc.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Build the documentation site"`
	Nav    NavCmd    `cmd:"" help:"Print the top-level navigation"`
	Graph  GraphCmd  `cmd:"" help:"Dump the symbol graph as JSON"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
	Serve  ServeCmd  `cmd:"" help:"Build, serve and optionally watch the site"`
	Verify VerifyCmd `cmd:"" help:"Check the links of a generated site"`
}

// AfterApply runs after flag parsing and installs the initial logger. The
// configured level and format replace it once the config is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.LogLevelInfo
	if env := os.Getenv(config.EnvLogLevel); env != "" {
		level = config.NormalizeLogLevel(env)
	}
	setupLogging(c.Verbose, level, config.LogFormatText)
	return nil
}

func setupLogging(verbose bool, level config.LogLevel, format config.LogFormat) {
	slog.SetDefault(newLogger(os.Stderr, verbose, level, format))
}

func newLogger(w io.Writer, verbose bool, level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LoadConfig loads the configuration file, or the defaults when the default
// file is absent, and applies its logging settings. It also returns the
// directory relative configured paths resolve against.
func (c *CLI) LoadConfig() (*config.Config, string, error) {
	explicit := filepath.Base(c.Config) != config.DefaultFile
	cfg, err := config.LoadOrDefault(c.Config, explicit)
	if err != nil {
		return nil, "", err
	}
	setupLogging(c.Verbose, cfg.Logging.Level, cfg.Logging.Format)

	baseDir := "."
	if _, statErr := os.Stat(c.Config); statErr == nil {
		baseDir = filepath.Dir(c.Config)
	}
	return cfg, baseDir, nil
}

// absFlag makes a command line path independent of the config directory.
func absFlag(p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// applyInputFlags overrides the configured input with command line values.
func applyInputFlags(cfg *config.Config, input, readme string) {
	if input != "" {
		cfg.Input.Path = absFlag(input)
	}
	if readme != "" {
		cfg.Input.Readme = absFlag(readme)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
