package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/linkverify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Dir      string `arg:"" optional:"" help:"Site directory (defaults to output.directory)"`
	External bool   `help:"Also request external http(s) links"`
	JSON     bool   `help:"Print the result as JSON"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, baseDir, err := root.LoadConfig()
	if err != nil {
		return err
	}
	dir := resolve(baseDir, cfg.Output.Directory)
	if v.Dir != "" {
		dir = absFlag(v.Dir)
	}

	ctx, cancel := signalContext()
	defer cancel()
	res, err := linkverify.New(dir, linkverify.Options{
		Concurrency: cfg.Render.Concurrency,
		External:    v.External || cfg.Verify.External,
	}).Verify(ctx)
	if err != nil {
		return err
	}

	if v.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		for _, bl := range res.Broken {
			_, _ = color.New(color.FgRed).Fprintf(g.Out, "%s", bl.Page)
			_, _ = fmt.Fprintf(g.Out, " -> %s: %s\n", bl.URL, bl.Reason)
		}
		_, _ = fmt.Fprintf(g.Out, "%d pages, %d links checked, %d broken\n", res.Pages, res.Checked, len(res.Broken))
	}

	if !res.OK() {
		return errors.ValidationError("broken links found").
			WithContext("count", len(res.Broken)).
			WithContext("dir", dir).
			Build()
	}
	return nil
}
