package commands

import (
	"context"
	"encoding/json"
	"os"

	"git.home.luguber.info/inful/symdoc/internal/config"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/publish"
)

// GraphCmd implements the 'graph' command.
type GraphCmd struct {
	Input  string `short:"i" help:"Doclet JSON file, - for stdin (overrides input.path)"`
	Output string `short:"o" help:"Write the table to this file instead of stdout"`
}

type nodeRow struct {
	Longname   string `json:"longname"`
	Kind       string `json:"kind"`
	Filename   string `json:"filename"`
	Href       string `json:"href"`
	Anchor     string `json:"anchor"`
	Parent     string `json:"parent,omitempty"`
	SectionKey string `json:"section_key,omitempty"`
}

type graphDump struct {
	Nodes       []nodeRow          `json:"nodes"`
	Roots       []string           `json:"roots"`
	Diagnostics []graph.Diagnostic `json:"diagnostics,omitempty"`
}

func (c *GraphCmd) Run(g *Global, root *CLI) error {
	cfg, baseDir, err := root.LoadConfig()
	if err != nil {
		return err
	}
	applyInputFlags(cfg, c.Input, "")

	ctx, cancel := signalContext()
	defer cancel()
	gr, err := loadGraph(ctx, cfg, baseDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(dumpGraph(gr), "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode graph").Build()
	}
	data = append(data, '\n')
	if c.Output == "" {
		_, err = g.Out.Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write graph").
			WithContext("path", c.Output).
			Build()
	}
	return nil
}

func dumpGraph(gr *graph.Graph) graphDump {
	out := graphDump{Nodes: make([]nodeRow, 0, len(gr.Nodes)), Roots: make([]string, 0, len(gr.Roots)), Diagnostics: gr.Diagnostics}
	for _, n := range gr.Nodes {
		row := nodeRow{
			Longname:   n.Longname,
			Kind:       n.Kind,
			Filename:   n.Filename,
			Href:       n.Href,
			Anchor:     n.Anchor,
			SectionKey: string(n.SectionKey),
		}
		if n.Parent != nil {
			row.Parent = n.Parent.Longname
		}
		out.Nodes = append(out.Nodes, row)
	}
	for _, r := range gr.Roots {
		out.Roots = append(out.Roots, r.Longname)
	}
	return out
}

func loadGraph(ctx context.Context, cfg *config.Config, baseDir string) (*graph.Graph, error) {
	if cfg.Input.Path == "" {
		return nil, errors.ConfigError("no input file configured (set input.path or pass --input)").Build()
	}
	gr, _, err := publish.New(cfg, publish.WithBaseDir(baseDir)).Graph(ctx)
	return gr, err
}
