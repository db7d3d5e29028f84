package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/symdoc/internal/graph"
	"git.home.luguber.info/inful/symdoc/internal/kinds"
)

// NavCmd implements the 'nav' command.
type NavCmd struct {
	Input string `short:"i" help:"Doclet JSON file, - for stdin (overrides input.path)"`
	JSON  bool   `help:"Print the navigation as JSON"`
	Depth int    `short:"d" default:"1" help:"Levels of members printed below each entry (0 for none)"`
}

type navItem struct {
	Longname string    `json:"longname"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Href     string    `json:"href"`
	Children []navItem `json:"children,omitempty"`
}

type navGroup struct {
	Kind  string    `json:"kind"`
	Label string    `json:"label"`
	Items []navItem `json:"items"`
}

func (n *NavCmd) Run(g *Global, root *CLI) error {
	cfg, baseDir, err := root.LoadConfig()
	if err != nil {
		return err
	}
	applyInputFlags(cfg, n.Input, "")

	ctx, cancel := signalContext()
	defer cancel()
	gr, err := loadGraph(ctx, cfg, baseDir)
	if err != nil {
		return err
	}

	groups := navGroups(gr, n.Depth)
	if n.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}
	printNav(g.Out, groups)
	return nil
}

func navGroups(gr *graph.Graph, depth int) []navGroup {
	groups := make([]navGroup, 0, len(gr.Nav))
	for _, grp := range gr.Nav {
		out := navGroup{
			Kind:  grp.Kind,
			Label: kinds.Label(grp.Kind, kinds.LabelOptions{Plural: true, Title: true}),
			Items: make([]navItem, 0, len(grp.Items)),
		}
		for _, node := range grp.Items {
			out.Items = append(out.Items, toNavItem(node, depth))
		}
		groups = append(groups, out)
	}
	return groups
}

func toNavItem(node *graph.Node, depth int) navItem {
	item := navItem{Longname: node.Longname, Name: node.DisplayName(), Kind: node.Kind, Href: node.Href}
	if depth > 0 {
		for _, child := range node.Children() {
			item.Children = append(item.Children, toNavItem(child, depth-1))
		}
	}
	return item
}

func printNav(out io.Writer, groups []navGroup) {
	heading := color.New(color.FgCyan, color.Bold)
	kind := color.New(color.FgHiBlack)
	var walk func(items []navItem, indent int)
	walk = func(items []navItem, indent int) {
		for _, it := range items {
			_, _ = fmt.Fprintf(out, "%s%s ", strings.Repeat("  ", indent), it.Name)
			_, _ = kind.Fprintf(out, "(%s) %s", it.Kind, it.Href)
			_, _ = fmt.Fprintln(out)
			walk(it.Children, indent+1)
		}
	}
	for _, grp := range groups {
		_, _ = heading.Fprintln(out, grp.Label)
		walk(grp.Items, 1)
	}
}
