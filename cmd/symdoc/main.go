package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/symdoc/cmd/symdoc/commands"
	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("symdoc"),
		kong.Description("Generate linked HTML API documentation from doclet records."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(&commands.Global{Out: os.Stdout}, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
