package main

import (
	"log/slog"

	"git.home.luguber.info/inful/changelog/cmd/changelog/commands"
	"git.home.luguber.info/inful/changelog/internal/errors"
	"git.home.luguber.info/inful/changelog/internal/version"
	"github.com/alecthomas/kong"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("changelog"),
		kong.Description("Parse, lint, and edit changelogs in Keep a Changelog format."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	adapter := errors.NewCLIAdapter(cli.Verbose, slog.Default())
	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		adapter.HandleError(err)
	}
}
