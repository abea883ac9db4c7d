package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Server      ServerCmd        `cmd:"" help:"Run the bidding practice server"`
	Deals       DealsCmd         `cmd:"" help:"Inspect a PBN deal file"`
	Conventions ConventionsCmd   `cmd:"" help:"Validate a convention rule file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bidpractice"),
		kong.Description("Contract bridge bidding practice server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
