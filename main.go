package main

import (
	"github.com/alecthomas/kong"

	"github.com/fluxreg/fluxreg/cmd"
	"github.com/fluxreg/fluxreg/model"
	"github.com/fluxreg/fluxreg/version"
)

// CLI is the flags-only command surface: one invocation either registers a
// feed or lists categories, then exits.
var CLI struct {
	model.Globals
	cmd.RegisterCmd
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fluxreg"),
		kong.Description("Register RSS/Atom feeds with a Miniflux server."),
		kong.UsageOnError(),
		kong.Vars{"version": version.GetVersion()},
	)
	ctx.FatalIfErrorf(CLI.Run(&CLI.Globals))
}
