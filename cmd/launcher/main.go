package main

import (
	"github.com/alecthomas/kong"

	"github.com/dead-hosts/launcher/cmd/launcher/commands"
	"github.com/dead-hosts/launcher/internal/version"
)

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("launcher"),
		kong.Description("Dead-Hosts infrastructure launcher: manages the administration file of a hosts-list monitoring project."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
