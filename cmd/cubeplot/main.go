package main

import (
	"os"

	"github.com/akasprzok/cubeplot/internal/commands"
	"github.com/alecthomas/kong"
)

func main() {
	ctx := kong.Parse(&commands.Cli,
		kong.Name("cubeplot"),
		kong.Description("Render, browse and export the quick-commerce analytics dashboard."),
		kong.UsageOnError(),
	)
	cmdCtx, err := commands.NewContext(commands.Cli.Globals, os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)
	// Call the Run() method of the selected parsed command.
	err = ctx.Run(cmdCtx)
	ctx.FatalIfErrorf(err)
}
