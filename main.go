package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/framestack/cmd"
	"github.com/lepinkainen/framestack/config"
	"github.com/lepinkainen/framestack/logging"
	"github.com/lepinkainen/framestack/types"
)

var Version = "dev"

type CLI struct {
	LogLevel string           `name:"log-level" help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"info"`
	Config   kong.ConfigFlag  `help:"Load flag defaults from this TOML file"`
	Version  kong.VersionFlag `help:"Print version and exit"`

	Load    cmd.LoadCmd    `cmd:"" help:"Load a folder of frames into a normalized [3, N, size, size] stack"`
	Inspect cmd.InspectCmd `cmd:"" help:"List frames in load order and flag frozen frames"`
	Stats   cmd.StatsCmd   `cmd:"" help:"Show shape and channel statistics of an exported stack"`
	Watch   cmd.WatchCmd   `cmd:"" help:"Re-export a frame folder whenever its frames change"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("framestack"),
		kong.Description("Load video frame folders into model-ready tensor stacks."),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli, kong.Configuration(config.Loader, config.SearchPaths()...))
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	appCtx := &types.AppContext{
		Version: Version,
		Logger:  logging.New(cli.LogLevel, os.Stderr),
	}
	err = ctx.Run(appCtx)
	ctx.FatalIfErrorf(err)
}
