package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Equity   EquityCmd        `cmd:"" help:"Estimate hero equity against a hand or range"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate the best five card hand"`
	Range    RangeCmd         `cmd:"" help:"Expand range shorthand into hand classes"`
	Practice PracticeCmd      `cmd:"" help:"Play practice hands against bots"`
	Serve    ServeCmd         `cmd:"" help:"Serve the analysis tools over HTTP"`
	History  HistoryCmd       `cmd:"" help:"Inspect recorded hand histories"`
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem-trainer"),
		kong.Description("Texas Hold'em practice table and equity tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":        version,
			"default_config": defaultConfig,
		},
	)

	env, err := cli.Setup(os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)
	defer env.Close()

	err = ctx.Run(env)
	ctx.FatalIfErrorf(err)
}
