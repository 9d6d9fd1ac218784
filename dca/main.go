package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/dcasim/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion; exits early when invoked by the shell.
	completion().Complete("dca")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	planFlags := map[string]complete.Predictor{
		"f":      predict.Files("*.toml"),
		"from":   predict.Something,
		"to":     predict.Something,
		"amount": predict.Something,
		"every":  predict.Set{"monthly", "weekly", "daily"},
		"day":    predict.Something,
	}
	withPlan := func(extra map[string]complete.Predictor) *complete.Command {
		flags := make(map[string]complete.Predictor, len(planFlags)+len(extra))
		for k, v := range planFlags {
			flags[k] = v
		}
		for k, v := range extra {
			flags[k] = v
		}
		return &complete.Command{Flags: flags}
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"simulate": withPlan(map[string]complete.Predictor{
				"n":         predict.Something,
				"lumpsum":   predict.Nothing,
				"inflation": predict.Nothing,
			}),
			"transactions": withPlan(nil),
			"development": withPlan(map[string]complete.Predictor{
				"n":      predict.Something,
				"symbol": predict.Something,
			}),
			"metrics":   withPlan(nil),
			"dividends": withPlan(nil),
			"chart": withPlan(map[string]complete.Predictor{
				"o":       predict.Files("*.png"),
				"lumpsum": predict.Nothing,
			}),
			"topic": {Args: predict.Set{"readme", "schedule", "currency", "metrics", "dividends", "comparison"}},
			"assist": withPlan(map[string]complete.Predictor{
				"q": predict.Something,
			}),
		},
	}
}
