package cmd

import (
	"context"
	"flag"

	"github.com/etnz/dcasim"
	"github.com/etnz/dcasim/renderer"
	"github.com/google/subcommands"
)

// developmentCmd holds the flags for the 'development' subcommand.
type developmentCmd struct {
	planFlags
	limit  int
	symbol string
}

func (*developmentCmd) Name() string     { return "development" }
func (*developmentCmd) Synopsis() string { return "day-by-day portfolio value of a simulation" }
func (*developmentCmd) Usage() string {
	return `dca development [-f <plan.toml>] [plan flags] [-n <rows>] [-symbol <symbol>] <symbol>...

  Runs the simulation and displays the day-by-day invested capital, market
  value, gain and return. By default the aggregated portfolio; -symbol
  restricts the table to one security.
`
}

func (c *developmentCmd) SetFlags(f *flag.FlagSet) {
	c.planFlags.SetFlags(f)
	f.IntVar(&c.limit, "n", 0, "Number of recent rows to display, 0 for all.")
	f.StringVar(&c.symbol, "symbol", "", "Show a single security instead of the aggregated portfolio.")
}

func (c *developmentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.Plan(f)
	if err != nil {
		return fail(err)
	}
	s, err := runPlan(plan)
	if err != nil {
		return fail(err)
	}
	if c.symbol != "" {
		printMarkdown(renderer.SymbolDevelopment(s.dev, dcasim.NormalizeSymbol(c.symbol), c.limit))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.Development(s.dev, c.limit))
	return subcommands.ExitSuccess
}
