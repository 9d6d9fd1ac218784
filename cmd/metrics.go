package cmd

import (
	"context"
	"flag"

	"github.com/etnz/dcasim"
	"github.com/etnz/dcasim/renderer"
	"github.com/google/subcommands"
)

// metricsCmd holds the flags for the 'metrics' subcommand.
type metricsCmd struct {
	planFlags
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "fixed-window performance of a simulation" }
func (*metricsCmd) Usage() string {
	return `dca metrics [-f <plan.toml>] [plan flags] <symbol>...

  Runs the simulation and displays the portfolio performance over the fixed
  trailing windows (1D, 1W, 1M, 6M, YTD, 1Y, 5Y, MAX). Windows the history is
  too short for show a dash.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	c.planFlags.SetFlags(f)
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.Plan(f)
	if err != nil {
		return fail(err)
	}
	s, err := runPlan(plan)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Metrics(dcasim.Metrics(s.dev.Overall())))
	return subcommands.ExitSuccess
}
