package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/dcasim"
	"github.com/etnz/dcasim/renderer"
	"github.com/google/subcommands"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	planFlags
	limit     int
	lumpSum   bool
	inflation bool
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run a periodic investment simulation" }
func (*simulateCmd) Usage() string {
	return `dca simulate [-f <plan.toml>] [-from <date>] [-to <date>] [-amount <money>] [-every <frequency>] [-day <1-28>] <symbol>...

  Simulates investing a fixed amount in each symbol on a schedule, and reports
  the transactions, the value development and the performance windows.

Usage Examples:
# 100 USD in two ETFs on the 15th of every month, over the last five years.
$ dca simulate -amount 100USD -day 15 VTI VXUS
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	c.planFlags.SetFlags(f)
	f.IntVar(&c.limit, "n", 10, "Number of recent development rows to display, 0 for all.")
	f.BoolVar(&c.lumpSum, "lumpsum", false, "Compare against investing the whole capital on day one.")
	f.BoolVar(&c.inflation, "inflation", false, "Show the inflation-adjusted buying power of the invested capital.")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.Plan(f)
	if err != nil {
		return fail(err)
	}
	s, err := runPlan(plan)
	if err != nil {
		return fail(err)
	}

	var md strings.Builder
	md.WriteString(renderer.Simulation(s.result))
	md.WriteString(renderer.Positions(s.dev, s.result.Ledger.Securities()))
	md.WriteString(renderer.Development(s.dev, c.limit))
	md.WriteString(renderer.Metrics(dcasim.Metrics(s.dev.Overall())))

	if c.lumpSum || c.inflation {
		lumpSum, inflation, err := comparisons(s, c.lumpSum, c.inflation)
		if err != nil {
			return fail(err)
		}
		md.WriteString(renderer.Comparison(s.dev, lumpSum, inflation))
	}

	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
