package cmd

import (
	"context"
	"flag"

	"github.com/etnz/dcasim"
	"github.com/etnz/dcasim/renderer"
	"github.com/google/subcommands"
)

// dividendsCmd holds the flags for the 'dividends' subcommand.
type dividendsCmd struct {
	planFlags
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "dividend income accrued by a simulation" }
func (*dividendsCmd) Usage() string {
	return `dca dividends [-f <plan.toml>] [plan flags] <symbol>...

  Runs the simulation and lists the dividend income the held shares would have
  produced, converted to the base currency on each payment date.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	c.planFlags.SetFlags(f)
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.Plan(f)
	if err != nil {
		return fail(err)
	}
	s, err := runPlan(plan)
	if err != nil {
		return fail(err)
	}
	incomes, err := dcasim.Dividends(s.result, s.market, s.converter)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Dividends(incomes, plan.BaseCurrency()))
	return subcommands.ExitSuccess
}
