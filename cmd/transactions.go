package cmd

import (
	"context"
	"flag"

	"github.com/etnz/dcasim/renderer"
	"github.com/google/subcommands"
)

// transactionsCmd holds the flags for the 'transactions' subcommand.
type transactionsCmd struct {
	planFlags
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list the executed buy orders of a simulation" }
func (*transactionsCmd) Usage() string {
	return `dca transactions [-f <plan.toml>] [plan flags] <symbol>...

  Runs the simulation and lists every executed buy order: the actual trading
  day, the shares bought and the prices in trading and base currency.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	c.planFlags.SetFlags(f)
}

func (c *transactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.Plan(f)
	if err != nil {
		return fail(err)
	}
	s, err := runPlan(plan)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Transactions(s.result))
	return subcommands.ExitSuccess
}
