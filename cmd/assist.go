package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/dcasim"
	"github.com/etnz/dcasim/agent"
	"github.com/etnz/dcasim/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	planFlags
	question string
}

func (*assistCmd) Name() string { return "assist" }

func (*assistCmd) Synopsis() string {
	return "Start an interactive session with the AI assistant about a simulation."
}

func (*assistCmd) Usage() string {
	return `dca assist [-f <plan.toml>] [plan flags] [-q <question>] <symbol>...

  Runs the simulation and starts an interactive session with the AI assistant.
  The assistant has the full simulation results at hand and can search the web
  for recent news about the simulated securities.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.planFlags.SetFlags(f)
	f.StringVar(&c.question, "q", "", "Initial question to ask the assistant.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := c.Plan(f)
	if err != nil {
		return fail(err)
	}
	s, err := runPlan(plan)
	if err != nil {
		return fail(err)
	}

	report := agent.Report{
		Simulation:   renderer.Simulation(s.result),
		Transactions: renderer.Transactions(s.result),
		Development:  renderer.Development(s.dev, 0),
		Performance:  renderer.Metrics(dcasim.Metrics(s.dev.Overall())),
	}
	if incomes, err := dcasim.Dividends(s.result, s.market, s.converter); err == nil {
		report.Dividends = renderer.Dividends(incomes, plan.BaseCurrency())
	}
	if lumpSum, _, err := comparisons(s, true, false); err == nil {
		report.Comparison = renderer.Comparison(s.dev, lumpSum, nil)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(report)
	researcher := agent.NewResearcher()
	a := agent.New(os.Stdout, os.Stdin, analyst, researcher)

	if err := a.Run(ctx, client, strings.TrimSpace(c.question)); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
