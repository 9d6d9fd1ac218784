// Package cmd implements the CLI application to run investment simulations.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dcasim"
	"github.com/etnz/dcasim/ecb"
	"github.com/etnz/dcasim/yahoo"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Commands lists the subcommands a main package registers.
// A main package will call Register on each, and Execute on the user-selected one.
var Commands = []subcommands.Command{
	&simulateCmd{},
	&transactionsCmd{},
	&developmentCmd{},
	&metricsCmd{},
	&dividendsCmd{},
	&chartCmd{},
	&topicCmd{},
	&assistCmd{},
}

// printMarkdown renders markdown for the terminal. On rendering errors the
// raw markdown is printed instead, it is readable enough.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// session holds everything the reporting commands need from one run.
type session struct {
	market    *dcasim.MarketData
	converter *dcasim.Converter
	result    *dcasim.Result
	dev       *dcasim.Development
}

// runPlan executes a plan against live market data and ECB exchange rates.
// Both sources cache their responses on disk for a day.
func runPlan(plan dcasim.Plan) (*session, error) {
	rates, err := ecb.Fetch()
	if err != nil {
		return nil, fmt.Errorf("fetching exchange rates: %w", err)
	}
	converter := dcasim.NewConverter(rates)
	market := dcasim.NewMarketData(yahoo.New())

	result, err := dcasim.Run(plan, market, converter)
	if err != nil {
		return nil, err
	}
	dev, err := dcasim.BuildDevelopment(result, market, converter)
	if err != nil {
		return nil, err
	}
	return &session{market: market, converter: converter, result: result, dev: dev}, nil
}

// parseAmount parses amounts like "100USD", "100 EUR" or plain "100"
// (US dollars by default).
func parseAmount(s string) (dcasim.Money, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && !isDigit(s[i-1]) {
		i--
	}
	number, code := strings.TrimSpace(s[:i]), strings.ToUpper(strings.TrimSpace(s[i:]))
	if code == "" {
		code = "USD"
	}
	value, err := decimal.NewFromString(number)
	if err != nil {
		return dcasim.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if err := dcasim.ValidateCurrency(code); err != nil {
		return dcasim.Money{}, err
	}
	return dcasim.M(value, code), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' || c == '.' }

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
