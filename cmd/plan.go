package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dcasim"
	toml "github.com/pelletier/go-toml/v2"
)

// planFlags is the set of flags shared by every command that runs a
// simulation. Symbols come from the positional arguments.
type planFlags struct {
	file   string
	from   string
	to     string
	amount string
	every  string
	day    int
}

func (p *planFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.file, "f", "", "Plan file (TOML). Flags set on the command line take precedence.")
	f.StringVar(&p.from, "from", "", "Start date of the simulation (YYYY-MM-DD). Defaults to five years ago.")
	f.StringVar(&p.to, "to", dcasim.Today().String(), "End date of the simulation (YYYY-MM-DD).")
	f.StringVar(&p.amount, "amount", "", "Amount invested per scheduled date per security, e.g. 100USD.")
	f.StringVar(&p.every, "every", dcasim.Monthly.String(), "Investment frequency (monthly, weekly, daily).")
	f.IntVar(&p.day, "day", 1, "Day of the month to invest on (1-28), monthly frequency only.")
}

// planFile mirrors the TOML plan file shape.
type planFile struct {
	From    string   `toml:"from"`
	To      string   `toml:"to"`
	Amount  string   `toml:"amount"`
	Every   string   `toml:"every"`
	Day     int      `toml:"day"`
	Symbols []string `toml:"symbols"`
}

// Plan assembles the simulation plan from the file, the flags and the
// positional symbols. The command line wins over the file.
func (p *planFlags) Plan(f *flag.FlagSet) (dcasim.Plan, error) {
	var plan dcasim.Plan

	file := planFile{Every: dcasim.Monthly.String(), Day: 1}
	if p.file != "" {
		content, err := os.ReadFile(p.file)
		if err != nil {
			return plan, fmt.Errorf("reading plan file: %w", err)
		}
		if err := toml.Unmarshal(content, &file); err != nil {
			return plan, fmt.Errorf("parsing plan file %q: %w", p.file, err)
		}
	}

	// Flags explicitly set on the command line override the file.
	set := map[string]bool{}
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["from"] || file.From == "" {
		file.From = p.from
	}
	if set["to"] || file.To == "" {
		file.To = p.to
	}
	if set["amount"] || file.Amount == "" {
		file.Amount = p.amount
	}
	if set["every"] {
		file.Every = p.every
	}
	if set["day"] {
		file.Day = p.day
	}
	if args := f.Args(); len(args) > 0 {
		file.Symbols = args
	}

	if file.To == "" {
		file.To = dcasim.Today().String()
	}
	to, err := dcasim.ParseDate(file.To)
	if err != nil {
		return plan, fmt.Errorf("invalid end date: %w", err)
	}
	var from dcasim.Date
	if file.From == "" {
		from = to.AddMonths(-60)
	} else if from, err = dcasim.ParseDate(file.From); err != nil {
		return plan, fmt.Errorf("invalid start date: %w", err)
	}

	if file.Amount == "" {
		return plan, fmt.Errorf("an investment amount is required (e.g. -amount 100USD)")
	}
	amount, err := parseAmount(file.Amount)
	if err != nil {
		return plan, err
	}

	every, err := dcasim.ParseFrequency(file.Every)
	if err != nil {
		return plan, err
	}
	schedule := dcasim.Schedule{Every: every}
	if every == dcasim.Monthly {
		schedule.DayOfMonth = file.Day
	}

	return dcasim.Plan{
		Range:    dcasim.Range{From: from, To: to},
		Schedule: schedule,
		Amount:   amount,
		Symbols:  file.Symbols,
	}, nil
}
