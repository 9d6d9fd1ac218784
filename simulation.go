package dcasim

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// WarningKind classifies the non-fatal problems a run can report.
type WarningKind int

const (
	// WarnSymbolNotFound: a requested symbol does not exist; it is dropped
	// from the run, never silently included.
	WarnSymbolNotFound WarningKind = iota
	// WarnNoData: the symbol exists but has no price data in the range.
	WarnNoData
	// WarnUnresolvable: a scheduled date has no trading day at or after it;
	// no transaction is created and the security's schedule stops there.
	WarnUnresolvable
	// WarnConversion: a price could not be converted to the base currency.
	WarnConversion
)

func (k WarningKind) String() string {
	switch k {
	case WarnSymbolNotFound:
		return "symbol not found"
	case WarnNoData:
		return "no price data"
	case WarnUnresolvable:
		return "unresolvable investment date"
	case WarnConversion:
		return "conversion failed"
	default:
		return "warning"
	}
}

// Warning is a per-symbol or per-date problem that did not abort the run.
// One bad symbol must never abort the whole simulation.
type Warning struct {
	Kind    WarningKind
	Symbol  string
	Date    Date // zero when the warning is not tied to a date
	Message string
}

func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Kind.String())
	if w.Symbol != "" {
		fmt.Fprintf(&b, " (%s", w.Symbol)
		if !w.Date.IsZero() {
			fmt.Fprintf(&b, " on %s", w.Date)
		}
		b.WriteString(")")
	}
	if w.Message != "" {
		b.WriteString(": ")
		b.WriteString(w.Message)
	}
	return b.String()
}

// ErrNoTransactions reports that not a single scheduled buy could be executed.
// It is, with an invalid plan, the only condition that aborts a run.
var ErrNoTransactions = errors.New("no scheduled investment could be executed")

// Plan is the complete description of a simulation: what to buy, when, and
// how much. The base currency of the whole run is the Amount's currency.
type Plan struct {
	Range    Range
	Schedule Schedule
	Amount   Money    // invested at every nominal date, per security
	Symbols  []string // ticker symbols, deduplicated and normalized by Validate
}

// BaseCurrency is the currency all the run's results are expressed in.
func (p Plan) BaseCurrency() string { return p.Amount.Currency() }

// Validate checks the plan and normalizes its symbol list (case, duplicates,
// ordering). A validation error halts the run before any processing.
func (p *Plan) Validate() error {
	var symbols []string
	for _, s := range p.Symbols {
		s = NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if !slices.Contains(symbols, s) {
			symbols = append(symbols, s)
		}
	}
	slices.Sort(symbols)
	p.Symbols = symbols

	switch {
	case len(p.Symbols) == 0:
		return errors.New("at least one ticker symbol is required")
	case p.Range.From.IsZero() || p.Range.To.IsZero():
		return errors.New("a start and end date are required")
	case p.Range.From.After(p.Range.To):
		return fmt.Errorf("start date %s is after end date %s", p.Range.From, p.Range.To)
	case !p.Amount.IsPositive():
		return errors.New("the periodic investment amount must be positive")
	}
	if err := ValidateCurrency(p.BaseCurrency()); err != nil {
		return err
	}
	if d := p.Schedule.DayOfMonth; d != 0 && (d < 1 || d > 28) {
		return fmt.Errorf("investment day must be between 1 and 28, got %d", d)
	}
	return nil
}

// Result holds everything a run produced. It is the input of every
// downstream table: valuation, metrics, dividends, comparisons.
type Result struct {
	ID         uuid.UUID // identifies this run; caches and ledgers are never shared across runs
	Plan       Plan
	Securities []Security // resolved securities, sorted by symbol
	Ledger     *Ledger
	Warnings   []Warning
	Notes      []Note // approximate-rate conversion notes
}

func (r *Result) warn(kind WarningKind, symbol string, on Date, msg string) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Symbol: symbol, Date: on, Message: msg})
}

// Security returns the resolved security for a symbol, if part of the run.
func (r *Result) Security(symbol string) (Security, bool) {
	for _, s := range r.Securities {
		if s.Symbol() == symbol {
			return s, true
		}
	}
	return Security{}, false
}

// Run executes a simulation plan: it resolves the securities, schedules the
// nominal investment dates, resolves each of them to an actual buy order, and
// records the orders in a fresh ledger.
//
// Per-symbol and per-date failures become warnings on the result; the run
// itself only fails when the plan is invalid, when no symbol resolves, or
// when no buy order can be executed at all.
func Run(plan Plan, market *MarketData, converter *Converter) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	res := &Result{ID: uuid.New(), Plan: plan, Ledger: NewLedger()}

	// Resolve securities; absent symbols are dropped with a warning.
	for _, symbol := range plan.Symbols {
		sec, err := market.Security(symbol)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				res.warn(WarnSymbolNotFound, symbol, Date{}, "dropped from the simulation")
				continue
			}
			return nil, err
		}
		res.Securities = append(res.Securities, sec)
	}
	if len(res.Securities) == 0 {
		return nil, fmt.Errorf("none of the symbols %s could be resolved", strings.Join(plan.Symbols, ", "))
	}

	nominals, err := plan.Schedule.Dates(plan.Range)
	if err != nil {
		return nil, err
	}

	// Fetch every series upfront; empty series exhaust the security immediately.
	series := make(map[string]*PriceSeries)
	exhausted := make(map[string]bool)
	for _, sec := range res.Securities {
		s, err := market.Prices(sec.Symbol(), plan.Range)
		if err != nil {
			return nil, err
		}
		if s.Len() == 0 {
			res.warn(WarnNoData, sec.Symbol(), Date{}, fmt.Sprintf("no price data %s", plan.Range))
			exhausted[sec.Symbol()] = true
		}
		series[sec.Symbol()] = s
	}

	base := plan.BaseCurrency()
	for _, nominal := range nominals {
		for _, sec := range res.Securities {
			symbol := sec.Symbol()
			if exhausted[symbol] {
				continue
			}
			ex, ok := ResolveExecution(nominal, series[symbol])
			if !ok {
				// The series ends before the nominal date: no market open
				// will ever satisfy this or any later schedule entry.
				res.warn(WarnUnresolvable, symbol, nominal, "no trading day at or after the scheduled date")
				exhausted[symbol] = true
				continue
			}
			if res.Ledger.Has(ex.Date, symbol) {
				// Several nominal dates rolled onto the same open: at most
				// one transaction per trading day per security, first wins.
				continue
			}
			priceOriginal := M(ex.Open, sec.Currency())
			priceBase, err := converter.Convert(priceOriginal, base, ex.Date)
			if err != nil {
				res.warn(WarnConversion, symbol, ex.Date, err.Error())
				exhausted[symbol] = true
				continue
			}
			res.Ledger.Record(Transaction{
				Execution:     ex.Date,
				Security:      sec,
				Shares:        plan.Amount.DivPrice(priceBase),
				PriceOriginal: priceOriginal,
				PriceBase:     priceBase,
				Invested:      plan.Amount,
			})
		}
	}

	if res.Ledger.Len() == 0 {
		return nil, fmt.Errorf("%w between %s and %s", ErrNoTransactions, plan.Range.From, plan.Range.To)
	}
	res.Notes = converter.Notes()
	return res, nil
}
