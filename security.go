package dcasim

import (
	"iter"
	"strings"

	"github.com/shopspring/decimal"
)

// Security represents a publicly tradeable asset: stock, ETF, fund.
//
// A security is resolved once per run from the market-data provider and is
// immutable afterwards.
type Security struct {
	symbol   string // ticker symbol, case-normalized, unique within a run
	name     string // human friendly display name
	currency string // trading currency
	kind     string // instrument type as reported by the provider (EQUITY, ETF, ...)
}

// NewSecurity creates a Security. The symbol is upper-cased so that "aapl"
// and "AAPL" identify the same security.
func NewSecurity(symbol, name, currency, kind string) Security {
	return Security{
		symbol:   NormalizeSymbol(symbol),
		name:     name,
		currency: currency,
		kind:     kind,
	}
}

// NormalizeSymbol returns the canonical form of a ticker symbol.
func NormalizeSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

func (s Security) Symbol() string   { return s.symbol }
func (s Security) Name() string     { return s.name }
func (s Security) Currency() string { return s.currency }
func (s Security) Kind() string     { return s.kind }

// A Candle holds one trading day of a security, in its trading currency.
//
// Dividend is the per-share dividend paid that day, zero on most days.
type Candle struct {
	Open     decimal.Decimal
	Close    decimal.Decimal
	Dividend decimal.Decimal
}

// PriceSeries is the daily price history of one security.
//
// Dates are trading days only: the absence of a record is meaningful, it is
// what makes a scheduled investment roll forward to the next market open.
// A series is built once by the provider and never mutated afterwards.
type PriceSeries struct {
	history History[Candle]
}

// Append records the candle for a trading day. Providers call this while
// building the series; the engine never does.
func (p *PriceSeries) Append(on Date, c Candle) { p.history.Append(on, c) }

// Len returns the number of trading days in the series.
func (p *PriceSeries) Len() int { return p.history.Len() }

// On returns the candle at an exact trading day.
func (p *PriceSeries) On(day Date) (Candle, bool) { return p.history.Get(day) }

// OnOrAfter returns the first trading day at or after 'day' and its candle.
// It returns false when the series ends before that day.
func (p *PriceSeries) OnOrAfter(day Date) (Date, Candle, bool) { return p.history.OnOrAfter(day) }

// AsOf returns the candle of the trading day at or immediately before 'day'.
func (p *PriceSeries) AsOf(day Date) (Date, Candle, bool) { return p.history.AsOf(day) }

// First returns the earliest trading day and candle.
func (p *PriceSeries) First() (Date, Candle, bool) { return p.history.First() }

// Last returns the latest trading day and candle.
func (p *PriceSeries) Last() (Date, Candle, bool) { return p.history.Latest() }

// Values iterates over all (trading day, candle) pairs in chronological order.
func (p *PriceSeries) Values() iter.Seq2[Date, Candle] { return p.history.Values() }

// Days iterates over all trading days in chronological order.
func (p *PriceSeries) Days() iter.Seq[Date] { return p.history.Days() }
