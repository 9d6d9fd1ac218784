package dcasim

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// fakeProvider is an in-memory market data provider for tests.
type fakeProvider struct {
	securities map[string]Security
	series     map[string]*PriceSeries
}

func (p *fakeProvider) Fetch(symbol string, _ Range) (*PriceSeries, error) {
	s, ok := p.series[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	return s, nil
}

func (p *fakeProvider) Metadata(symbol string) (Security, error) {
	sec, ok := p.securities[symbol]
	if !ok {
		return Security{}, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	return sec, nil
}

// fixedRates is an in-memory rate source: units per euro, keyed by currency.
type fixedRates map[string]*History[float64]

func (r fixedRates) Rate(currency string, on Date) (float64, Date, bool) {
	h, ok := r[currency]
	if !ok || h.Len() == 0 {
		return 0, Date{}, false
	}
	if used, v, ok := h.AsOf(on); ok {
		return v, used, true
	}
	used, v, _ := h.First()
	return v, used, true
}

func day(y int, m time.Month, d int) Date { return NewDate(y, m, d) }

func candle(open, close float64) Candle {
	return Candle{Open: decimal.NewFromFloat(open), Close: decimal.NewFromFloat(close)}
}

func dividendCandle(open, close, dividend float64) Candle {
	c := candle(open, close)
	c.Dividend = decimal.NewFromFloat(dividend)
	return c
}

func newSeries(t *testing.T, entries map[Date]Candle) *PriceSeries {
	t.Helper()
	s := new(PriceSeries)
	for d, c := range entries {
		s.Append(d, c)
	}
	return s
}

// setupRun executes a plan against the fake provider and rates, failing the
// test on any run error.
func setupRun(t *testing.T, plan Plan, provider *fakeProvider, rates fixedRates) (*Result, *MarketData, *Converter) {
	t.Helper()
	market := NewMarketData(provider)
	converter := NewConverter(rates)
	res, err := Run(plan, market, converter)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return res, market, converter
}

// acmeProvider is the standard single-security fixture: ACME trades in USD on
// 2025-01-02 and 2025-01-03.
//
//	Jan 2: open 100, close 110
//	Jan 3: open  50, close  60
func acmeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	return &fakeProvider{
		securities: map[string]Security{
			"ACME": NewSecurity("ACME", "Acme Corp", "USD", "EQUITY"),
		},
		series: map[string]*PriceSeries{
			"ACME": newSeries(t, map[Date]Candle{
				day(2025, time.January, 2): candle(100, 110),
				day(2025, time.January, 3): candle(50, 60),
			}),
		},
	}
}

func acmePlan() Plan {
	return Plan{
		Range:    Range{From: day(2025, time.January, 2), To: day(2025, time.January, 3)},
		Schedule: Schedule{Every: Daily},
		Amount:   USD(100),
		Symbols:  []string{"ACME"},
	}
}
