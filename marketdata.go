package dcasim

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a symbol is unknown to the market-data provider.
var ErrNotFound = errors.New("symbol not found")

// Provider supplies daily market data for securities.
//
// Fetch returns the daily price/dividend series of a symbol within a range.
// A valid symbol with no trading activity in range yields an empty series,
// not an error. Metadata resolves a symbol into its Security description.
// Both return an error wrapping ErrNotFound for unknown symbols.
type Provider interface {
	Fetch(symbol string, r Range) (*PriceSeries, error)
	Metadata(symbol string) (Security, error)
}

// MarketData memoizes provider responses for the lifetime of one simulation
// run, so that re-deriving tables from the same run never re-fetches.
//
// It is scoped to one run and never shared across concurrent runs: a new run
// gets a fresh instance.
type MarketData struct {
	provider   Provider
	series     map[string]*PriceSeries
	securities map[string]Security
}

// NewMarketData returns an empty per-run cache over the given provider.
func NewMarketData(provider Provider) *MarketData {
	return &MarketData{
		provider:   provider,
		series:     make(map[string]*PriceSeries),
		securities: make(map[string]Security),
	}
}

// Prices returns the memoized price series for (symbol, range), fetching it
// on first use.
func (m *MarketData) Prices(symbol string, r Range) (*PriceSeries, error) {
	symbol = NormalizeSymbol(symbol)
	key := fmt.Sprintf("%s|%s", symbol, r.Identifier())
	if s, ok := m.series[key]; ok {
		return s, nil
	}
	s, err := m.provider.Fetch(symbol, r)
	if err != nil {
		return nil, fmt.Errorf("fetching prices for %s %s: %w", symbol, r, err)
	}
	m.series[key] = s
	return s, nil
}

// Security returns the memoized metadata of a symbol, resolving it on first use.
func (m *MarketData) Security(symbol string) (Security, error) {
	symbol = NormalizeSymbol(symbol)
	if sec, ok := m.securities[symbol]; ok {
		return sec, nil
	}
	sec, err := m.provider.Metadata(symbol)
	if err != nil {
		return Security{}, fmt.Errorf("resolving symbol %s: %w", symbol, err)
	}
	m.securities[symbol] = sec
	return sec, nil
}
