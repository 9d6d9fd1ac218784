package dcasim

import (
	"fmt"
	"slices"
	"strings"
)

// Overall is the pseudo-symbol of the aggregated development rows.
const Overall = "overall"

// DevelopmentRow tracks the state of one investment (or of the whole
// portfolio for the Overall pseudo-symbol) at the end of one trading day,
// in base currency.
type DevelopmentRow struct {
	Date    Date
	Symbol  string
	Shares  Quantity // zero for the Overall pseudo-symbol
	Capital Money    // cumulative invested capital
	Value   Money    // market value at that day's close
	Gain    Money    // unrealized gain/loss
	Return  Percent  // gain over capital
}

// Development is the day-by-day valuation of a run. It is fully derived:
// recomputed from the ledger and the price series on every call, never
// incrementally maintained.
type Development struct {
	rows    []DevelopmentRow // per-security rows, sorted by (date, symbol)
	overall []DevelopmentRow // aggregated rows, sorted by date
}

// Rows returns the per-security rows, sorted by date then symbol.
func (d *Development) Rows() []DevelopmentRow { return d.rows }

// Overall returns the aggregated rows, one per date where every invested
// security has a row that day.
func (d *Development) Overall() []DevelopmentRow { return d.overall }

// BySymbol returns the rows of one security, in chronological order.
func (d *Development) BySymbol(symbol string) []DevelopmentRow {
	var rows []DevelopmentRow
	for _, r := range d.rows {
		if r.Symbol == symbol {
			rows = append(rows, r)
		}
	}
	return rows
}

// Latest returns the last aggregated row, if any.
func (d *Development) Latest() (DevelopmentRow, bool) {
	if len(d.overall) == 0 {
		return DevelopmentRow{}, false
	}
	return d.overall[len(d.overall)-1], true
}

// BuildDevelopment replays the run's ledger against the full daily price
// history and produces, for every trading day and invested security, the
// cumulative position and its valuation in base currency.
//
// Rows only exist from the security's first execution onward: a day with no
// invested capital yields no row, never a zero or NaN row. The Overall rows
// aggregate capital and value across securities, but only on dates where
// every invested security has a row; other dates are excluded so a security
// missing data never silently understates the aggregate.
//
// The function is pure: same ledger and prices, same rows.
func BuildDevelopment(res *Result, market *MarketData, converter *Converter) (*Development, error) {
	ledger := res.Ledger
	base := res.Plan.BaseCurrency()

	// First execution date per symbol; a security is "invested" on a date
	// when this date is on or after its first execution.
	firstExec := make(map[string]Date)
	for tx := range ledger.Transactions() {
		if _, ok := firstExec[tx.Security.Symbol()]; !ok {
			firstExec[tx.Security.Symbol()] = tx.Execution
		}
	}

	dev := &Development{}
	for _, sec := range res.Securities {
		symbol := sec.Symbol()
		first, invested := firstExec[symbol]
		if !invested {
			continue
		}
		series, err := market.Prices(symbol, res.Plan.Range)
		if err != nil {
			return nil, err
		}
		for day, candle := range series.Values() {
			if day.Before(first) {
				continue
			}
			capital := ledger.CapitalToDate(symbol, day)
			if capital.IsZero() {
				continue
			}
			closeBase, err := converter.Convert(M(candle.Close, sec.Currency()), base, day)
			if err != nil {
				return nil, fmt.Errorf("valuing %s on %s: %w", symbol, day, err)
			}
			value := closeBase.Mul(ledger.SharesToDate(symbol, day))
			gain := value.Sub(capital)
			dev.rows = append(dev.rows, DevelopmentRow{
				Date:    day,
				Symbol:  symbol,
				Shares:  ledger.SharesToDate(symbol, day),
				Capital: capital,
				Value:   value,
				Gain:    gain,
				Return:  gain.Percent(capital),
			})
		}
	}
	slices.SortStableFunc(dev.rows, func(a, b DevelopmentRow) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})

	dev.overall = aggregate(dev.rows, firstExec)
	return dev, nil
}

// aggregate builds the Overall pseudo-rows from the per-security rows.
func aggregate(rows []DevelopmentRow, firstExec map[string]Date) []DevelopmentRow {
	var overall []DevelopmentRow
	for start := 0; start < len(rows); {
		day := rows[start].Date
		end := start
		for end < len(rows) && rows[end].Date == day {
			end++
		}

		// Number of securities invested on this date.
		invested := 0
		for _, first := range firstExec {
			if !day.Before(first) {
				invested++
			}
		}

		// Only aggregate dates where every invested security has a row.
		if end-start == invested && invested > 0 {
			var capital, value Money
			for _, r := range rows[start:end] {
				capital = capital.Add(r.Capital)
				value = value.Add(r.Value)
			}
			gain := value.Sub(capital)
			overall = append(overall, DevelopmentRow{
				Date:    day,
				Symbol:  Overall,
				Capital: capital,
				Value:   value,
				Gain:    gain,
				Return:  gain.Percent(capital),
			})
		}
		start = end
	}
	return overall
}
