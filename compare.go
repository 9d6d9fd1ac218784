package dcasim

import (
	"fmt"
	"time"
)

// ComparisonPoint is one date of an alternative-strategy series, in the
// currency of that series.
type ComparisonPoint struct {
	Date  Date
	Value Money
}

// LumpSum computes the baseline strategy: invest the whole capital that the
// periodic plan ends up investing, split evenly across the run's securities,
// entirely at each security's first available trading day, and track the
// market value from there through the close prices.
//
// The series covers the same dates as the run's aggregated development rows,
// so the two are directly comparable.
func LumpSum(res *Result, dev *Development, market *MarketData, converter *Converter) ([]ComparisonPoint, error) {
	base := res.Plan.BaseCurrency()
	securities := res.Ledger.Securities()
	if len(securities) == 0 {
		return nil, nil
	}
	allocation := res.Ledger.TotalInvested().Div(Q(len(securities)))

	// Shares each security's allocation buys at its first close.
	shares := make(map[string]Quantity, len(securities))
	for _, sec := range securities {
		series, err := market.Prices(sec.Symbol(), res.Plan.Range)
		if err != nil {
			return nil, err
		}
		day, candle, ok := series.First()
		if !ok {
			continue
		}
		closeBase, err := converter.Convert(M(candle.Close, sec.Currency()), base, day)
		if err != nil {
			return nil, fmt.Errorf("lump sum entry for %s: %w", sec.Symbol(), err)
		}
		shares[sec.Symbol()] = allocation.DivPrice(closeBase)
	}

	var points []ComparisonPoint
	for _, row := range dev.Overall() {
		var value Money
		for _, sec := range securities {
			series, err := market.Prices(sec.Symbol(), res.Plan.Range)
			if err != nil {
				return nil, err
			}
			_, candle, ok := series.AsOf(row.Date)
			if !ok {
				continue
			}
			closeBase, err := converter.Convert(M(candle.Close, sec.Currency()), base, row.Date)
			if err != nil {
				return nil, fmt.Errorf("lump sum value for %s on %s: %w", sec.Symbol(), row.Date, err)
			}
			value = value.Add(closeBase.Mul(shares[sec.Symbol()]))
		}
		points = append(points, ComparisonPoint{Date: row.Date, Value: value})
	}
	return points, nil
}

// Index supplies a monthly price-level index. Its reference currency is the
// US dollar: callers convert other currencies before looking a value up.
type Index interface {
	Value(year int, month time.Month) (float64, bool)
}

// InflationAdjusted re-expresses the plan's invested capital as monthly
// buying power: each invested amount, converted to US dollars at its
// execution date, is scaled by the ratio of the index at the observed month
// over the index at the investment month, then summed.
//
// The series shows what the originally invested dollars would need to be
// worth at each month to hold their purchasing power. Months missing from
// the index (typically the most recent ones) end the series.
func InflationAdjusted(res *Result, converter *Converter, index Index) ([]ComparisonPoint, error) {
	type contribution struct {
		month Date // first day of the investment month
		usd   Money
		base  float64 // index value at the investment month
	}

	var contributions []contribution
	for tx := range res.Ledger.Transactions() {
		usd, err := converter.Convert(tx.Invested, "USD", tx.Execution)
		if err != nil {
			return nil, fmt.Errorf("converting investment of %s on %s: %w", tx.Security.Symbol(), tx.Execution, err)
		}
		base, ok := index.Value(tx.Execution.Year(), tx.Execution.Month())
		if !ok {
			return nil, fmt.Errorf("no inflation index for %s %d", tx.Execution.Month(), tx.Execution.Year())
		}
		contributions = append(contributions, contribution{
			month: NewDate(tx.Execution.Year(), tx.Execution.Month(), 1),
			usd:   usd,
			base:  base,
		})
	}
	if len(contributions) == 0 {
		return nil, nil
	}

	var points []ComparisonPoint
	firstMonth := contributions[0].month
	lastMonth := NewDate(res.Plan.Range.To.Year(), res.Plan.Range.To.Month(), 1)
	for month := firstMonth; !month.After(lastMonth); month = month.AddMonths(1) {
		current, ok := index.Value(month.Year(), month.Month())
		if !ok {
			break // index not published yet for this month
		}
		var value Money
		for _, c := range contributions {
			if c.month.After(month) {
				continue
			}
			value = value.Add(c.usd.Mul(Q(current / c.base)))
		}
		points = append(points, ComparisonPoint{Date: month, Value: value})
	}
	return points, nil
}
