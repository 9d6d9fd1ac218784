package dcasim

import (
	"fmt"
	"slices"
	"strings"
)

// DividendIncome is the income generated by one dividend event for the shares
// held at that date.
type DividendIncome struct {
	Date             Date
	Security         Security
	Shares           Quantity // shares held when the dividend was paid
	PerShareOriginal Money    // dividend per share, trading currency
	PerShareBase     Money    // dividend per share, base currency
	Income           Money    // shares times per-share dividend, base currency
}

// Dividends matches the recorded dividend events against the ledger's
// cumulative share counts and values them in base currency at the event date.
//
// Dates with no recorded dividend are excluded entirely, as are events that
// precede the first purchase of the security (no shares, no income).
func Dividends(res *Result, market *MarketData, converter *Converter) ([]DividendIncome, error) {
	base := res.Plan.BaseCurrency()

	var incomes []DividendIncome
	for _, sec := range res.Ledger.Securities() {
		series, err := market.Prices(sec.Symbol(), res.Plan.Range)
		if err != nil {
			return nil, err
		}
		for day, candle := range series.Values() {
			if candle.Dividend.IsZero() {
				continue
			}
			shares := res.Ledger.SharesToDate(sec.Symbol(), day)
			if shares.IsZero() {
				continue
			}
			perShare := M(candle.Dividend, sec.Currency())
			perShareBase, err := converter.Convert(perShare, base, day)
			if err != nil {
				return nil, fmt.Errorf("converting %s dividend of %s: %w", sec.Symbol(), day, err)
			}
			incomes = append(incomes, DividendIncome{
				Date:             day,
				Security:         sec,
				Shares:           shares,
				PerShareOriginal: perShare,
				PerShareBase:     perShareBase,
				Income:           perShareBase.Mul(shares),
			})
		}
	}
	slices.SortStableFunc(incomes, func(a, b DividendIncome) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Security.Symbol(), b.Security.Symbol())
	})
	return incomes, nil
}
