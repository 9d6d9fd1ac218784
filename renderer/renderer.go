// Package renderer turns simulation results into markdown reports.
//
// Every function returns a markdown string; the cmd package decides whether
// it ends up on a terminal (through glamour) or in a file.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/dcasim"
)

// Simulation renders the run header: the plan, the resolved securities and
// the warnings collected during the run.
func Simulation(res *dcasim.Result) string {
	var b strings.Builder
	plan := res.Plan

	fmt.Fprintf(&b, "# Investment Simulation %s\n\n", plan.Range)
	fmt.Fprintf(&b, "Run `%s`.\n\n", res.ID)
	fmt.Fprintf(&b, "Investing %s %s in each of the following %d securities:\n\n",
		plan.Amount, plan.Schedule, len(res.Securities))

	for i, sec := range res.Securities {
		fmt.Fprintf(&b, "%d. %s (%s) — %s, %s\n", i+1, sec.Name(), sec.Symbol(), sec.Kind(), sec.Currency())
	}
	b.WriteString("\n")

	if len(res.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}
	if len(res.Notes) > 0 {
		fmt.Fprintf(&b, "%d currency conversions used a nearby-date rate (run `dca topic currency` for details).\n\n", len(res.Notes))
	}
	return b.String()
}

// Transactions renders the ledger as a table, one row per executed buy.
func Transactions(res *dcasim.Result) string {
	base := res.Plan.BaseCurrency()

	var b strings.Builder
	b.WriteString("## Transactions\n\n")
	fmt.Fprintf(&b, "| Date | Symbol | Type | Currency | Shares | Price | Price (%s) | Invested (%s) |\n", base, base)
	b.WriteString("|:---|:---|:---|:---|---:|---:|---:|---:|\n")
	for tx := range res.Ledger.Transactions() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Execution,
			tx.Security.Symbol(),
			tx.Security.Kind(),
			tx.Security.Currency(),
			tx.Shares.StringFixed(4),
			tx.PriceOriginal,
			tx.PriceBase,
			tx.Invested,
		)
	}
	b.WriteString("\n")
	return b.String()
}

// Development renders the aggregated day-by-day valuation. A non-zero limit
// keeps only the most recent rows, the usual terminal case.
func Development(dev *dcasim.Development, limit int) string {
	rows := dev.Overall()

	var b strings.Builder
	b.WriteString("## Development\n\n")
	if len(rows) == 0 {
		b.WriteString("No aggregated development data.\n\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Days since first investment: %d\n\n", len(rows))

	if limit > 0 && len(rows) > limit {
		fmt.Fprintf(&b, "Last %d days:\n\n", limit)
		rows = rows[len(rows)-limit:]
	}
	b.WriteString("| Date | Invested | Value | Gain/Loss | Return |\n")
	b.WriteString("|:---|---:|---:|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			r.Date, r.Capital, r.Value, r.Gain.SignedString(), r.Return.SignedString())
	}
	b.WriteString("\n")
	return b.String()
}

// SymbolDevelopment renders the day-by-day valuation of a single security.
func SymbolDevelopment(dev *dcasim.Development, symbol string, limit int) string {
	rows := dev.BySymbol(symbol)

	var b strings.Builder
	fmt.Fprintf(&b, "## Development of %s\n\n", symbol)
	if len(rows) == 0 {
		fmt.Fprintf(&b, "No development data for %s.\n\n", symbol)
		return b.String()
	}
	if limit > 0 && len(rows) > limit {
		fmt.Fprintf(&b, "Last %d days:\n\n", limit)
		rows = rows[len(rows)-limit:]
	}
	b.WriteString("| Date | Shares | Invested | Value | Gain/Loss | Return |\n")
	b.WriteString("|:---|---:|---:|---:|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			r.Date, r.Shares.StringFixed(4), r.Capital, r.Value, r.Gain.SignedString(), r.Return.SignedString())
	}
	b.WriteString("\n")
	return b.String()
}

// Positions renders the latest per-security rows of the development table.
func Positions(dev *dcasim.Development, securities []dcasim.Security) string {
	var b strings.Builder
	b.WriteString("## Positions\n\n")
	b.WriteString("| Symbol | Shares | Invested | Value | Gain/Loss | Return |\n")
	b.WriteString("|:---|---:|---:|---:|---:|---:|\n")
	for _, sec := range securities {
		rows := dev.BySymbol(sec.Symbol())
		if len(rows) == 0 {
			continue
		}
		r := rows[len(rows)-1]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			r.Symbol, r.Shares.StringFixed(4), r.Capital, r.Value, r.Gain.SignedString(), r.Return.SignedString())
	}
	b.WriteString("\n")
	return b.String()
}

// Metrics renders the fixed-window performance deltas. Windows the history
// is too short for show a dash, never a zero.
func Metrics(metrics map[dcasim.Window]dcasim.Metric) string {
	var b strings.Builder
	b.WriteString("## Performance\n\n")

	b.WriteString("|")
	for _, w := range dcasim.Windows {
		fmt.Fprintf(&b, " %s |", w)
	}
	b.WriteString("\n|")
	for range dcasim.Windows {
		b.WriteString("---:|")
	}
	b.WriteString("\n|")
	for _, w := range dcasim.Windows {
		m := metrics[w]
		if !m.Valid {
			b.WriteString(" - |")
			continue
		}
		fmt.Fprintf(&b, " %s (%s) |", m.Gain.SignedString(), m.Change.SignedString())
	}
	b.WriteString("\n\n")
	return b.String()
}

// Dividends renders the dividend income table, one row per dividend event
// on a date shares were held.
func Dividends(incomes []dcasim.DividendIncome, base string) string {
	var b strings.Builder
	b.WriteString("## Dividends\n\n")
	if len(incomes) == 0 {
		b.WriteString("No dividend was paid on the invested securities over the period.\n\n")
		return b.String()
	}
	fmt.Fprintf(&b, "| Date | Symbol | Shares | Per Share | Per Share (%s) | Income (%s) |\n", base, base)
	b.WriteString("|:---|:---|---:|---:|---:|---:|\n")
	var total dcasim.Money
	for _, d := range incomes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			d.Date, d.Security.Symbol(), d.Shares.StringFixed(4),
			d.PerShareOriginal, d.PerShareBase, d.Income)
		total = total.Add(d.Income)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%s** |\n\n", total)
	return b.String()
}

// Comparison renders the strategy comparison: the periodic plan against the
// lump-sum baseline, and the inflation-adjusted buying power of the same
// invested capital.
func Comparison(dev *dcasim.Development, lumpSum, inflation []dcasim.ComparisonPoint) string {
	var b strings.Builder
	b.WriteString("## Strategy comparison\n\n")

	if latest, ok := dev.Latest(); ok {
		fmt.Fprintf(&b, "| Strategy | Final value on %s |\n", latest.Date)
		b.WriteString("|:---|---:|\n")
		fmt.Fprintf(&b, "| Periodic investing | %s |\n", latest.Value)
		if len(lumpSum) > 0 {
			fmt.Fprintf(&b, "| Lump sum | %s |\n", lumpSum[len(lumpSum)-1].Value)
		}
		b.WriteString("\n")
	}

	if len(inflation) > 0 {
		last := inflation[len(inflation)-1]
		fmt.Fprintf(&b, "Inflation-adjusted buying power of the invested capital as of %s %d: %s.\n\n",
			last.Date.Month(), last.Date.Year(), last.Value)
	}
	return b.String()
}
