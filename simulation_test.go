package dcasim

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRunBasic(t *testing.T) {
	res, _, _ := setupRun(t, acmePlan(), acmeProvider(t), nil)

	if res.Ledger.Len() != 2 {
		t.Fatalf("got %d transactions, want 2", res.Ledger.Len())
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
	if res.ID == uuid.Nil {
		t.Error("run has no identifier")
	}

	var txs []Transaction
	for tx := range res.Ledger.Transactions() {
		txs = append(txs, tx)
	}
	// Jan 2: 100 USD at open 100 buys exactly 1 share.
	if !txs[0].Shares.Equal(Q(1)) {
		t.Errorf("Jan 2 shares = %s, want 1", txs[0].Shares)
	}
	// Jan 3: 100 USD at open 50 buys 2 shares.
	if !txs[1].Shares.Equal(Q(2)) {
		t.Errorf("Jan 3 shares = %s, want 2", txs[1].Shares)
	}
	if !txs[0].PriceBase.Equal(USD(100)) || !txs[0].Invested.Equal(USD(100)) {
		t.Errorf("Jan 2 prices: base %s invested %s", txs[0].PriceBase, txs[0].Invested)
	}
}

func TestRunRollsForwardAndDeduplicates(t *testing.T) {
	// Fri Jan 3 and Mon Jan 6 trade; a daily schedule over Jan 3-6 nominates
	// 4 dates but Sat, Sun and Mon all land on the Jan 6 open.
	provider := &fakeProvider{
		securities: map[string]Security{"ACME": NewSecurity("ACME", "Acme Corp", "USD", "EQUITY")},
		series: map[string]*PriceSeries{
			"ACME": newSeries(t, map[Date]Candle{
				day(2025, time.January, 3): candle(100, 101),
				day(2025, time.January, 6): candle(102, 103),
			}),
		},
	}
	plan := acmePlan()
	plan.Range = Range{From: day(2025, time.January, 3), To: day(2025, time.January, 6)}

	res, _, _ := setupRun(t, plan, provider, nil)
	if res.Ledger.Len() != 2 {
		t.Fatalf("got %d transactions, want 2 (one per market open)", res.Ledger.Len())
	}
	// First write wins: 100 invested on Jan 6, not 300.
	if got := res.Ledger.CapitalToDate("ACME", day(2025, time.January, 6)); !got.Equal(USD(200)) {
		t.Errorf("capital = %s, want %s", got, USD(200))
	}
}

func TestRunUnknownSymbolIsDropped(t *testing.T) {
	plan := acmePlan()
	plan.Symbols = []string{"ACME", "NOPE"}

	res, _, _ := setupRun(t, plan, acmeProvider(t), nil)
	if len(res.Securities) != 1 || res.Securities[0].Symbol() != "ACME" {
		t.Fatalf("securities = %v", res.Securities)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnSymbolNotFound {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if res.Ledger.Len() != 2 {
		t.Errorf("the valid symbol must still be simulated, got %d transactions", res.Ledger.Len())
	}
}

func TestRunAllSymbolsUnknown(t *testing.T) {
	plan := acmePlan()
	plan.Symbols = []string{"NOPE"}
	_, err := Run(plan, NewMarketData(acmeProvider(t)), NewConverter(nil))
	if err == nil {
		t.Fatal("expected an error when no symbol resolves")
	}
}

func TestRunNoPriceData(t *testing.T) {
	provider := acmeProvider(t)
	provider.securities["EMPT"] = NewSecurity("EMPT", "Empty Inc", "USD", "EQUITY")
	provider.series["EMPT"] = new(PriceSeries)

	plan := acmePlan()
	plan.Symbols = []string{"ACME", "EMPT"}

	res, _, _ := setupRun(t, plan, provider, nil)
	var kinds []WarningKind
	for _, w := range res.Warnings {
		kinds = append(kinds, w.Kind)
	}
	if len(kinds) != 1 || kinds[0] != WarnNoData {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if res.Ledger.Len() != 2 {
		t.Errorf("got %d transactions, want 2 from the symbol with data", res.Ledger.Len())
	}
}

func TestRunUnresolvableStopsSchedule(t *testing.T) {
	// The series ends Jan 3; nominal dates Jan 4 and Jan 5 can never execute.
	plan := acmePlan()
	plan.Range = Range{From: day(2025, time.January, 2), To: day(2025, time.January, 5)}

	res, _, _ := setupRun(t, plan, acmeProvider(t), nil)
	if res.Ledger.Len() != 2 {
		t.Fatalf("got %d transactions, want 2", res.Ledger.Len())
	}
	// A single warning: the security is exhausted, not warned per nominal date.
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnUnresolvable {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if res.Warnings[0].Date != day(2025, time.January, 4) {
		t.Errorf("warning date = %s, want 2025-01-04", res.Warnings[0].Date)
	}
}

func TestRunConversionFailure(t *testing.T) {
	// GAMA trades in GBP but the rate source only knows USD.
	provider := acmeProvider(t)
	provider.securities["GAMA"] = NewSecurity("GAMA", "Gamma plc", "GBP", "EQUITY")
	provider.series["GAMA"] = newSeries(t, map[Date]Candle{
		day(2025, time.January, 2): candle(10, 11),
	})
	usd := new(History[float64])
	usd.Append(day(2025, time.January, 2), 1.1)

	plan := acmePlan()
	plan.Symbols = []string{"ACME", "GAMA"}

	res, _, _ := setupRun(t, plan, provider, fixedRates{"USD": usd})
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != WarnConversion {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	if res.Ledger.Len() != 2 {
		t.Errorf("got %d transactions, want 2 from the convertible symbol", res.Ledger.Len())
	}
}

func TestRunNoTransactions(t *testing.T) {
	provider := &fakeProvider{
		securities: map[string]Security{"ACME": NewSecurity("ACME", "Acme Corp", "USD", "EQUITY")},
		series:     map[string]*PriceSeries{"ACME": new(PriceSeries)},
	}
	_, err := Run(acmePlan(), NewMarketData(provider), NewConverter(nil))
	if !errors.Is(err, ErrNoTransactions) {
		t.Fatalf("err = %v, want ErrNoTransactions", err)
	}
}

func TestRunRecordsConversionNotes(t *testing.T) {
	// SAPE trades in EUR; base is USD and the only rate is from Jan 2, so the
	// Jan 3 conversion is approximate and noted on the result.
	provider := &fakeProvider{
		securities: map[string]Security{"SAPE": NewSecurity("SAPE", "Sape SE", "EUR", "EQUITY")},
		series: map[string]*PriceSeries{
			"SAPE": newSeries(t, map[Date]Candle{
				day(2025, time.January, 2): candle(100, 101),
				day(2025, time.January, 3): candle(100, 102),
			}),
		},
	}
	usd := new(History[float64])
	usd.Append(day(2025, time.January, 2), 1.1)

	plan := acmePlan()
	plan.Symbols = []string{"SAPE"}

	res, _, _ := setupRun(t, plan, provider, fixedRates{"USD": usd})
	if res.Ledger.Len() != 2 {
		t.Fatalf("got %d transactions", res.Ledger.Len())
	}
	if len(res.Notes) != 1 {
		t.Fatalf("got %d notes, want 1: %v", len(res.Notes), res.Notes)
	}
	if res.Notes[0].Requested != day(2025, time.January, 3) {
		t.Errorf("note = %+v", res.Notes[0])
	}
	// 100 EUR at 1.1 USD per EUR.
	if got := res.Ledger.CapitalToDate("SAPE", day(2025, time.January, 2)); !got.Equal(USD(100)) {
		t.Errorf("invested capital is the plan amount, got %s", got)
	}
}

func TestPlanValidate(t *testing.T) {
	valid := acmePlan()

	testCases := []struct {
		name   string
		mutate func(*Plan)
	}{
		{"no symbols", func(p *Plan) { p.Symbols = nil }},
		{"blank symbols", func(p *Plan) { p.Symbols = []string{"  ", ""} }},
		{"zero start", func(p *Plan) { p.Range.From = Date{} }},
		{"reversed range", func(p *Plan) { p.Range.From, p.Range.To = p.Range.To, p.Range.From.Add(-10) }},
		{"zero amount", func(p *Plan) { p.Amount = USD(0) }},
		{"negative amount", func(p *Plan) { p.Amount = USD(-5) }},
		{"bad currency", func(p *Plan) { p.Amount = M(100, "XQZ") }},
		{"day out of bounds", func(p *Plan) { p.Schedule = Schedule{DayOfMonth: 31} }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			p.Symbols = append([]string(nil), valid.Symbols...)
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	p := valid
	p.Symbols = []string{"acme", "ACME", "beta"}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(p.Symbols) != 2 || p.Symbols[0] != "ACME" || p.Symbols[1] != "BETA" {
		t.Errorf("symbols not normalized: %v", p.Symbols)
	}
}
