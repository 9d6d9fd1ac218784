package dcasim

import (
	"testing"
	"time"
)

func buy(t *testing.T, on Date, symbol string, shares float64, invested Money) Transaction {
	t.Helper()
	return Transaction{
		Execution: on,
		Security:  NewSecurity(symbol, symbol, invested.Currency(), "EQUITY"),
		Shares:    Q(shares),
		Invested:  invested,
	}
}

func TestLedgerRecordDeduplicates(t *testing.T) {
	l := NewLedger()
	tx := buy(t, day(2025, time.January, 2), "ACME", 1, USD(100))
	if !l.Record(tx) {
		t.Fatal("first Record must succeed")
	}
	if l.Record(tx) {
		t.Fatal("second Record on the same (date, symbol) must be refused")
	}
	if l.Len() != 1 {
		t.Errorf("got %d transactions, want 1", l.Len())
	}
	// First write wins: the amount is not summed.
	if got := l.CapitalToDate("ACME", day(2025, time.January, 2)); !got.Equal(USD(100)) {
		t.Errorf("capital = %s, want %s", got, USD(100))
	}

	if !l.Has(day(2025, time.January, 2), "ACME") {
		t.Error("Has must report the recorded pair")
	}
	if l.Has(day(2025, time.January, 3), "ACME") {
		t.Error("Has must not report an unrecorded pair")
	}
}

func TestLedgerChronologicalOrder(t *testing.T) {
	l := NewLedger()
	l.Record(buy(t, day(2025, time.January, 6), "ACME", 1, USD(100)))
	l.Record(buy(t, day(2025, time.January, 2), "BETA", 1, USD(100)))
	l.Record(buy(t, day(2025, time.January, 2), "ACME", 1, USD(100)))

	var got []Transaction
	for tx := range l.Transactions() {
		got = append(got, tx)
	}
	if len(got) != 3 {
		t.Fatalf("got %d transactions", len(got))
	}
	if got[0].Security.Symbol() != "ACME" || got[1].Security.Symbol() != "BETA" {
		t.Errorf("same-day transactions not in symbol order: %s, %s",
			got[0].Security.Symbol(), got[1].Security.Symbol())
	}
	if !got[2].Execution.After(got[1].Execution) {
		t.Error("transactions not in chronological order")
	}
}

func TestLedgerSumsToDate(t *testing.T) {
	l := NewLedger()
	l.Record(buy(t, day(2025, time.January, 2), "ACME", 1, USD(100)))
	l.Record(buy(t, day(2025, time.January, 3), "ACME", 2, USD(100)))
	l.Record(buy(t, day(2025, time.January, 3), "BETA", 5, USD(100)))

	testCases := []struct {
		name       string
		symbol     string
		asOf       Date
		wantShares float64
		wantCap    float64
	}{
		{"before first buy", "ACME", day(2025, time.January, 1), 0, 0},
		{"on first buy", "ACME", day(2025, time.January, 2), 1, 100},
		{"cumulative", "ACME", day(2025, time.January, 3), 3, 200},
		{"after last buy", "ACME", day(2025, time.January, 10), 3, 200},
		{"other symbol", "BETA", day(2025, time.January, 3), 5, 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.SharesToDate(tc.symbol, tc.asOf); !got.Equal(Q(tc.wantShares)) {
				t.Errorf("shares = %s, want %v", got, tc.wantShares)
			}
			got := l.CapitalToDate(tc.symbol, tc.asOf)
			if tc.wantCap == 0 {
				if !got.IsZero() {
					t.Errorf("capital = %s, want zero", got)
				}
				return
			}
			if !got.Equal(USD(tc.wantCap)) {
				t.Errorf("capital = %s, want %v", got, tc.wantCap)
			}
		})
	}

	if got := l.TotalInvested(); !got.Equal(USD(300)) {
		t.Errorf("total invested = %s, want %s", got, USD(300))
	}
}

func TestLedgerSecurities(t *testing.T) {
	l := NewLedger()
	l.Record(buy(t, day(2025, time.January, 2), "ZETA", 1, USD(100)))
	l.Record(buy(t, day(2025, time.January, 3), "ACME", 1, USD(100)))
	l.Record(buy(t, day(2025, time.January, 4), "ZETA", 1, USD(100)))

	secs := l.Securities()
	if len(secs) != 2 {
		t.Fatalf("got %d securities, want 2", len(secs))
	}
	if secs[0].Symbol() != "ACME" || secs[1].Symbol() != "ZETA" {
		t.Errorf("securities not sorted by symbol: %s, %s", secs[0].Symbol(), secs[1].Symbol())
	}
}
