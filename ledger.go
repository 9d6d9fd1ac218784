package dcasim

import (
	"iter"
	"slices"
	"strings"
)

// Transaction is one executed buy order. It is the ledger's unit: created
// exactly once per scheduled investment that resolves against a price series.
//
// The invariant Execution >= nominal date always holds, and Execution is
// always a trading day present in the security's price series.
type Transaction struct {
	Execution     Date     // actual trading day of the buy
	Security      Security // the security bought
	Shares        Quantity // fractional shares bought
	PriceOriginal Money    // open price, trading currency
	PriceBase     Money    // open price, base currency
	Invested      Money    // capital invested, base currency
}

// Ledger is the authoritative, append-only transaction log of one run.
//
// Transactions are kept in chronological order; no update or delete.
type Ledger struct {
	transactions []Transaction
	keys         map[string]struct{} // (execution date, symbol) pairs already recorded
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{keys: make(map[string]struct{})}
}

func key(on Date, symbol string) string { return on.String() + "|" + symbol }

// Has reports whether a transaction is already recorded for the given
// execution date and symbol. Daily schedules can roll several nominal dates
// forward onto the same market open; the run keeps only the first.
func (l *Ledger) Has(on Date, symbol string) bool {
	_, ok := l.keys[key(on, symbol)]
	return ok
}

// Record appends a transaction. It returns false if a transaction for the
// same (execution date, symbol) pair exists already; first write wins and
// amounts are never summed.
func (l *Ledger) Record(tx Transaction) bool {
	k := key(tx.Execution, tx.Security.Symbol())
	if _, ok := l.keys[k]; ok {
		return false
	}
	l.keys[k] = struct{}{}
	// Insert keeping chronological order; same-day entries keep symbol order.
	i, _ := slices.BinarySearchFunc(l.transactions, tx, func(a, b Transaction) int {
		if c := a.Execution.Compare(b.Execution); c != 0 {
			return c
		}
		return strings.Compare(a.Security.Symbol(), b.Security.Symbol())
	})
	l.transactions = slices.Insert(l.transactions, i, tx)
	return true
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions iterates over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Securities returns the distinct securities with at least one transaction,
// sorted by symbol.
func (l *Ledger) Securities() []Security {
	seen := make(map[string]Security)
	for _, tx := range l.transactions {
		seen[tx.Security.Symbol()] = tx.Security
	}
	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	secs := make([]Security, 0, len(symbols))
	for _, s := range symbols {
		secs = append(secs, seen[s])
	}
	return secs
}

// SharesToDate sums the shares bought for a security up to and including a
// date. The sum is exact: no rounding happens before summation.
func (l *Ledger) SharesToDate(symbol string, asOf Date) Quantity {
	total := Q(0)
	for _, tx := range l.transactions {
		if tx.Execution.After(asOf) {
			break // chronological order, nothing left to sum
		}
		if tx.Security.Symbol() == symbol {
			total = total.Add(tx.Shares)
		}
	}
	return total
}

// CapitalToDate sums the capital invested in a security up to and including a
// date, in base currency. The sum is exact.
func (l *Ledger) CapitalToDate(symbol string, asOf Date) Money {
	var total Money
	for _, tx := range l.transactions {
		if tx.Execution.After(asOf) {
			break
		}
		if tx.Security.Symbol() == symbol {
			total = total.Add(tx.Invested)
		}
	}
	return total
}

// TotalInvested sums the capital invested across all securities, in base currency.
func (l *Ledger) TotalInvested() Money {
	var total Money
	for _, tx := range l.transactions {
		total = total.Add(tx.Invested)
	}
	return total
}
