package dcasim

import "github.com/shopspring/decimal"

// Execution is the resolved outcome of one scheduled investment: the trading
// day the buy order executes and the open price on that day, in the
// security's trading currency.
type Execution struct {
	Date Date
	Open decimal.Decimal
}

// ResolveExecution determines when a buy scheduled on the nominal date would
// actually execute against a security's price series.
//
// If the nominal date is a trading day, the order executes that day at the
// open. Otherwise it executes at the next market open: the first trading day
// strictly after the nominal date. When the series has no trading day at or
// after the nominal date, the order is unresolvable and ok is false; this is
// not an error, the caller records a warning and moves on.
func ResolveExecution(nominal Date, series *PriceSeries) (ex Execution, ok bool) {
	day, candle, found := series.OnOrAfter(nominal)
	if !found {
		return Execution{}, false
	}
	return Execution{Date: day, Open: candle.Open}, true
}
