package dcasim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AnchorCurrency is the currency the rate source quotes against. The ECB
// reference rates, like the original data set, are all "units per euro".
const AnchorCurrency = "EUR"

// RateSource supplies historical exchange rates against the anchor currency.
//
// Rate returns how many units of 'currency' one unit of the anchor buys on
// the given date. Implementations substitute the nearest known rate rather
// than fail when the exact date is missing, and report the date actually
// used. ok is false only when the currency has no rate history at all.
type RateSource interface {
	Rate(currency string, on Date) (rate float64, used Date, ok bool)
}

// A Note records that a conversion had to fall back on a rate from a
// different date than requested. Notes are informational, never fatal.
type Note struct {
	Currency  string
	Requested Date
	Used      Date
}

func (n Note) String() string {
	return fmt.Sprintf("no %s rate on %s, used rate of %s instead", n.Currency, n.Requested, n.Used)
}

// Converter converts monetary amounts between currencies at historical dates.
//
// It is scoped to a single simulation run: approximate-rate fallbacks are
// accumulated as notes on the converter and surfaced on the run's result.
type Converter struct {
	source RateSource
	notes  []Note
}

// NewConverter returns a Converter backed by the given rate source.
func NewConverter(source RateSource) *Converter {
	return &Converter{source: source}
}

// Convert returns the amount expressed in the target currency using the
// historical rate closest to the given date.
//
// When the amount is already in the target currency it is returned untouched:
// no rate lookup, no rounding. A missing rate for a known currency falls back
// to the nearest available date and is recorded as a note; only a currency
// with no rate history at all is an error.
func (c *Converter) Convert(amount Money, to string, on Date) (Money, error) {
	from := amount.Currency()
	if from == to {
		return amount, nil
	}
	fromRate, err := c.rate(from, on)
	if err != nil {
		return Money{}, err
	}
	toRate, err := c.rate(to, on)
	if err != nil {
		return Money{}, err
	}
	// amount / fromRate is the anchor value, times toRate is the target value.
	value := amount.value.Div(fromRate).Mul(toRate)
	return Money{value: value, cur: to}, nil
}

// rate returns the units-per-anchor rate for a currency as an exact decimal.
func (c *Converter) rate(currency string, on Date) (decimal.Decimal, error) {
	if currency == AnchorCurrency {
		return decimal.NewFromInt(1), nil
	}
	rate, used, ok := c.source.Rate(currency, on)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no exchange rate history for currency %q", currency)
	}
	if used != on {
		c.notes = append(c.notes, Note{Currency: currency, Requested: on, Used: used})
	}
	return decimal.NewFromFloat(rate), nil
}

// Notes returns the fallback notes accumulated so far, in occurrence order.
func (c *Converter) Notes() []Note { return c.notes }
