package yahoo

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dcasim"
	"github.com/shopspring/decimal"
)

// This file parses the v8 chart JSON payload. The interesting parts:
//
//	{
//	  "chart": {
//	    "result": [{
//	      "meta": {"currency": "USD", "symbol": "AAPL",
//	               "instrumentType": "EQUITY", "longName": "Apple Inc."},
//	      "timestamp": [1704205800, ...],
//	      "events": {"dividends": {"1707485400": {"amount": 0.24, "date": 1707485400}}},
//	      "indicators": {"quote": [{"open": [187.15, ...], "close": [185.64, ...]}]}
//	    }],
//	    "error": null
//	  }
//	}

func decode(body []byte) (any, error) {
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, err
	}
	return jobj, nil
}

// pick resolves a jsonpath and unwraps the single-answer list that the
// library sometimes returns instead of a single answer.
func pick(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, err
	}
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		return jlist[0], nil
	}
	return jval, nil
}

// pickString resolves a jsonpath into a string, "" when absent.
func pickString(jobj any, path string) string {
	jval, err := pick(jobj, path)
	if err != nil {
		return ""
	}
	s, _ := jval.(string)
	return s
}

// pickList resolves a jsonpath into a list, nil when absent.
func pickList(jobj any, path string) []any {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil
	}
	jlist, _ := jval.([]any)
	return jlist
}

// parseMeta extracts the security description from the chart's meta block.
// The long name is preferred, then the short name, then the symbol itself.
func parseMeta(jobj any) (dcasim.Security, error) {
	symbol := pickString(jobj, "$.chart.result[0].meta.symbol")
	if symbol == "" {
		return dcasim.Security{}, errNoResult
	}
	name := pickString(jobj, "$.chart.result[0].meta.longName")
	if name == "" {
		name = pickString(jobj, "$.chart.result[0].meta.shortName")
	}
	if name == "" {
		name = symbol
	}
	currency := pickString(jobj, "$.chart.result[0].meta.currency")
	if currency == "" {
		return dcasim.Security{}, fmt.Errorf("no trading currency reported for %s", symbol)
	}
	kind := pickString(jobj, "$.chart.result[0].meta.instrumentType")
	return dcasim.NewSecurity(symbol, name, currency, kind), nil
}

// parseSeries extracts the daily candles and dividend events.
//
// Yahoo pads the quote arrays with nulls on half-session or suspended days;
// such days carry no usable price and are skipped.
func parseSeries(jobj any) (*dcasim.PriceSeries, error) {
	series := new(dcasim.PriceSeries)

	timestamps := pickList(jobj, "$.chart.result[0].timestamp")
	if timestamps == nil {
		// A valid symbol with no trading activity in range: empty, not an error.
		return series, nil
	}
	opens := pickList(jobj, "$.chart.result[0].indicators.quote[0].open")
	closes := pickList(jobj, "$.chart.result[0].indicators.quote[0].close")
	if len(opens) != len(timestamps) || len(closes) != len(timestamps) {
		return nil, fmt.Errorf("chart quote arrays do not match timestamps: %d opens, %d closes, %d days",
			len(opens), len(closes), len(timestamps))
	}

	dividends := parseDividends(jobj)

	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			return nil, fmt.Errorf("invalid timestamp %v", jts)
		}
		open, okOpen := opens[i].(float64)
		clos, okClose := closes[i].(float64)
		if !okOpen || !okClose {
			continue // null quote, no usable price that day
		}
		day := dayOf(int64(ts))
		candle := dcasim.Candle{
			Open:     decimal.NewFromFloat(open),
			Close:    decimal.NewFromFloat(clos),
			Dividend: dividends[day],
		}
		series.Append(day, candle)
	}
	return series, nil
}

// parseDividends collects the per-day dividend amounts from the events block.
func parseDividends(jobj any) map[dcasim.Date]decimal.Decimal {
	dividends := make(map[dcasim.Date]decimal.Decimal)
	jval, err := jsonpath.Get("$.chart.result[0].events.dividends", jobj)
	if err != nil {
		return dividends // no dividend in range
	}
	jmap, ok := jval.(map[string]any)
	if !ok {
		return dividends
	}
	for _, jevent := range jmap {
		event, ok := jevent.(map[string]any)
		if !ok {
			continue
		}
		amount, okAmount := event["amount"].(float64)
		ts, okDate := event["date"].(float64)
		if !okAmount || !okDate {
			continue
		}
		day := dayOf(int64(ts))
		// a same-day split of the event is not expected, last write wins
		dividends[day] = decimal.NewFromFloat(amount)
	}
	return dividends
}
