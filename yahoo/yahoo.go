// Package yahoo implements the market-data provider on top of Yahoo
// Finance's public v8 chart API.
//
// One chart request carries everything the simulator needs for a symbol:
// daily open/close prices, dividend events, and the metadata (trading
// currency, display name, instrument type).
package yahoo

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/etnz/dcasim"
)

// Client implements dcasim.Provider.
type Client struct {
	http *http.Client
}

// New returns a Client with a daily-expiring disk cache, so that re-running
// the same simulation within a day never re-downloads the same series.
func New() *Client { return &Client{http: dcasim.DailyClient()} }

// Fetch returns the daily price and dividend series of a symbol within a range.
//
// A valid symbol with no trading activity in range yields an empty series.
// An unknown symbol yields an error wrapping dcasim.ErrNotFound.
func (c *Client) Fetch(symbol string, r dcasim.Range) (*dcasim.PriceSeries, error) {
	// https://query1.finance.yahoo.com/v8/finance/chart/AAPL?period1=...&period2=...&interval=1d&events=div
	// period2 is exclusive, so one day is added to include the range's end.
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div",
		baseURL, url.PathEscape(symbol), r.From.Unix(), r.To.Add(1).Unix())

	jobj, err := c.chart(addr, symbol)
	if err != nil {
		return nil, err
	}
	return parseSeries(jobj)
}

// Metadata resolves a symbol into its security description. It uses a
// minimal one-day chart request: the v8 meta block carries the currency,
// names and instrument type.
func (c *Client) Metadata(symbol string) (dcasim.Security, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", baseURL, url.PathEscape(symbol))

	jobj, err := c.chart(addr, symbol)
	if err != nil {
		return dcasim.Security{}, err
	}
	return parseMeta(jobj)
}

var baseURL = "https://query1.finance.yahoo.com"

// chart performs the HTTP GET and decodes the JSON payload. Yahoo answers
// unknown symbols with a 404 and an error payload, which is mapped to
// dcasim.ErrNotFound.
func (c *Client) chart(addr, symbol string) (any, error) {
	resp, err := c.http.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", dcasim.ErrNotFound, symbol)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chart response for %s: %w", symbol, err)
	}
	jobj, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding chart response for %s: %w", symbol, err)
	}
	return jobj, nil
}

// dayOf maps a chart timestamp (seconds, exchange local session) to a calendar date.
func dayOf(ts int64) dcasim.Date {
	return dcasim.NewDate(time.Unix(ts, 0).UTC().Date())
}

var errNoResult = errors.New("chart response has no result")
