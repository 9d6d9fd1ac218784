// Package ecb implements the exchange-rate source on top of the European
// Central Bank's historical reference rates.
//
// The ECB publishes one CSV file with, for every business day since 1999,
// the value of one euro in each quoted currency. That file is the whole
// rate database: there is no per-request endpoint.
package ecb

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/dcasim"
)

const histURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-hist.zip"

// Rates holds the per-currency rate histories and implements dcasim.RateSource.
type Rates struct {
	histories map[string]*dcasim.History[float64]
}

// Fetch downloads and parses the full historical reference-rate file. The
// download is cached on disk and expires daily.
func Fetch() (*Rates, error) {
	resp, err := dcasim.DailyClient().Get(histURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download ECB reference rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("failed to download ECB reference rates: received status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ECB response body: %w", err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive from ECB response: %w", err)
	}

	for _, f := range zipReader.File {
		if !strings.HasSuffix(f.Name, ".csv") {
			continue
		}
		csvFile, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %q from zip archive: %w", f.Name, err)
		}
		defer csvFile.Close()
		return Parse(csvFile)
	}
	return nil, fmt.Errorf("no csv file found in ECB zip archive")
}

// Parse reads the reference-rate CSV: a Date column followed by one column
// per currency, newest rows first, "N/A" for days a currency was not quoted.
func Parse(r io.Reader) (*Rates, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// trailing commas in the ECB file produce an empty last column
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read ECB csv header: %w", err)
	}
	if len(header) < 2 || header[0] != "Date" {
		return nil, fmt.Errorf("unexpected ECB csv header: %v", header)
	}

	rates := &Rates{histories: make(map[string]*dcasim.History[float64])}
	for i := 1; i < len(header); i++ {
		currency := strings.TrimSpace(header[i])
		if currency == "" {
			continue
		}
		rates.histories[currency] = new(dcasim.History[float64])
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ECB csv record: %w", err)
		}
		day, err := dcasim.ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid date in ECB csv: %w", err)
		}
		for i := 1; i < len(record) && i < len(header); i++ {
			currency := strings.TrimSpace(header[i])
			value := strings.TrimSpace(record[i])
			if currency == "" || value == "" || value == "N/A" {
				continue
			}
			rate, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s rate %q on %s: %w", currency, value, day, err)
			}
			rates.histories[currency].Append(day, rate)
		}
	}
	return rates, nil
}

// Currencies returns the number of currencies with at least one rate.
func (r *Rates) Currencies() int {
	n := 0
	for _, h := range r.histories {
		if h.Len() > 0 {
			n++
		}
	}
	return n
}

// Rate returns how many units of 'currency' one euro buys on the given date.
//
// When the exact date is missing (weekend, holiday, date outside the file's
// bounds) the nearest previous rate substitutes, else the earliest known
// rate; the date actually used is reported so callers can surface the
// approximation. ok is false only for currencies the ECB never quoted.
func (r *Rates) Rate(currency string, on dcasim.Date) (rate float64, used dcasim.Date, ok bool) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == dcasim.AnchorCurrency {
		return 1, on, true
	}
	hist, found := r.histories[currency]
	if !found || hist.Len() == 0 {
		return 0, dcasim.Date{}, false
	}
	if day, value, found := hist.AsOf(on); found {
		return value, day, true
	}
	// The requested date precedes the whole history: fall back on the
	// earliest rate rather than fail.
	day, value, _ := hist.First()
	return value, day, true
}
