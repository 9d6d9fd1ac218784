// Package cpi implements the inflation index on top of the US Bureau of
// Labor Statistics CPI-U series (all urban consumers, all items).
//
// The reference currency of the index is the US dollar: amounts in other
// currencies must be converted before a lookup.
package cpi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/dcasim"
)

const (
	dataURL = "https://download.bls.gov/pub/time.series/cu/cu.data.1.AllItems"
	// CUUR0000SA0 is the not-seasonally-adjusted US city average, all items.
	seriesID = "CUUR0000SA0"
)

type month struct {
	year  int
	month time.Month
}

// Series holds the monthly index values and implements dcasim.Index.
type Series struct {
	values map[month]float64
}

// Fetch downloads and parses the CPI-U index. The download is cached on disk
// and expires daily.
func Fetch() (*Series, error) {
	resp, err := dcasim.DailyClient().Get(dataURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download CPI data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("failed to download CPI data: received status %s", resp.Status)
	}
	return Parse(resp.Body)
}

// Parse reads the BLS flat file: tab-separated columns
// series_id, year, period, value, with period "M01" to "M12" for months
// ("M13" is the annual average and is skipped).
func Parse(r io.Reader) (*Series, error) {
	series := &Series{values: make(map[month]float64)}

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false // header line
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 || fields[0] != seriesID {
			continue
		}
		period := fields[2]
		if !strings.HasPrefix(period, "M") || period == "M13" {
			continue
		}
		year, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid year in CPI data %q: %w", line, err)
		}
		m, err := strconv.Atoi(period[1:])
		if err != nil || m < 1 || m > 12 {
			return nil, fmt.Errorf("invalid period in CPI data %q", line)
		}
		value, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value in CPI data %q: %w", line, err)
		}
		series.values[month{year, time.Month(m)}] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan CPI data: %w", err)
	}
	if len(series.values) == 0 {
		return nil, fmt.Errorf("no %s observations found in CPI data", seriesID)
	}
	return series, nil
}

// Len returns the number of monthly observations.
func (s *Series) Len() int { return len(s.values) }

// Value returns the index value for a calendar month, false when the month
// is not published (typically the most recent ones).
func (s *Series) Value(year int, m time.Month) (float64, bool) {
	v, ok := s.values[month{year, m}]
	return v, ok
}
