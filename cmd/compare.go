package cmd

import (
	"fmt"

	"github.com/etnz/dcasim"
	"github.com/etnz/dcasim/cpi"
)

// comparisons computes the requested baseline series for a completed run.
func comparisons(s *session, lumpSum, inflation bool) (ls, infl []dcasim.ComparisonPoint, err error) {
	if lumpSum {
		ls, err = dcasim.LumpSum(s.result, s.dev, s.market, s.converter)
		if err != nil {
			return nil, nil, fmt.Errorf("lump sum comparison: %w", err)
		}
	}
	if inflation {
		index, err := cpi.Fetch()
		if err != nil {
			return nil, nil, fmt.Errorf("fetching inflation index: %w", err)
		}
		infl, err = dcasim.InflationAdjusted(s.result, s.converter, index)
		if err != nil {
			return nil, nil, fmt.Errorf("inflation comparison: %w", err)
		}
	}
	return ls, infl, nil
}
