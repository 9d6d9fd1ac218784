package dcasim

import "time"

// Window is a fixed look-back window for performance metrics.
type Window int

const (
	Window1D Window = iota
	Window1W
	Window1M
	Window6M
	WindowYTD
	Window1Y
	Window5Y
	WindowMax
)

// Windows lists all windows in display order.
var Windows = []Window{Window1D, Window1W, Window1M, Window6M, WindowYTD, Window1Y, Window5Y, WindowMax}

func (w Window) String() string {
	switch w {
	case Window1D:
		return "1D"
	case Window1W:
		return "1W"
	case Window1M:
		return "1M"
	case Window6M:
		return "6M"
	case WindowYTD:
		return "YTD"
	case Window1Y:
		return "1Y"
	case Window5Y:
		return "5Y"
	case WindowMax:
		return "MAX"
	default:
		return "?"
	}
}

// cutoff computes the reference date for a window: the latest date minus the
// window length. YTD is January 1 of the latest date's year, clamped to the
// earliest available date; MAX is the earliest available date.
func (w Window) cutoff(latest, earliest Date) Date {
	var c Date
	switch w {
	case Window1D:
		c = latest.Add(-1)
	case Window1W:
		c = latest.Add(-7)
	case Window1M:
		c = latest.AddMonths(-1)
	case Window6M:
		c = latest.AddMonths(-6)
	case WindowYTD:
		c = NewDate(latest.Year(), time.January, 1)
		if c.Before(earliest) {
			c = earliest
		}
	case Window1Y:
		c = latest.AddMonths(-12)
	case Window5Y:
		c = latest.AddMonths(-60)
	case WindowMax:
		c = earliest
	}
	return c
}

// Metric is the change of the portfolio over one window: the gain/loss delta
// and the percentage-point delta between the latest date and the last date
// at or before the window's cutoff.
//
// Valid is false when the investment history is shorter than the window; this
// "not applicable" state is distinct from a zero change.
type Metric struct {
	Gain   Money
	Change Percent
	Valid  bool
}

// Metrics derives the fixed-window deltas from the aggregated development
// rows. Rows must be in chronological order, as produced by BuildDevelopment.
func Metrics(overall []DevelopmentRow) map[Window]Metric {
	metrics := make(map[Window]Metric, len(Windows))
	if len(overall) == 0 {
		for _, w := range Windows {
			metrics[w] = Metric{}
		}
		return metrics
	}
	earliest := overall[0].Date
	last := overall[len(overall)-1]

	for _, w := range Windows {
		cutoff := w.cutoff(last.Date, earliest)
		before, ok := lastRowOnOrBefore(overall, cutoff)
		if !ok {
			metrics[w] = Metric{} // not applicable, history too short
			continue
		}
		metrics[w] = Metric{
			Gain:   last.Gain.Sub(before.Gain),
			Change: last.Return - before.Return,
			Valid:  true,
		}
	}
	return metrics
}

// lastRowOnOrBefore returns the last row whose date is at or before the cutoff.
func lastRowOnOrBefore(rows []DevelopmentRow, cutoff Date) (DevelopmentRow, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if !rows[i].Date.After(cutoff) {
			return rows[i], true
		}
	}
	return DevelopmentRow{}, false
}
