package dcasim

import (
	"testing"
	"time"
)

func overallRow(on Date, gain float64, ret Percent) DevelopmentRow {
	return DevelopmentRow{Date: on, Symbol: Overall, Gain: USD(gain), Return: ret}
}

func TestMetricsWindows(t *testing.T) {
	// History from Dec 20 to Jan 10: long enough for 1D, 1W, YTD and MAX,
	// too short for every month-based window.
	overall := []DevelopmentRow{
		overallRow(day(2024, time.December, 20), 0, 0),
		overallRow(day(2024, time.December, 31), 5, 1),
		overallRow(day(2025, time.January, 9), 8, 1.6),
		overallRow(day(2025, time.January, 10), 10, 2),
	}
	metrics := Metrics(overall)

	testCases := []struct {
		window     Window
		wantValid  bool
		wantGain   float64
		wantChange Percent
	}{
		{Window1D, true, 2, 0.4},  // vs Jan 9
		{Window1W, true, 5, 1},    // cutoff Jan 3, reference Dec 31
		{Window1M, false, 0, 0},   // cutoff Dec 10 precedes the history
		{Window6M, false, 0, 0},
		{WindowYTD, true, 5, 1},   // cutoff Jan 1, reference Dec 31
		{Window1Y, false, 0, 0},
		{Window5Y, false, 0, 0},
		{WindowMax, true, 10, 2},  // vs the Dec 20 row
	}
	for _, tc := range testCases {
		t.Run(tc.window.String(), func(t *testing.T) {
			m := metrics[tc.window]
			if m.Valid != tc.wantValid {
				t.Fatalf("valid = %v, want %v", m.Valid, tc.wantValid)
			}
			if !m.Valid {
				return
			}
			if !m.Gain.Equal(USD(tc.wantGain)) {
				t.Errorf("gain = %s, want %v", m.Gain, tc.wantGain)
			}
			if !m.Change.Equal(tc.wantChange) {
				t.Errorf("change = %s, want %s", m.Change, tc.wantChange)
			}
		})
	}
}

func TestMetricsYTDClampsToEarliest(t *testing.T) {
	// The whole history lives inside the current year: YTD clamps to the
	// earliest row and equals MAX.
	overall := []DevelopmentRow{
		overallRow(day(2025, time.March, 3), 0, 0),
		overallRow(day(2025, time.March, 7), 4, 2),
	}
	metrics := Metrics(overall)

	ytd, max := metrics[WindowYTD], metrics[WindowMax]
	if !ytd.Valid || !max.Valid {
		t.Fatalf("YTD valid=%v MAX valid=%v, want both valid", ytd.Valid, max.Valid)
	}
	if !ytd.Gain.Equal(max.Gain) || !ytd.Change.Equal(max.Change) {
		t.Errorf("YTD %+v differs from MAX %+v", ytd, max)
	}
	if !max.Gain.Equal(USD(4)) {
		t.Errorf("MAX gain = %s, want 4", max.Gain)
	}
}

func TestMetricsEmptyHistory(t *testing.T) {
	metrics := Metrics(nil)
	if len(metrics) != len(Windows) {
		t.Fatalf("got %d metrics, want %d", len(metrics), len(Windows))
	}
	for _, w := range Windows {
		if metrics[w].Valid {
			t.Errorf("window %s valid on an empty history", w)
		}
	}
}

func TestMetricsOneDayHistory(t *testing.T) {
	// A single row: every trailing window except YTD and MAX is not
	// applicable, and those two report a zero delta against the row itself.
	overall := []DevelopmentRow{overallRow(day(2025, time.March, 3), 7, 3)}
	metrics := Metrics(overall)

	for _, w := range []Window{Window1D, Window1W, Window1M, Window6M, Window1Y, Window5Y} {
		if metrics[w].Valid {
			t.Errorf("window %s must not be applicable", w)
		}
	}
	for _, w := range []Window{WindowYTD, WindowMax} {
		m := metrics[w]
		if !m.Valid {
			t.Fatalf("window %s must be applicable", w)
		}
		if !m.Gain.Equal(USD(0)) || !m.Change.Equal(0) {
			t.Errorf("window %s = %+v, want zero deltas", w, m)
		}
	}
}
