package dcasim

import (
	"testing"
	"time"
)

func TestAddMonthsClamps(t *testing.T) {
	testCases := []struct {
		name string
		from Date
		n    int
		want Date
	}{
		{"regular month", day(2024, time.January, 15), 1, day(2024, time.February, 15)},
		{"jan 31 clamps to feb 29 on leap years", day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{"jan 31 clamps to feb 28", day(2025, time.January, 31), 1, day(2025, time.February, 28)},
		{"may 31 clamps to jun 30", day(2025, time.May, 31), 1, day(2025, time.June, 30)},
		{"across year boundary", day(2024, time.November, 30), 3, day(2025, time.February, 28)},
		{"backwards", day(2025, time.March, 31), -1, day(2025, time.February, 28)},
		{"five years back", day(2025, time.February, 28), -60, day(2020, time.February, 28)},
		{"zero", day(2025, time.January, 31), 0, day(2025, time.January, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.AddMonths(tc.n); got != tc.want {
				t.Errorf("%s.AddMonths(%d) = %s, want %s", tc.from, tc.n, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d != day(2025, time.January, 2) {
		t.Errorf("got %s", d)
	}
	if _, err := ParseDate("not a date"); err == nil {
		t.Error("expected an error for an invalid date")
	}
}

func TestDateCompare(t *testing.T) {
	a, b := day(2025, time.January, 2), day(2025, time.January, 3)
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Errorf("Compare ordering is wrong: %d %d %d", a.Compare(b), b.Compare(a), a.Compare(a))
	}
	if !a.Before(b) || !b.After(a) {
		t.Error("Before/After disagree with Compare")
	}
}

func TestRangeDays(t *testing.T) {
	r := Range{From: day(2025, time.January, 30), To: day(2025, time.February, 2)}
	var got []Date
	for d := range r.Days() {
		got = append(got, d)
	}
	want := []Date{
		day(2025, time.January, 30),
		day(2025, time.January, 31),
		day(2025, time.February, 1),
		day(2025, time.February, 2),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d days, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNewRangeSwaps(t *testing.T) {
	r := NewRange(day(2025, time.March, 1), day(2025, time.January, 1))
	if r.From != day(2025, time.January, 1) || r.To != day(2025, time.March, 1) {
		t.Errorf("NewRange did not order its bounds: %s", r)
	}
}
