package dcasim

import (
	"errors"
	"testing"
	"time"
)

func TestScheduleMonthlyDayOfMonth(t *testing.T) {
	s := Schedule{DayOfMonth: 15}
	r := Range{From: day(2025, time.January, 1), To: day(2025, time.March, 31)}
	got, err := s.Dates(r)
	if err != nil {
		t.Fatalf("Dates() failed: %v", err)
	}
	want := []Date{
		day(2025, time.January, 15),
		day(2025, time.February, 15),
		day(2025, time.March, 15),
	}
	assertDates(t, got, want)
}

func TestScheduleFirstOccurrenceRolls(t *testing.T) {
	// The 10th of January precedes the range start, so the first nominal
	// date is the 10th of February.
	s := Schedule{DayOfMonth: 10}
	r := Range{From: day(2025, time.January, 20), To: day(2025, time.March, 20)}
	got, err := s.Dates(r)
	if err != nil {
		t.Fatalf("Dates() failed: %v", err)
	}
	want := []Date{
		day(2025, time.February, 10),
		day(2025, time.March, 10),
	}
	assertDates(t, got, want)
}

func TestScheduleDayStillAheadInStartMonth(t *testing.T) {
	// The 25th is still ahead of Jan 20 in January itself, so the first
	// nominal date stays in January; it does not roll to February 25
	// (which would fall past the range end).
	s := Schedule{DayOfMonth: 25}
	r := Range{From: day(2025, time.January, 20), To: day(2025, time.February, 20)}
	got, err := s.Dates(r)
	if err != nil {
		t.Fatalf("Dates() failed: %v", err)
	}
	assertDates(t, got, []Date{day(2025, time.January, 25)})
}

func TestScheduleNeverEmpty(t *testing.T) {
	// The 25th never occurs between Jan 26 and Feb 20.
	s := Schedule{DayOfMonth: 25}
	r := Range{From: day(2025, time.January, 26), To: day(2025, time.February, 20)}
	_, err := s.Dates(r)
	if !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("Dates() = %v, want ErrInvalidSchedule", err)
	}
}

func TestScheduleWeekly(t *testing.T) {
	s := Schedule{Every: Weekly}
	r := Range{From: day(2025, time.January, 2), To: day(2025, time.January, 20)}
	got, err := s.Dates(r)
	if err != nil {
		t.Fatalf("Dates() failed: %v", err)
	}
	want := []Date{
		day(2025, time.January, 2),
		day(2025, time.January, 9),
		day(2025, time.January, 16),
	}
	assertDates(t, got, want)
}

func TestScheduleDaily(t *testing.T) {
	s := Schedule{Every: Daily}
	r := Range{From: day(2025, time.January, 2), To: day(2025, time.January, 4)}
	got, err := s.Dates(r)
	if err != nil {
		t.Fatalf("Dates() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d dates, want 3", len(got))
	}
}

func TestScheduleIsPure(t *testing.T) {
	s := Schedule{DayOfMonth: 15}
	r := Range{From: day(2025, time.January, 1), To: day(2025, time.June, 30)}
	first, err := s.Dates(r)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Dates(r)
	if err != nil {
		t.Fatal(err)
	}
	assertDates(t, second, first)
}

func TestScheduleRejectsLateDays(t *testing.T) {
	s := Schedule{DayOfMonth: 29}
	_, err := s.Dates(Range{From: day(2025, time.January, 1), To: day(2025, time.December, 31)})
	if err == nil {
		t.Fatal("expected an error for day 29")
	}
}

func assertDates(t *testing.T, got, want []Date) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d dates %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("date %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
