package dcasim

import (
	"errors"
	"fmt"
)

// Frequency is a recurrence rule for scheduled investments.
type Frequency int

const (
	Monthly Frequency = iota
	Weekly
	Daily
)

func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "periodic"
	}
}

// ParseFrequency parses a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	default:
		return 0, fmt.Errorf("unknown frequency: %q", s)
	}
}

// next returns the nominal date one frequency step after d.
func (f Frequency) next(d Date) Date {
	switch f {
	case Daily:
		return d.Add(1)
	case Weekly:
		return d.Add(7)
	default:
		// Calendar-month addition, clamped, not 30-day addition.
		return d.AddMonths(1)
	}
}

// ErrInvalidSchedule reports that a schedule produces no nominal investment
// date inside the requested range.
var ErrInvalidSchedule = errors.New("no scheduled investment date in range")

// Schedule describes when investments nominally happen.
//
// When DayOfMonth is set (1 to 28), investments happen monthly on that day of
// the month and Every is ignored. Otherwise investments happen at the start
// date and then at every step of the Every frequency.
type Schedule struct {
	DayOfMonth int
	Every      Frequency
}

func (s Schedule) String() string {
	if s.DayOfMonth > 0 {
		return fmt.Sprintf("on day %d of each month", s.DayOfMonth)
	}
	return s.Every.String()
}

// Dates returns the ordered sequence of nominal investment dates within r.
//
// When DayOfMonth is set, the sequence begins at the first occurrence of
// that day on or after r.From, even when r.From is past that day in its own
// month: starting January 20 with day 25 yields January 25, not February 25.
//
// It is a pure function: calling it twice returns the same sequence. The
// result is never empty; when the schedule yields no date within the range
// it returns an error wrapping ErrInvalidSchedule.
func (s Schedule) Dates(r Range) ([]Date, error) {
	if s.DayOfMonth != 0 && (s.DayOfMonth < 1 || s.DayOfMonth > 28) {
		return nil, fmt.Errorf("investment day must be between 1 and 28, got %d", s.DayOfMonth)
	}

	first := r.From
	if s.DayOfMonth > 0 {
		// First occurrence of that day-of-month on or after the start date.
		first = NewDate(r.From.Year(), r.From.Month(), s.DayOfMonth)
		if first.Before(r.From) {
			first = first.AddMonths(1)
		}
	}
	if first.After(r.To) {
		return nil, fmt.Errorf("%w: day %d does not occur between %s and %s",
			ErrInvalidSchedule, s.DayOfMonth, r.From, r.To)
	}

	var dates []Date
	for d := first; !d.After(r.To); {
		dates = append(dates, d)
		if s.DayOfMonth > 0 {
			d = d.AddMonths(1)
		} else {
			d = s.Every.next(d)
		}
	}
	return dates, nil
}
