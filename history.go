package dcasim

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a
// specific date. It ensures that dates are unique and the series is always
// sorted.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// First returns the earliest date and value in the history.
// If the history is empty, it returns zero values and false.
func (h *History[T]) First() (day Date, value T, ok bool) {
	if len(h.days) == 0 {
		return Date{}, *new(T), false
	}
	return h.days[0], h.values[0], true
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values and false.
func (h *History[T]) Latest() (day Date, value T, ok bool) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T), false
	}
	return h.days[last], h.values[last], true
}

// search locates 'day' in the sorted days slice.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append adds a point to the history, keeping it sorted.
//
// An existing value at that date is overwritten: the last data wins.
func (h *History[T]) Append(on Date, v T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = v
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value at 'day' and true, or a zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	return *new(T), false
}

// AsOf returns the value on a given day, or the most recent value before it,
// along with the date that actually carries the value.
func (h *History[T]) AsOf(day Date) (used Date, value T, ok bool) {
	i, found := h.search(day)
	if found {
		return h.days[i], h.values[i], true
	}
	// `i` is the insertion index, so the last entry before 'day' is at i-1.
	if i == 0 {
		return Date{}, *new(T), false
	}
	return h.days[i-1], h.values[i-1], true
}

// OnOrAfter returns the value at the first date on or after 'day', along with
// that date. It returns false when no such date exists.
func (h *History[T]) OnOrAfter(day Date) (used Date, value T, ok bool) {
	i, _ := h.search(day)
	if i >= len(h.days) {
		return Date{}, *new(T), false
	}
	return h.days[i], h.values[i], true
}

// Values returns an iterator over all date/value pairs in the history, in
// chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Days returns an iterator over all dates in the history, in chronological order.
func (h *History[T]) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for _, on := range h.days {
			if !yield(on) {
				return
			}
		}
	}
}
