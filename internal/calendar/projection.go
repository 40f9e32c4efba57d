// Package calendar derives display views from event lists: day and month
// slices for the sidebar and per-day buckets for the month grid. Every
// function is a pure derivation over its input; given the same events it
// returns the same views, and none of them touch storage.
package calendar

import (
	"sort"

	"scheduler/internal/domain"
)

// Sort orders events in place by date ascending, then time ascending.
// Dates are fixed-width ISO strings and times fixed-width 24-hour strings,
// so plain string comparison is calendar comparison. The sort is stable:
// events sharing a date and time keep their incoming order.
func Sort(events []*domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
}

// OnDay returns the events whose date string matches day exactly, sorted by
// time ascending.
func OnDay(events []*domain.Event, day string) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, e := range events {
		if e.Date == day {
			out = append(out, e)
		}
	}
	Sort(out)
	return out
}

// InMonth returns the events falling inside the given month, sorted by date
// then time. month is 0-indexed (0 = January), as the calendar client sends
// it.
func InMonth(events []*domain.Event, month, year int) []*domain.Event {
	filter := domain.EventFilter{Month: &month, Year: &year}
	from, to, ok := filter.DateRange()
	if !ok {
		return []*domain.Event{}
	}
	out := make([]*domain.Event, 0)
	for _, e := range events {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	Sort(out)
	return out
}

// GroupByDay buckets events by their exact date string for grid rendering.
// Events inside each bucket are ordered by time ascending.
func GroupByDay(events []*domain.Event) map[string][]*domain.Event {
	out := make(map[string][]*domain.Event)
	for _, e := range events {
		out[e.Date] = append(out[e.Date], e)
	}
	for _, bucket := range out {
		Sort(bucket)
	}
	return out
}
