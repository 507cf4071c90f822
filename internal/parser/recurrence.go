package parser

import (
	"sort"
	"time"

	"event-scheduler/internal/models"
)

// ExpandRecurrence enumerates every calendar date in [start, end] (inclusive)
// whose weekday is in days. An empty weekday set or start > end yields an
// empty result; neither is an error. The walk advances one calendar day at a
// time, so month lengths and leap years are handled by construction.
func ExpandRecurrence(start, end time.Time, days []time.Weekday) []time.Time {
	if len(days) == 0 {
		return nil
	}

	want := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		want[d] = true
	}

	var dates []time.Time
	last := startOfDay(end)
	for d := startOfDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		if want[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

// startOfDay truncates an instant to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday beginning the week containing t.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// dedupeSortDays sorts dates ascending and drops entries sharing a calendar
// day with an earlier one.
func dedupeSortDays(dates []time.Time) []time.Time {
	if len(dates) == 0 {
		return dates
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	out := sorted[:1]
	for _, d := range sorted[1:] {
		if !models.SameCalendarDay(d, out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}

// appendUnique appends value to list unless already present, preserving
// insertion order.
func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
