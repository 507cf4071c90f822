package parser

import (
	"sort"
	"strings"
	"time"
)

// weekdayNames maps free-text day names and abbreviations to weekdays.
// Full names come first so "saturday" is credited before "sat" would be,
// though duplicates collapse either way.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"sunday", time.Sunday},
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sun", time.Sunday},
	{"mon", time.Monday},
	{"tue", time.Tuesday},
	{"wed", time.Wednesday},
	{"thu", time.Thursday},
	{"fri", time.Friday},
	{"sat", time.Saturday},
}

// LexWeekdays returns the set of weekdays named anywhere in text, sorted
// ascending (Sunday=0). Matching is substring-based and case-insensitive;
// text with no recognized day name yields an empty set, never an error.
func LexWeekdays(text string) []time.Weekday {
	lower := strings.ToLower(text)

	seen := make(map[time.Weekday]bool)
	for _, entry := range weekdayNames {
		if strings.Contains(lower, entry.name) {
			seen[entry.day] = true
		}
	}

	days := make([]time.Weekday, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}
