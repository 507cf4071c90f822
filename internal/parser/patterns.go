package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// patternMatch is the outcome of one specialized recognizer: the dates and
// times it resolved plus the byte offset where the matched phrasing begins,
// used for title derivation.
type patternMatch struct {
	dates []time.Time
	times []string
	start int
}

// patternRule pairs a compiled recognizer with its handler. The handler may
// return nil to decline the match (e.g. no recognizable day names), in which
// case evaluation falls through to the next rule.
type patternRule struct {
	name   string
	re     *regexp.Regexp
	handle func(text string, m []int, anchor time.Time) *patternMatch
}

// patternRules is evaluated in order, first match wins. Precedence is part of
// the contract: "weekends over next 3 weeks" must be claimed by the
// weekends-for-next rule before anything more generic sees it.
var patternRules = []patternRule{
	{
		name:   "weekends-for-next",
		re:     regexp.MustCompile(`(?i)\bweekends\s+(?:for|over)\s+(?:the\s+)?next\s+(\d+)\s+(months?|weeks?)`),
		handle: handleWeekendsForNext,
	},
	{
		name:   "every-day-this-next",
		re:     regexp.MustCompile(`(?i)\bevery\s+([a-z]+(?:\s*(?:,|and)\s+[a-z]+)*?)\s+(this|next)(\s+and\s+next)?\s+(week|month)\b`),
		handle: handleEveryDayThisNext,
	},
	{
		// Recognizes exactly one selector word before "in", so a multi-day
		// list ("fridays and saturdays in january") falls through to generic
		// extraction.
		name:   "every-day-in-month",
		re:     regexp.MustCompile(`(?i)\bevery\s+(weekends?|weekdays?|[a-z]+?)s?\s+in\s+(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?(?:\s+(\d{4}))?`),
		handle: handleEveryDayInMonth,
	},
}

// matchPatterns runs the ordered battery against text and returns the first
// accepted match, or nil when every rule declines.
func matchPatterns(text string, anchor time.Time) *patternMatch {
	for _, rule := range patternRules {
		m := rule.re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		if result := rule.handle(text, m, anchor); result != nil {
			return result
		}
	}
	return nil
}

// submatch extracts capture group i from a FindStringSubmatchIndex result.
func submatch(text string, m []int, i int) string {
	lo, hi := m[2*i], m[2*i+1]
	if lo < 0 {
		return ""
	}
	return text[lo:hi]
}

// handleWeekendsForNext resolves "weekends (for|over) (the) next N
// months|weeks": Saturdays and Sundays from the anchor day through the end of
// the span.
func handleWeekendsForNext(text string, m []int, anchor time.Time) *patternMatch {
	n, err := strconv.Atoi(submatch(text, m, 1))
	if err != nil || n <= 0 {
		return nil
	}

	start := startOfDay(anchor)
	var end time.Time
	if strings.HasPrefix(strings.ToLower(submatch(text, m, 2)), "month") {
		end = start.AddDate(0, n, 0)
	} else {
		end = start.AddDate(0, 0, 7*n)
	}

	return &patternMatch{
		dates: ExpandRecurrence(start, end, []time.Weekday{time.Sunday, time.Saturday}),
		start: m[0],
	}
}

// handleEveryDayThisNext resolves "every <day> (and <day>)* (this|next)
// (and next)? (week|month)". Weeks start on Sunday; "and next" appends the
// following period and the combined list is re-sorted and deduplicated.
func handleEveryDayThisNext(text string, m []int, anchor time.Time) *patternMatch {
	days := LexWeekdays(submatch(text, m, 1))
	if len(days) == 0 {
		return nil
	}

	which := strings.ToLower(submatch(text, m, 2))
	andNext := submatch(text, m, 3) != ""
	unit := strings.ToLower(submatch(text, m, 4))

	var start, end, nextStart, nextEnd time.Time
	if unit == "month" {
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		if which == "next" {
			start = start.AddDate(0, 1, 0)
		}
		end = start.AddDate(0, 1, -1)
		nextStart = start.AddDate(0, 1, 0)
		nextEnd = nextStart.AddDate(0, 1, -1)
	} else {
		start = startOfWeek(anchor)
		if which == "next" {
			start = start.AddDate(0, 0, 7)
		}
		end = start.AddDate(0, 0, 6)
		nextStart = start.AddDate(0, 0, 7)
		nextEnd = nextStart.AddDate(0, 0, 6)
	}

	dates := ExpandRecurrence(start, end, days)
	if andNext {
		dates = append(dates, ExpandRecurrence(nextStart, nextEnd, days)...)
		dates = dedupeSortDays(dates)
	}

	return &patternMatch{dates: dates, start: m[0]}
}

// handleEveryDayInMonth resolves "every (weekend|weekday|<day>) in
// <month (year)?>": the selector expanded over the first through last
// calendar day of the named month.
func handleEveryDayInMonth(text string, m []int, anchor time.Time) *patternMatch {
	var days []time.Weekday
	switch selector := strings.ToLower(submatch(text, m, 1)); {
	case strings.HasPrefix(selector, "weekend"):
		days = []time.Weekday{time.Sunday, time.Saturday}
	case strings.HasPrefix(selector, "weekday"):
		days = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	default:
		days = LexWeekdays(selector)
		if len(days) != 1 {
			return nil
		}
	}

	first := resolveMonth(submatch(text, m, 2), submatch(text, m, 3), anchor)
	last := first.AddDate(0, 1, -1)

	return &patternMatch{
		dates: ExpandRecurrence(first, last, days),
		start: m[0],
	}
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// resolveMonth returns the first day of the named month. Without an explicit
// year, a month earlier than the anchor's resolves to next year.
func resolveMonth(name, yearText string, anchor time.Time) time.Time {
	month := monthsByName[strings.ToLower(name)]

	year := anchor.Year()
	if yearText != "" {
		if y, err := strconv.Atoi(yearText); err == nil {
			year = y
		}
	} else if month < anchor.Month() {
		year++
	}

	return time.Date(year, month, 1, 0, 0, 0, 0, anchor.Location())
}
