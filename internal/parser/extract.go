package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// dateRecognizer is the shared natural-language date parser. It is
// configuration-only and read-only after construction, so sharing it across
// concurrent parse calls is safe.
var dateRecognizer = newDateRecognizer()

func newDateRecognizer() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// vagueTimeWords are time-of-day words that name a mood, not a date.
// "Movie night" must not produce a candidate date.
var vagueTimeWords = map[string]bool{
	"night":     true,
	"morning":   true,
	"evening":   true,
	"afternoon": true,
}

var (
	// clockTimeRe detects hour-level certainty in a matched substring.
	clockTimeRe = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\b|\b\d{1,2}(:\d{2})?\s*(a\.?m\.?|p\.?m\.?)\b`)

	// dayTokenRe detects day-level certainty: weekday or month names,
	// relative day words, ordinal or numeric dates.
	dayTokenRe = regexp.MustCompile(`(?i)\b(sun(day)?|mon(day)?|tue(s|sday)?|wed(nesday)?|thu(r|rs|rsday)?|fri(day)?|sat(urday)?|today|tonight|tomorrow|yesterday|weekend|jan(uary)?|feb(ruary)?|mar(ch)?|apr(il)?|may|jun(e)?|jul(y)?|aug(ust)?|sep(t|tember)?|oct(ober)?|nov(ember)?|dec(ember)?)\b|\b\d{1,2}(st|nd|rd|th)?\b|\d{4}-\d{2}-\d{2}|\b\d{1,2}/\d{1,2}\b`)
)

// occurrence is one recognized date/time mention in the input.
type occurrence struct {
	index int       // byte offset of the match in the original text
	text  string    // matched substring
	at    time.Time // resolved instant
	day   bool      // day-level certainty
	hour  bool      // hour-level certainty
}

// ExtractDatesTimes pulls explicit dates and clock times out of arbitrary
// prose, resolving relative expressions against anchor. Dates come back
// deduplicated by calendar day and sorted ascending; times are 12-hour
// display strings in first-seen order.
func ExtractDatesTimes(text string, anchor time.Time) ([]time.Time, []string) {
	dates, times, _ := extractOccurrences(text, anchor)
	return dates, times
}

// extractOccurrences additionally reports the byte offset of the first
// retained occurrence (-1 when none), which the caller uses for title
// derivation.
func extractOccurrences(text string, anchor time.Time) ([]time.Time, []string, int) {
	var dates []time.Time
	var times []string
	firstIndex := -1

	offset := 0
	for offset < len(text) {
		result, err := dateRecognizer.Parse(text[offset:], anchor)
		if err != nil || result == nil {
			break
		}

		occ := occurrence{
			index: offset + result.Index,
			text:  result.Text,
			at:    result.Time,
			day:   dayTokenRe.MatchString(result.Text),
			hour:  clockTimeRe.MatchString(result.Text),
		}

		advance := result.Index + len(result.Text)
		if advance <= 0 {
			break
		}
		offset += advance

		// A bare "night"/"morning"/... with no day-certain token is not
		// a date mention.
		if vagueTimeWords[strings.ToLower(strings.TrimSpace(occ.text))] && !occ.day {
			continue
		}

		if firstIndex < 0 {
			firstIndex = occ.index
		}
		dates = append(dates, startOfDay(occ.at))
		if occ.hour {
			times = appendUnique(times, occ.at.Format("3:04 PM"))
		}
	}

	return dedupeSortDays(dates), times, firstIndex
}
