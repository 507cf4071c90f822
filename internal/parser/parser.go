// Package parser implements the tiered natural-language event date
// resolution engine: a deterministic pattern battery and generic date
// extractor, with a language-model fallback consulted only when local
// confidence is insufficient.
package parser

import (
	"regexp"
	"strings"
	"time"

	"event-scheduler/internal/models"
)

const maxTitleLength = 100

// eventNounPrefixRe strips leading labels like "Event:" or "Hangout -" from
// titles derived on the generic extraction path.
var eventNounPrefixRe = regexp.MustCompile(`(?i)^(event|hangout|meetup|meeting|party|gathering|get-together)\s*(?:[:\-–—]\s*|$)`)

// ParseEventDescription resolves text into a ParsedEvent using only the
// deterministic local tier. It never fails: input with no recognizable dates
// yields an empty date list and a best-effort title.
func ParseEventDescription(text string) *models.ParsedEvent {
	return ParseEventDescriptionAt(text, time.Now())
}

// ParseEventDescriptionAt is ParseEventDescription with an explicit anchor
// clock for deterministic relative-date resolution.
func ParseEventDescriptionAt(text string, anchor time.Time) *models.ParsedEvent {
	event := &models.ParsedEvent{Raw: text}

	if m := matchPatterns(text, anchor); m != nil {
		event.Dates = dedupeSortDays(m.dates)
		event.Times = m.times
		event.Title = titleBefore(text, m.start)
		return event
	}

	dates, times, firstIndex := extractOccurrences(text, anchor)
	event.Dates = dates
	event.Times = times

	if firstIndex > 0 {
		event.Title = eventNounPrefixRe.ReplaceAllString(titleBefore(text, firstIndex), "")
		event.Title = strings.TrimSpace(event.Title)
	}
	if event.Title == "" {
		event.Title = defaultTitle(text)
	}
	return event
}

// titleBefore derives a title from the input preceding a match offset.
// An empty or overlong prefix falls back to the first five tokens.
func titleBefore(text string, start int) string {
	title := strings.TrimSpace(text[:start])
	title = strings.TrimRight(title, "-–—:,;")
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLength {
		return defaultTitle(text)
	}
	return title
}

// defaultTitle is the first five whitespace-separated tokens of the input.
func defaultTitle(text string) string {
	fields := strings.Fields(text)
	if len(fields) > 5 {
		fields = fields[:5]
	}
	return strings.Join(fields, " ")
}
