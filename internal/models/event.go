package models

import "time"

// ParsedEvent is the result of resolving a free-form event description into
// concrete scheduling options. It is built fresh per parse call and never
// persisted by this subsystem.
type ParsedEvent struct {
	Title string `json:"title"`

	// Dates holds the candidate calendar dates, chronologically sorted and
	// deduplicated by calendar day. Clock components are zeroed; display
	// times live in Times.
	Dates []time.Time `json:"dates"`

	// Times holds display-formatted clock strings ("7:00 PM") in the order
	// they were first seen, deduplicated.
	Times []string `json:"times"`

	Description string `json:"description,omitempty"`

	// Raw preserves the original input string.
	Raw string `json:"raw"`
}

// DateRange is the LLM-facing representation of either a single date
// (Start == End, no DaysOfWeek) or a recurring span filtered to specific
// weekdays.
type DateRange struct {
	Start      string   `json:"start"`                // ISO date (YYYY-MM-DD)
	End        string   `json:"end"`                  // ISO date (YYYY-MM-DD), Start <= End
	DaysOfWeek []int    `json:"daysOfWeek,omitempty"` // 0=Sunday .. 6=Saturday
	Times      []string `json:"times,omitempty"`      // display strings, e.g. "7:00 PM"
}

// LLMParsedEvent is the structured response of the language-model fallback
// tier. Confidence is self-reported by the model and is the sole signal the
// arbiter uses to accept or reject the result.
type LLMParsedEvent struct {
	Title       string      `json:"title"`
	DateRanges  []DateRange `json:"dateRanges"`
	Description string      `json:"description,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// ValidationResult reports all output-invariant violations of a ParsedEvent.
// It is advisory: callers decide how to react.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ISODateFormat is the wire format for DateRange boundaries.
const ISODateFormat = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD date string.
func ParseISODate(value string) (time.Time, error) {
	return time.Parse(ISODateFormat, value)
}
