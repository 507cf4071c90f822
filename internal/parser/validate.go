package parser

import (
	"strings"
	"time"

	"event-scheduler/internal/models"
)

const maxEventDates = 50

// ValidateParsedEvent checks a ParsedEvent against the output invariants and
// returns every applicable error, not just the first. The check is advisory:
// it never mutates or rejects the event.
func ValidateParsedEvent(event *models.ParsedEvent) models.ValidationResult {
	return ValidateParsedEventAt(event, time.Now())
}

// ValidateParsedEventAt validates against an explicit current moment, so
// past-date checks are deterministic under test.
func ValidateParsedEventAt(event *models.ParsedEvent, now time.Time) models.ValidationResult {
	var errs []string

	title := strings.TrimSpace(event.Title)
	if len(title) < 3 {
		errs = append(errs, "Event title must be at least 3 characters")
	}
	if len(title) > maxTitleLength {
		errs = append(errs, "Event title must be 100 characters or less")
	}

	if len(event.Dates) == 0 {
		errs = append(errs, "At least one date must be specified")
	}
	if len(event.Dates) > maxEventDates {
		errs = append(errs, "Maximum of 50 dates allowed")
	}

	for _, d := range event.Dates {
		if d.Before(now) {
			errs = append(errs, "All dates must be in the future")
			break
		}
	}

	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
