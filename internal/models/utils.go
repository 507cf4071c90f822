package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerateEventID creates a stable short ID for an event based on its title
// and first candidate date. Persistence collaborators use it as a natural key.
func GenerateEventID(title string, firstDate time.Time) string {
	normalizedTitle := strings.ToLower(strings.TrimSpace(title))
	input := fmt.Sprintf("%s|%s", normalizedTitle, firstDate.Format(ISODateFormat))
	hash := sha256.Sum256([]byte(input))
	return "evt_" + hex.EncodeToString(hash[:])[:8]
}

// SameCalendarDay reports whether two instants fall on the same calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ValidateDateRange checks the structural invariants of a DateRange:
// parseable ISO boundaries, Start not after End, weekday indices in [0,6].
func ValidateDateRange(dr DateRange) error {
	start, err := ParseISODate(dr.Start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", dr.Start, err)
	}
	end, err := ParseISODate(dr.End)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", dr.End, err)
	}
	if start.After(end) {
		return fmt.Errorf("start %s after end %s", dr.Start, dr.End)
	}
	for _, d := range dr.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekday index %d out of range [0,6]", d)
		}
	}
	return nil
}
