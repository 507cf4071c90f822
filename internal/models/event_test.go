package models

import (
	"strings"
	"testing"
	"time"
)

// TestGenerateEventID tests ID stability and shape
func TestGenerateEventID(t *testing.T) {
	firstDate := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	id := GenerateEventID("Board game night", firstDate)
	if !strings.HasPrefix(id, "evt_") {
		t.Errorf("Expected evt_ prefix, got %q", id)
	}
	if len(id) != len("evt_")+8 {
		t.Errorf("Expected 8 hash characters, got %q", id)
	}

	if again := GenerateEventID("  BOARD GAME NIGHT ", firstDate); again != id {
		t.Errorf("Expected case/space-insensitive stability, got %q vs %q", id, again)
	}
	if other := GenerateEventID("Board game night", firstDate.AddDate(0, 0, 7)); other == id {
		t.Error("Expected different dates to produce different IDs")
	}
}

// TestSameCalendarDay tests calendar-day identity
func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 14, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	if !SameCalendarDay(morning, evening) {
		t.Error("Expected same calendar day for different clock times")
	}
	if SameCalendarDay(evening, nextDay) {
		t.Error("Expected different calendar days")
	}
}

// TestValidateDateRange tests the structural DateRange invariants
func TestValidateDateRange(t *testing.T) {
	testCases := []struct {
		name        string
		dr          DateRange
		expectError bool
	}{
		{
			name:        "Single date",
			dr:          DateRange{Start: "2025-03-14", End: "2025-03-14"},
			expectError: false,
		},
		{
			name:        "Recurring span",
			dr:          DateRange{Start: "2025-03-01", End: "2025-03-31", DaysOfWeek: []int{0, 6}},
			expectError: false,
		},
		{
			name:        "Bad start format",
			dr:          DateRange{Start: "03/14/2025", End: "2025-03-14"},
			expectError: true,
		},
		{
			name:        "Bad end format",
			dr:          DateRange{Start: "2025-03-14", End: "soon"},
			expectError: true,
		},
		{
			name:        "Start after end",
			dr:          DateRange{Start: "2025-03-21", End: "2025-03-14"},
			expectError: true,
		},
		{
			name:        "Weekday index too large",
			dr:          DateRange{Start: "2025-03-01", End: "2025-03-31", DaysOfWeek: []int{7}},
			expectError: true,
		},
		{
			name:        "Negative weekday index",
			dr:          DateRange{Start: "2025-03-01", End: "2025-03-31", DaysOfWeek: []int{-1}},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDateRange(tc.dr)
			if tc.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tc.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}
