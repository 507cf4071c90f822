package parser

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestSmartParser(inference Inference) *SmartParser {
	p := NewSmartParser(NewLLMResolver(inference))
	p.now = func() time.Time { return anchorWednesday }
	return p
}

// TestSmartParser_FastPathShortCircuit tests that a locally confident parse
// never consults the fallback tier
func TestSmartParser_FastPathShortCircuit(t *testing.T) {
	fake := &fakeInference{response: `{"title": "never used", "dateRanges": [{"start": "2025-01-20", "end": "2025-01-20"}], "confidence": 0.99}`}
	p := newTestSmartParser(fake)

	event := p.Parse(context.Background(), "Party weekends over next 3 weeks")

	if len(event.Dates) == 0 {
		t.Fatal("Expected local dates, got none")
	}
	if event.Title != "Party" {
		t.Errorf("Expected local title %q, got %q", "Party", event.Title)
	}
	if fake.calls != 0 {
		t.Errorf("Expected 0 fallback calls, got %d", fake.calls)
	}

	snapshot := p.Metrics().Snapshot()
	if snapshot.FastPathHits != 1 || snapshot.FallbackInvocations != 0 {
		t.Errorf("Unexpected metrics: %+v", snapshot)
	}
}

// TestSmartParser_FallbackAccepted tests escalation when the local tier has
// no dates and the model is confident
func TestSmartParser_FallbackAccepted(t *testing.T) {
	fake := &fakeInference{response: `{"title": "Team offsite", "dateRanges": [{"start": "2025-02-03", "end": "2025-02-07", "daysOfWeek": [1, 3], "times": ["9:00 AM"]}], "confidence": 0.9}`}
	p := newTestSmartParser(fake)

	event := p.Parse(context.Background(), "that offsite thing we talked about")

	if fake.calls != 1 {
		t.Fatalf("Expected 1 fallback call, got %d", fake.calls)
	}
	if event.Title != "Team offsite" {
		t.Errorf("Expected fallback title, got %q", event.Title)
	}
	// Feb 3 2025 is a Monday; Mondays+Wednesdays in Feb 3-7: Feb 3, Feb 5.
	if len(event.Dates) != 2 {
		t.Errorf("Expected 2 expanded dates, got %d: %v", len(event.Dates), event.Dates)
	}
	if len(event.Times) != 1 || event.Times[0] != "9:00 AM" {
		t.Errorf("Expected times [9:00 AM], got %v", event.Times)
	}
	if event.Raw != "that offsite thing we talked about" {
		t.Errorf("Raw input not preserved: %q", event.Raw)
	}

	snapshot := p.Metrics().Snapshot()
	if snapshot.FallbackInvocations != 1 || snapshot.FallbackAccepted != 1 {
		t.Errorf("Unexpected metrics: %+v", snapshot)
	}
}

// TestSmartParser_LowConfidenceRejected tests that an unconfident model
// result is discarded in favor of the local parse
func TestSmartParser_LowConfidenceRejected(t *testing.T) {
	fake := &fakeInference{response: `{"title": "Guess", "dateRanges": [{"start": "2025-02-03", "end": "2025-02-03"}], "confidence": 0.4}`}
	p := newTestSmartParser(fake)

	event := p.Parse(context.Background(), "some vague plan maybe")

	if fake.calls != 1 {
		t.Fatalf("Expected 1 fallback call, got %d", fake.calls)
	}
	if event.Title != "some vague plan maybe" {
		t.Errorf("Expected local title, got %q", event.Title)
	}
	if len(event.Dates) != 0 {
		t.Errorf("Expected no dates from local tier, got %v", event.Dates)
	}
}

// TestSmartParser_FallbackFailureDegradesGracefully tests that a failing
// fallback never prevents a result
func TestSmartParser_FallbackFailureDegradesGracefully(t *testing.T) {
	fake := &fakeInference{err: errors.New("rate limited")}
	p := newTestSmartParser(fake)

	event := p.Parse(context.Background(), "totally undated gibberish text")

	if event == nil {
		t.Fatal("Expected a result despite fallback failure")
	}
	if event.Title != "totally undated gibberish text" {
		t.Errorf("Expected local best-effort title, got %q", event.Title)
	}
	if len(event.Dates) != 0 {
		t.Errorf("Expected no dates, got %v", event.Dates)
	}

	snapshot := p.Metrics().Snapshot()
	if snapshot.FallbackFailures != 1 {
		t.Errorf("Expected 1 recorded fallback failure, got %+v", snapshot)
	}
}

// TestSmartParser_NoFallbackConfigured tests the pure local configuration
func TestSmartParser_NoFallbackConfigured(t *testing.T) {
	p := NewSmartParser(nil)
	p.now = func() time.Time { return anchorWednesday }

	event := p.Parse(context.Background(), "no dates in here at all")

	if event == nil {
		t.Fatal("Expected a result without any fallback configured")
	}
	snapshot := p.Metrics().Snapshot()
	if snapshot.FallbackFailures != 0 {
		t.Errorf("Unavailable capability must not count as a failure: %+v", snapshot)
	}
}

// TestLocalConfidence tests the heuristic scoring tiers
func TestLocalConfidence(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
	}{
		{
			name:     "Dates and well-formed title",
			input:    "Party weekends over next 3 weeks",
			expected: 0.9,
		},
		{
			name:     "Dates but degenerate title",
			input:    "Hi every friday in march",
			expected: 0.7,
		},
		{
			name:     "No dates",
			input:    "nothing to see here folks",
			expected: 0.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event := ParseEventDescriptionAt(tc.input, anchorWednesday)
			if got := localConfidence(event); got != tc.expected {
				t.Errorf("Expected confidence %.1f, got %.1f (event %+v)", tc.expected, got, event)
			}
		})
	}
}
