package parser

import (
	"context"
	"errors"
	"log"
	"time"

	"event-scheduler/internal/models"
)

const (
	// localConfidenceAccept short-circuits the arbiter: at or above it the
	// local result is authoritative and the fallback is never consulted.
	localConfidenceAccept = 0.85

	// llmConfidenceAccept is the minimum self-reported confidence at which
	// a fallback result replaces the local one.
	llmConfidenceAccept = 0.7
)

// SmartParser is the tiered arbiter over the local resolver and the LLM
// fallback. The cheap deterministic path always runs first; the fallback is
// purely additive, and its unavailability never prevents a result.
type SmartParser struct {
	fallback *LLMResolver
	metrics  *Metrics
	now      func() time.Time
}

// NewSmartParser builds the arbiter. fallback may be nil when no inference
// capability is configured; the parser then always answers from the local
// tier.
func NewSmartParser(fallback *LLMResolver) *SmartParser {
	return &SmartParser{
		fallback: fallback,
		metrics:  NewMetrics(),
		now:      time.Now,
	}
}

// Metrics exposes the parser's tier-usage counters.
func (p *SmartParser) Metrics() *Metrics {
	return p.metrics
}

// Parse is the engine's entry point for external collaborators. It runs the
// local resolver, scores its confidence, consults the fallback only when the
// local tier is insufficiently confident, and always returns a non-nil event.
func (p *SmartParser) Parse(ctx context.Context, text string) *models.ParsedEvent {
	p.metrics.recordParse()

	local := ParseEventDescriptionAt(text, p.now())
	if localConfidence(local) >= localConfidenceAccept {
		p.metrics.recordFastPath()
		return local
	}

	p.metrics.recordFallback()
	parsed, err := p.fallback.Parse(ctx, text)
	switch {
	case errors.Is(err, ErrUnavailable):
		// Capability downgrade, not a failure.
	case err != nil:
		p.metrics.recordFallbackFailure()
		log.Printf("parser: llm fallback failed, keeping local result: %v", err)
	case parsed.Confidence >= llmConfidenceAccept:
		p.metrics.recordFallbackAccepted()
		return eventFromLLM(parsed, text)
	default:
		log.Printf("parser: llm confidence %.2f below %.2f, keeping local result",
			parsed.Confidence, llmConfidenceAccept)
	}

	return local
}

// localConfidence scores the deterministic tier: 0.9 when dates were found
// and the title is well-formed, 0.7 when only dates were found, 0.0 otherwise.
func localConfidence(event *models.ParsedEvent) float64 {
	titleOK := len(event.Title) > 2 && len(event.Title) < maxTitleLength
	switch {
	case len(event.Dates) > 0 && titleOK:
		return 0.9
	case len(event.Dates) > 0:
		return 0.7
	default:
		return 0.0
	}
}
