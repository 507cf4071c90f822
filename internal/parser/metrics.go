package parser

import (
	"sync"
	"time"
)

// Metrics tracks tier usage for the smart parser: how often the local tier
// was confident enough to short-circuit, how often the fallback was consulted,
// and how it fared. Counters are safe for concurrent parse calls.
type Metrics struct {
	mu                  sync.Mutex
	totalParses         int64
	fastPathHits        int64
	fallbackInvocations int64
	fallbackAccepted    int64
	fallbackFailures    int64
	lastUpdated         time.Time
}

// MetricsSnapshot is a point-in-time copy of the parser counters.
type MetricsSnapshot struct {
	TotalParses         int64     `json:"total_parses"`
	FastPathHits        int64     `json:"fast_path_hits"`
	FallbackInvocations int64     `json:"fallback_invocations"`
	FallbackAccepted    int64     `json:"fallback_accepted"`
	FallbackFailures    int64     `json:"fallback_failures"`
	LastUpdated         time.Time `json:"last_updated"`
}

// NewMetrics creates an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Snapshot returns a consistent copy of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		TotalParses:         m.totalParses,
		FastPathHits:        m.fastPathHits,
		FallbackInvocations: m.fallbackInvocations,
		FallbackAccepted:    m.fallbackAccepted,
		FallbackFailures:    m.fallbackFailures,
		LastUpdated:         m.lastUpdated,
	}
}

func (m *Metrics) recordParse() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalParses++
	m.lastUpdated = time.Now()
}

func (m *Metrics) recordFastPath() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fastPathHits++
	m.lastUpdated = time.Now()
}

func (m *Metrics) recordFallback() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbackInvocations++
	m.lastUpdated = time.Now()
}

func (m *Metrics) recordFallbackAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbackAccepted++
	m.lastUpdated = time.Now()
}

func (m *Metrics) recordFallbackFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbackFailures++
	m.lastUpdated = time.Now()
}
