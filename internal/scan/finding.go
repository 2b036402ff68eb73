package scan

import (
	"fmt"
	"time"
)

// Finding is a deduplicated, confidence-scored, reportable result. The JSON
// shape here is the contract the report writers consume.
type Finding struct {
	Category   string  `json:"category"` // endpoint | secret | url
	Type       string  `json:"type"`     // rule sub-type, e.g. "AWS Access Key"
	Value      string  `json:"value"`
	Severity   string  `json:"severity"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Context    string  `json:"context,omitempty"`
	Low        bool    `json:"low_confidence,omitempty"`
}

// Key is the dedup identity: findings from different assets stay distinct.
func (f Finding) Key() string {
	return fmt.Sprintf("%s\x00%s\x00%s\x00%s", f.Category, f.Type, f.Value, f.Source)
}

// TargetError records one target's fetch failure.
type TargetError struct {
	Target string `json:"target"`
	Error  string `json:"error"`
}

// Summary holds the run counters the report footer shows.
type Summary struct {
	Targets     int            `json:"targets"`
	Fetched     int            `json:"assets_fetched"`
	FetchErrors int            `json:"assets_failed"`
	Findings    int            `json:"findings"`
	ByCategory  map[string]int `json:"by_category"`
	BySeverity  map[string]int `json:"by_severity"`
}

// Result is the outcome of one run: ordered unique findings, per-target
// errors, and summary counters. Immutable once the aggregator builds it.
type Result struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"-"`
	Seconds   float64       `json:"duration_seconds"`
	Findings  []Finding     `json:"findings"`
	Errors    []TargetError `json:"errors"`
	Summary   Summary       `json:"summary"`
}
