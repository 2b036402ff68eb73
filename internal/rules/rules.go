// Package rules holds the static pattern table and the matching engine that
// turns raw asset text into unscored matches.
package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Category classifies what a rule looks for.
type Category string

const (
	CategoryEndpoint Category = "endpoint"
	CategorySecret   Category = "secret"
	CategoryURL      Category = "url"
)

// Severity is the base severity a rule assigns to its matches.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Rank orders severities for sorting: higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Heuristic names the confidence refinement applied to a rule's matches.
type Heuristic string

const (
	// HeuristicNone leaves the base confidence untouched.
	HeuristicNone Heuristic = "none"
	// HeuristicEntropy discards generic secret matches whose Shannon
	// entropy falls below the category threshold.
	HeuristicEntropy Heuristic = "entropy"
	// HeuristicPrefix applies to vendor patterns anchored on a fixed
	// literal prefix; confidence stays high unless a sanity check fails.
	HeuristicPrefix Heuristic = "prefix"
	// HeuristicContext demotes matches sitting in comments or obviously
	// inert surroundings.
	HeuristicContext Heuristic = "context"
)

// Rule defines one pattern: what to match, how to classify it, and which
// confidence heuristic refines it. Rules are static, compiled once, and
// shared read-only across workers.
type Rule struct {
	Category   Category
	Type       string // human-readable sub-type, e.g. "AWS Access Key"
	Pattern    *regexp.Regexp
	Severity   Severity
	Confidence float64 // base confidence before scoring
	Heuristic  Heuristic
}

// RawMatch is an unscored pattern hit within an asset's text.
type RawMatch struct {
	Rule    *Rule
	Value   string
	Offset  int    // byte offset of the match in the asset body
	Context string // collapsed-whitespace window around the match
	Source  string // address of the asset the match came from
}

// contextWindow is the number of bytes captured on each side of a match.
const contextWindow = 40

// ValidateTable checks every rule for structural defects. A failure here is
// a build defect, so it runs once at startup and aborts the process rather
// than surfacing per scan.
func ValidateTable() error {
	seen := make(map[string]struct{}, len(table))
	for i, r := range table {
		if r.Pattern == nil {
			return fmt.Errorf("rule %d (%s): nil pattern", i, r.Type)
		}
		if r.Type == "" {
			return fmt.Errorf("rule %d: empty type", i)
		}
		switch r.Category {
		case CategoryEndpoint, CategorySecret, CategoryURL:
		default:
			return fmt.Errorf("rule %q: unknown category %q", r.Type, r.Category)
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			return fmt.Errorf("rule %q: confidence %v outside [0,1]", r.Type, r.Confidence)
		}
		if r.Severity.Rank() == 0 && r.Severity != SeverityInfo {
			return fmt.Errorf("rule %q: unknown severity %q", r.Type, r.Severity)
		}
		key := string(r.Category) + "/" + r.Type + "/" + r.Pattern.String()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("rule %q: duplicate pattern %s", r.Type, r.Pattern)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Engine matches asset text against the subset of the rule table enabled by
// the active configuration.
type Engine struct {
	rules []*Rule
}

// NewEngine selects rules by category. Disabled categories produce no
// matches at all, so downstream stages never see them.
func NewEngine(endpoints, secrets, urls bool) *Engine {
	e := &Engine{}
	for i := range table {
		r := &table[i]
		switch r.Category {
		case CategoryEndpoint:
			if !endpoints {
				continue
			}
		case CategorySecret:
			if !secrets {
				continue
			}
		case CategoryURL:
			if !urls {
				continue
			}
		}
		e.rules = append(e.rules, r)
	}
	return e
}

// Match runs every enabled rule over text in a single pass per rule.
// Overlapping hits from different rules are all retained; a string may
// satisfy an endpoint rule and a secret rule at once. Values are normalized
// per category; matches that normalize to nothing are dropped.
func (e *Engine) Match(text, source string) []RawMatch {
	var out []RawMatch
	for _, r := range e.rules {
		locs := r.Pattern.FindAllStringSubmatchIndex(text, -1)
		for _, loc := range locs {
			value := captureValue(text, loc)
			start := loc[0]

			switch r.Category {
			case CategoryEndpoint:
				value = NormalizeEndpoint(value)
				if value == "" || endpointFalsePositive(value) {
					continue
				}
			case CategoryURL:
				value = NormalizeURL(value)
				if value == "" || skippedHost(value) {
					continue
				}
			default:
				value = strings.Trim(value, "\"'` \t")
				if value == "" {
					continue
				}
			}

			out = append(out, RawMatch{
				Rule:    r,
				Value:   value,
				Offset:  start,
				Context: snippet(text, loc[0], loc[1]),
				Source:  source,
			})
		}
	}
	return out
}

// captureValue returns the first non-empty capture group, or the whole
// match when the pattern captures nothing. Alternation-heavy patterns leave
// unused groups at -1.
func captureValue(text string, loc []int) string {
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] >= 0 && loc[i+1] > loc[i] {
			return text[loc[i]:loc[i+1]]
		}
	}
	return text[loc[0]:loc[1]]
}

// snippet extracts a fixed-width window around a match with runs of
// whitespace collapsed, for human review and context heuristics.
func snippet(text string, start, end int) string {
	from := start - contextWindow
	if from < 0 {
		from = 0
	}
	to := end + contextWindow
	if to > len(text) {
		to = len(text)
	}
	s := strings.Join(strings.Fields(text[from:to]), " ")
	if from > 0 {
		s = "..." + s
	}
	if to < len(text) {
		s += "..."
	}
	return s
}
