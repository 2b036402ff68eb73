// Package score refines raw rule matches into confidence values, discarding
// matches that fail entropy or sanity checks.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsminer/jsminer/internal/rules"
)

const (
	// floorConfidence is the minimum confidence a retained match keeps.
	// Matches are only ever dropped by the entropy and sanity checks.
	floorConfidence = 0.3

	// lowConfidence flags findings worth extra scrutiny in reports.
	lowConfidence = 0.5

	// defaultEntropyThreshold separates random key material from hex-ish
	// digests and repeated filler in generic secret matches.
	defaultEntropyThreshold = 3.0
)

// Result is the scoring verdict for one raw match.
type Result struct {
	Confidence float64
	Low        bool   // retained but flagged low-confidence
	Discard    bool   // entropy/sanity failure; produce no finding
	Reason     string // set when discarded, for verbose logging
}

// Scorer applies per-heuristic confidence refinement. It is stateless and
// safe for concurrent use.
type Scorer struct {
	entropyThreshold float64
}

// New returns a Scorer with the default entropy threshold.
func New() *Scorer {
	return &Scorer{entropyThreshold: defaultEntropyThreshold}
}

// Score produces the confidence verdict for m.
func (s *Scorer) Score(m rules.RawMatch) Result {
	c := m.Rule.Confidence

	switch m.Rule.Heuristic {
	case rules.HeuristicEntropy:
		e := Entropy(m.Value)
		if e < s.entropyThreshold {
			return Result{
				Discard: true,
				Reason:  fmt.Sprintf("entropy %.2f below threshold %.2f", e, s.entropyThreshold),
			}
		}

	case rules.HeuristicPrefix:
		// Vendor formats are near-certain by construction; only a value
		// that fails the basic shape sanity check loses confidence.
		if !prefixSane(m.Value) {
			c *= 0.5
		}

	case rules.HeuristicContext:
		if inertContext(m.Context, m.Value) {
			c -= 0.3
		}

	case rules.HeuristicNone:
		c = floorConfidence
	}

	if c < floorConfidence {
		c = floorConfidence
	}
	return Result{Confidence: c, Low: c < lowConfidence}
}

// prefixSane checks the minimal shape a real vendor credential must have:
// no embedded whitespace and enough length to hold key material.
func prefixSane(v string) bool {
	if strings.ContainsAny(v, " \t\n\r") {
		// Bearer/Basic style values legitimately contain one space after
		// the scheme word; anything beyond that is not a credential.
		if strings.Count(v, " ") > 1 {
			return false
		}
	}
	return len(v) >= 10
}

// inertMarkers flag a match sitting inside a comment or an obvious
// documentation string. Character heuristics only, no parsing.
var inertMarkers = []string{"example", "sample", "placeholder", "todo", "fixme", "e.g."}

func inertContext(context, value string) bool {
	idx := strings.Index(context, value)
	if idx < 0 {
		idx = len(context)
	}
	before := context[:idx]

	if hasCommentMarker(before) {
		return true
	}
	lower := strings.ToLower(context)
	for _, marker := range inertMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// hasCommentMarker reports whether s contains a // or /* comment opener.
// A "//" directly after ':' is a URL scheme separator, not a comment.
func hasCommentMarker(s string) bool {
	if strings.Contains(s, "/*") {
		return true
	}
	for i := strings.Index(s, "//"); i >= 0; {
		if i == 0 || s[i-1] != ':' {
			return true
		}
		next := strings.Index(s[i+2:], "//")
		if next < 0 {
			break
		}
		i += 2 + next
	}
	return false
}

// Entropy computes the Shannon entropy of s in bits per byte.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}
	var freq [256]int
	for i := 0; i < len(s); i++ {
		freq[s[i]]++
	}
	n := float64(len(s))
	var e float64
	for _, count := range freq {
		if count == 0 {
			continue
		}
		p := float64(count) / n
		e -= p * math.Log2(p)
	}
	return e
}
