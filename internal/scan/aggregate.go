package scan

import (
	"sort"
	"sync"
	"time"

	"github.com/jsminer/jsminer/internal/rules"
)

// Aggregator merges the finding stream from all workers: synchronized
// insertion, dedup by identity key keeping the highest-confidence
// occurrence, and a deterministic final ordering.
type Aggregator struct {
	mu       sync.Mutex
	index    map[string]int // identity key -> position in findings
	findings []Finding
	errs     []TargetError
	fetched  int
	failed   int
}

// NewAggregator returns an empty aggregator for one run.
func NewAggregator() *Aggregator {
	return &Aggregator{index: make(map[string]int)}
}

// Add inserts f, collapsing duplicates. When a duplicate disagrees on
// confidence the higher one wins, keeping the first occurrence's position.
// Returns true if f is new, false if it collapsed into an existing finding.
func (a *Aggregator) Add(f Finding) bool {
	key := f.Key()
	a.mu.Lock()
	defer a.mu.Unlock()
	if pos, dup := a.index[key]; dup {
		if f.Confidence > a.findings[pos].Confidence {
			a.findings[pos] = f
		}
		return false
	}
	a.index[key] = len(a.findings)
	a.findings = append(a.findings, f)
	return true
}

// AddError records a per-target fetch failure. The scan continues; errors
// only surface in the final result.
func (a *Aggregator) AddError(target string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failed++
	a.errs = append(a.errs, TargetError{Target: target, Error: err.Error()})
}

// CountFetched records one successfully retrieved asset.
func (a *Aggregator) CountFetched() {
	a.mu.Lock()
	a.fetched++
	a.mu.Unlock()
}

// Result freezes the aggregation into the final ScanResult. Findings sort
// by severity descending, then category, then source, then first-seen
// order within a source; arrival order across concurrent assets therefore
// never changes the report.
func (a *Aggregator) Result(started time.Time, targets int) *Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	ordered := make([]Finding, len(a.findings))
	copy(ordered, a.findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		si := rules.Severity(ordered[i].Severity).Rank()
		sj := rules.Severity(ordered[j].Severity).Rank()
		if si != sj {
			return si > sj
		}
		if ordered[i].Category != ordered[j].Category {
			return ordered[i].Category < ordered[j].Category
		}
		return ordered[i].Source < ordered[j].Source
	})

	summary := Summary{
		Targets:     targets,
		Fetched:     a.fetched,
		FetchErrors: a.failed,
		Findings:    len(ordered),
		ByCategory:  make(map[string]int),
		BySeverity:  make(map[string]int),
	}
	for _, f := range ordered {
		summary.ByCategory[f.Category]++
		summary.BySeverity[f.Severity]++
	}

	errs := make([]TargetError, len(a.errs))
	copy(errs, a.errs)
	sort.Slice(errs, func(i, j int) bool { return errs[i].Target < errs[j].Target })

	elapsed := time.Since(started)
	return &Result{
		StartedAt: started,
		Duration:  elapsed,
		Seconds:   elapsed.Seconds(),
		Findings:  ordered,
		Errors:    errs,
		Summary:   summary,
	}
}
