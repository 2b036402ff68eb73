package scan

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestAggregatorDeduplicates(t *testing.T) {
	agg := NewAggregator()

	f := Finding{Category: "secret", Type: "AWS Access Key", Value: "AKIAX", Severity: "critical", Confidence: 0.6, Source: "a.js"}
	if !agg.Add(f) {
		t.Fatal("first add should report new")
	}
	if agg.Add(f) {
		t.Fatal("identical finding should collapse")
	}

	// Same value from a different source stays distinct.
	f2 := f
	f2.Source = "b.js"
	if !agg.Add(f2) {
		t.Fatal("different source should be a new finding")
	}

	res := agg.Result(time.Now(), 2)
	if len(res.Findings) != 2 {
		t.Fatalf("findings = %d, want 2", len(res.Findings))
	}
}

func TestAggregatorKeepsHighestConfidence(t *testing.T) {
	agg := NewAggregator()

	f := Finding{Category: "secret", Type: "Generic Secret", Value: "v", Severity: "medium", Confidence: 0.5, Source: "a.js"}
	agg.Add(f)

	higher := f
	higher.Confidence = 0.9
	agg.Add(higher)

	lower := f
	lower.Confidence = 0.4
	agg.Add(lower)

	res := agg.Result(time.Now(), 1)
	if len(res.Findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(res.Findings))
	}
	if res.Findings[0].Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", res.Findings[0].Confidence)
	}
}

func TestAggregatorOrdering(t *testing.T) {
	agg := NewAggregator()

	// Inserted in scrambled order; the report must come out severity
	// descending, then category, then source.
	agg.Add(Finding{Category: "url", Type: "External URL", Value: "https://x.io", Severity: "low", Confidence: 0.9, Source: "b.js"})
	agg.Add(Finding{Category: "secret", Type: "AWS Access Key", Value: "AKIAY", Severity: "critical", Confidence: 0.95, Source: "b.js"})
	agg.Add(Finding{Category: "endpoint", Type: "Sensitive Path", Value: "/admin", Severity: "high", Confidence: 0.8, Source: "a.js"})
	agg.Add(Finding{Category: "url", Type: "Internal URL", Value: "http://localhost", Severity: "high", Confidence: 0.9, Source: "a.js"})

	res := agg.Result(time.Now(), 2)

	want := []string{"AKIAY", "/admin", "http://localhost", "https://x.io"}
	if len(res.Findings) != len(want) {
		t.Fatalf("findings = %d, want %d", len(res.Findings), len(want))
	}
	for i, w := range want {
		if res.Findings[i].Value != w {
			t.Errorf("findings[%d] = %q, want %q", i, res.Findings[i].Value, w)
		}
	}

	if res.Summary.BySeverity["high"] != 2 {
		t.Errorf("high count = %d, want 2", res.Summary.BySeverity["high"])
	}
	if res.Summary.ByCategory["url"] != 2 {
		t.Errorf("url count = %d, want 2", res.Summary.ByCategory["url"])
	}
}

func TestAggregatorErrors(t *testing.T) {
	agg := NewAggregator()
	agg.AddError("https://b.example/app.js", errors.New("connection refused"))
	agg.AddError("https://a.example/app.js", errors.New("timeout"))
	agg.CountFetched()

	res := agg.Result(time.Now(), 3)
	if res.Summary.FetchErrors != 2 || res.Summary.Fetched != 1 {
		t.Errorf("fetched/failed = %d/%d, want 1/2", res.Summary.Fetched, res.Summary.FetchErrors)
	}
	// Errors sort by target for stable reports.
	if res.Errors[0].Target != "https://a.example/app.js" {
		t.Errorf("errors[0] = %q, want a.example first", res.Errors[0].Target)
	}
}

func TestAggregatorConcurrentAdds(t *testing.T) {
	agg := NewAggregator()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				agg.Add(Finding{
					Category: "secret", Type: "Generic Secret",
					Value: "shared", Severity: "medium",
					Confidence: 0.5, Source: "a.js",
				})
			}
		}()
	}
	wg.Wait()

	res := agg.Result(time.Now(), 1)
	if len(res.Findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(res.Findings))
	}
}
