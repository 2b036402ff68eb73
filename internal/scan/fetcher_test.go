package scan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsminer/jsminer/internal/config"
)

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	opts := config.Default()
	opts.Timeout = 5 * time.Second
	f, err := NewFetcher(opts)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected User-Agent header")
		}
		w.Header().Set("Content-Type", "application/javascript")
		w.Write([]byte("var x = 1;"))
	}))
	defer srv.Close()

	asset := testFetcher(t).Fetch(context.Background(), Target{Kind: KindScript, Address: srv.URL + "/app.js"})
	if asset.Err != nil {
		t.Fatal(asset.Err)
	}
	if string(asset.Body) != "var x = 1;" {
		t.Errorf("body = %q", asset.Body)
	}
	if asset.StatusCode != 200 {
		t.Errorf("status = %d", asset.StatusCode)
	}
	if asset.ContentType != "application/javascript" {
		t.Errorf("content type = %q", asset.ContentType)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(502)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	asset := testFetcher(t).Fetch(context.Background(), Target{Kind: KindScript, Address: srv.URL})
	if asset.Err != nil {
		t.Fatalf("expected recovery after retries, got %v", asset.Err)
	}
	if string(asset.Body) != "recovered" {
		t.Errorf("body = %q", asset.Body)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(503)
	}))
	defer srv.Close()

	asset := testFetcher(t).Fetch(context.Background(), Target{Kind: KindScript, Address: srv.URL})
	if asset.Err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls.Load() != maxAttempts {
		t.Errorf("calls = %d, want %d", calls.Load(), maxAttempts)
	}
	if !strings.Contains(asset.Err.Error(), "giving up") {
		t.Errorf("err = %v, want giving-up wrapper", asset.Err)
	}
	if len(asset.Body) != 0 {
		t.Errorf("body = %q, want empty on failure", asset.Body)
	}
}

func TestFetchClientErrorsDoNotRetry(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(404)
	}))
	defer srv.Close()

	asset := testFetcher(t).Fetch(context.Background(), Target{Kind: KindScript, Address: srv.URL})
	if asset.Err == nil {
		t.Fatal("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retries on 4xx)", calls.Load())
	}
	if asset.StatusCode != 404 {
		t.Errorf("status = %d, want 404", asset.StatusCode)
	}
}

func TestFetchTruncatesOversizedBodies(t *testing.T) {
	big := strings.Repeat("a", 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(big))
	}))
	defer srv.Close()

	opts := config.Default()
	opts.MaxBodySize = 1024
	f, err := NewFetcher(opts)
	if err != nil {
		t.Fatal(err)
	}

	asset := f.Fetch(context.Background(), Target{Kind: KindScript, Address: srv.URL})
	if asset.Err != nil {
		t.Fatal(asset.Err)
	}
	if len(asset.Body) != 1024 {
		t.Errorf("body length = %d, want 1024", len(asset.Body))
	}
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.js")
	if err := os.WriteFile(path, []byte("const k = 'v';"), 0644); err != nil {
		t.Fatal(err)
	}

	asset := testFetcher(t).Fetch(context.Background(), Target{Kind: KindFile, Address: path})
	if asset.Err != nil {
		t.Fatal(asset.Err)
	}
	if string(asset.Body) != "const k = 'v';" {
		t.Errorf("body = %q", asset.Body)
	}

	missing := testFetcher(t).Fetch(context.Background(), Target{Kind: KindFile, Address: filepath.Join(t.TempDir(), "nope.js")})
	if missing.Err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFetchInline(t *testing.T) {
	asset := testFetcher(t).Fetch(context.Background(), Target{
		Kind:    KindInline,
		Address: "https://example.com#inline-1",
		Body:    "var token = 'abc';",
	})
	if asset.Err != nil {
		t.Fatal(asset.Err)
	}
	if string(asset.Body) != "var token = 'abc';" {
		t.Errorf("body = %q", asset.Body)
	}
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	asset := testFetcher(t).Fetch(ctx, Target{Kind: KindScript, Address: srv.URL})
	if asset.Err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("cancellation was not prompt")
	}
}
