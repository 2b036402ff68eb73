package config

import (
	"fmt"
	"time"
)

// Options holds all configuration for a jsminer scan.
type Options struct {
	// Input (at least one is required)
	URL       string // single URL: web page or direct .js file
	URLsFile  string // file with one URL per line
	LocalFile string // local JavaScript file path

	// Output
	OutputFile string // empty = console only
	ForceJSON  bool   // force JSON regardless of extension
	Quiet      bool
	NoColor    bool
	Verbose    bool

	// Network
	Concurrency      int
	Delay            time.Duration // courtesy delay between fetches per worker
	Timeout          time.Duration // per fetch attempt
	UserAgent        string
	Proxy            string
	AdaptiveThrottle bool  // back off on 429/503
	MaxBodySize      int64 // bytes; larger bodies are truncated at fetch time

	// Extraction toggles
	Endpoints bool
	Secrets   bool
	URLs      bool

	// Hooks
	OnFindingCmd string // shell command fed finding JSON on stdin
}

// Default returns Options with the documented default tuning values.
func Default() *Options {
	return &Options{
		Concurrency: 10,
		Delay:       500 * time.Millisecond,
		Timeout:     30 * time.Second,
		UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		MaxBodySize: 10 * 1024 * 1024,
		Endpoints:   true,
		Secrets:     true,
		URLs:        true,
	}
}

// Validate reports configuration errors that must abort the run before the
// frontier starts. Per-target fetch problems are never reported here.
func (o *Options) Validate() error {
	if o.URL == "" && o.URLsFile == "" && o.LocalFile == "" {
		return fmt.Errorf("no input: use -u URL, -l URL_LIST, or -f FILE")
	}
	if o.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", o.Concurrency)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	if o.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", o.Delay)
	}
	if o.MaxBodySize <= 0 {
		return fmt.Errorf("max body size must be positive, got %d", o.MaxBodySize)
	}
	if !o.Endpoints && !o.Secrets && !o.URLs {
		return fmt.Errorf("all extraction categories disabled, nothing to scan for")
	}
	return nil
}
