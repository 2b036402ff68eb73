package output

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// Progress tracks and displays scan progress on stderr. The target total
// grows as pages are expanded, so there is no percentage or ETA, only the
// live scheduled count.
type Progress struct {
	scheduled atomic.Int64
	scanned   atomic.Int64
	findings  atomic.Int64
	errors    atomic.Int64
	start     time.Time
	done      chan struct{}
	quiet     bool
}

// NewProgress creates a progress tracker. Call Start() to begin display updates.
func NewProgress(quiet bool) *Progress {
	return &Progress{
		start: time.Now(),
		done:  make(chan struct{}),
		quiet: quiet,
	}
}

// Start begins periodically printing progress to stderr.
func (p *Progress) Start() {
	if p.quiet {
		return
	}
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.print()
			case <-p.done:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			}
		}
	}()
}

// Stop ends the progress display and clears the line.
func (p *Progress) Stop() {
	close(p.done)
}

// TargetScheduled records a target added to the frontier.
func (p *Progress) TargetScheduled() {
	p.scheduled.Add(1)
}

// TargetDone records a processed target.
func (p *Progress) TargetDone() {
	p.scanned.Add(1)
}

// FetchError records a failed fetch.
func (p *Progress) FetchError() {
	p.errors.Add(1)
}

// FindingAccepted records a unique finding.
func (p *Progress) FindingAccepted() {
	p.findings.Add(1)
}

func (p *Progress) print() {
	scanned := p.scanned.Load()
	elapsed := time.Since(p.start).Seconds()
	rate := float64(0)
	if elapsed > 0 {
		rate = float64(scanned) / elapsed
	}

	fmt.Fprintf(os.Stderr, "\r\033[K%d/%d targets | %.1f targets/s | Findings: %d | Errors: %d",
		scanned, p.scheduled.Load(), rate,
		p.findings.Load(), p.errors.Load())
}
