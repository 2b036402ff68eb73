package scan

import (
	"context"
	"sync"
)

// Pauser is a cooperative pause gate for workers. While running the gate
// channel is closed, so Wait is a single non-blocking receive; while paused
// it blocks until resumed or the run context ends.
type Pauser struct {
	mu     sync.Mutex
	paused bool
	gate   chan struct{} // closed while running
}

// NewPauser returns a Pauser in the running state.
func NewPauser() *Pauser {
	g := make(chan struct{})
	close(g)
	return &Pauser{gate: g}
}

// Wait blocks the calling worker while paused. Cancelling ctx releases the
// worker even if the gate never reopens; callers check ctx.Err after.
func (p *Pauser) Wait(ctx context.Context) {
	p.mu.Lock()
	g := p.gate
	p.mu.Unlock()
	select {
	case <-g:
	case <-ctx.Done():
	}
}

// Toggle flips the gate and returns the new state (true = now paused).
func (p *Pauser) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = !p.paused
	if p.paused {
		p.gate = make(chan struct{})
	} else {
		close(p.gate)
	}
	return p.paused
}
