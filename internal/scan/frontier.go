package scan

import (
	"context"
	"sync"
)

// Frontier is the per-run work queue plus visited set. Targets move
// pending → in-flight → done; the run is over when both the queue and the
// in-flight count are empty. All methods are safe for concurrent use.
type Frontier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	visited  map[string]struct{}
	pending  []Target
	inflight int
	closed   bool
}

// NewFrontier creates a Frontier tied to ctx: cancellation wakes and
// releases every blocked worker.
func NewFrontier(ctx context.Context) *Frontier {
	f := &Frontier{visited: make(map[string]struct{})}
	f.cond = sync.NewCond(&f.mu)
	go func() {
		<-ctx.Done()
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		f.cond.Broadcast()
	}()
	return f
}

// Add enqueues t unless its address has already been scheduled. The
// visited check and the insert are a single atomic step, so concurrent
// discoverers of the same address race to exactly one enqueue.
func (f *Frontier) Add(t Target) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	if _, seen := f.visited[t.Address]; seen {
		return false
	}
	f.visited[t.Address] = struct{}{}
	f.pending = append(f.pending, t)
	f.cond.Signal()
	return true
}

// Next blocks until a target is available. ok is false when the frontier
// has drained (nothing pending, nothing in flight) or the run was
// cancelled. Every successful Next must be paired with a Done call.
func (f *Frontier) Next() (t Target, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for {
		if f.closed {
			return Target{}, false
		}
		if len(f.pending) > 0 {
			t = f.pending[0]
			f.pending = f.pending[1:]
			f.inflight++
			return t, true
		}
		if f.inflight == 0 {
			f.closed = true
			f.cond.Broadcast()
			return Target{}, false
		}
		f.cond.Wait()
	}
}

// Done marks one in-flight target complete. When the last one finishes
// with an empty queue, all blocked workers are released.
func (f *Frontier) Done() {
	f.mu.Lock()
	f.inflight--
	drained := f.inflight == 0 && len(f.pending) == 0
	f.mu.Unlock()
	if drained {
		f.cond.Broadcast()
	}
}

// Scheduled returns how many unique targets have been enqueued so far.
func (f *Frontier) Scheduled() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}
