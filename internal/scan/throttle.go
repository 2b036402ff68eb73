package scan

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Throttler enforces the courtesy delay between fetches. With adaptive mode
// enabled it backs off exponentially on 429/503 or repeated transport
// errors and recovers toward the base delay on healthy responses.
type Throttler struct {
	mu           sync.Mutex
	baseDelay    time.Duration
	currentDelay time.Duration
	maxDelay     time.Duration
	consecutive  int // consecutive throttle signals
	adaptive     bool
}

// NewThrottler creates a throttler with the configured base delay.
func NewThrottler(baseDelay time.Duration, adaptive bool) *Throttler {
	return &Throttler{
		baseDelay:    baseDelay,
		currentDelay: baseDelay,
		maxDelay:     30 * time.Second,
		adaptive:     adaptive,
	}
}

// Delay returns the wait a worker owes before its next fetch.
func (t *Throttler) Delay() time.Duration {
	if !t.adaptive {
		return t.baseDelay
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentDelay
}

// RecordStatus feeds a response status into the adaptive back-off.
func (t *Throttler) RecordStatus(statusCode int) {
	if !t.adaptive {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if statusCode == 429 || statusCode == 503 {
		t.consecutive++
		t.backOff(statusCode)
		return
	}
	if t.consecutive > 0 {
		t.consecutive = 0
		recovered := t.currentDelay / 2
		if recovered < t.baseDelay {
			recovered = t.baseDelay
		}
		if recovered != t.currentDelay {
			t.currentDelay = recovered
			log.Debug().Dur("delay", t.currentDelay).Msg("throttle recovering")
		}
	}
}

// RecordError treats repeated transport errors as a possible rate limit.
func (t *Throttler) RecordError() {
	if !t.adaptive {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.consecutive++
	if t.consecutive >= 3 {
		t.backOff(0)
	}
}

// backOff doubles the delay up to maxDelay. Callers hold t.mu.
func (t *Throttler) backOff(statusCode int) {
	doubled := t.currentDelay * 2
	if doubled < 500*time.Millisecond {
		doubled = 500 * time.Millisecond
	}
	if doubled > t.maxDelay {
		doubled = t.maxDelay
	}
	if doubled != t.currentDelay {
		t.currentDelay = doubled
		log.Warn().Int("status", statusCode).Dur("delay", t.currentDelay).
			Msg("rate limited, backing off")
	}
}
