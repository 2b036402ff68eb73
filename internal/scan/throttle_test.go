package scan

import (
	"testing"
	"time"
)

func TestThrottlerFixedDelay(t *testing.T) {
	th := NewThrottler(200*time.Millisecond, false)
	th.RecordStatus(429)
	th.RecordStatus(429)
	if d := th.Delay(); d != 200*time.Millisecond {
		t.Errorf("delay = %v, want fixed 200ms", d)
	}
}

func TestThrottlerBacksOffOnRateLimit(t *testing.T) {
	th := NewThrottler(100*time.Millisecond, true)

	th.RecordStatus(429)
	if d := th.Delay(); d != 500*time.Millisecond {
		t.Errorf("delay after first 429 = %v, want 500ms", d)
	}

	th.RecordStatus(503)
	if d := th.Delay(); d != time.Second {
		t.Errorf("delay after second hit = %v, want 1s", d)
	}
}

func TestThrottlerRecovers(t *testing.T) {
	th := NewThrottler(100*time.Millisecond, true)
	th.RecordStatus(429)
	th.RecordStatus(429)

	th.RecordStatus(200)
	if d := th.Delay(); d != 500*time.Millisecond {
		t.Errorf("delay after recovery = %v, want 500ms", d)
	}

	// Further healthy responses without an intervening throttle signal do
	// not keep halving.
	th.RecordStatus(200)
	if d := th.Delay(); d != 500*time.Millisecond {
		t.Errorf("delay = %v, want 500ms", d)
	}
}

func TestThrottlerCapsAtMax(t *testing.T) {
	th := NewThrottler(time.Second, true)
	for i := 0; i < 10; i++ {
		th.RecordStatus(429)
	}
	if d := th.Delay(); d != 30*time.Second {
		t.Errorf("delay = %v, want 30s cap", d)
	}
}

func TestThrottlerRepeatedErrorsBackOff(t *testing.T) {
	th := NewThrottler(100*time.Millisecond, true)
	th.RecordError()
	th.RecordError()
	if d := th.Delay(); d != 100*time.Millisecond {
		t.Errorf("delay = %v, want base before threshold", d)
	}
	th.RecordError()
	if d := th.Delay(); d != 500*time.Millisecond {
		t.Errorf("delay = %v, want 500ms after threshold", d)
	}
}
