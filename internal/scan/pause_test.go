package scan

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPauserWaitPassesWhenRunning(t *testing.T) {
	p := NewPauser()
	done := make(chan struct{})
	go func() {
		p.Wait(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked while running")
	}
}

func TestPauserBlocksAndResumes(t *testing.T) {
	p := NewPauser()
	if !p.Toggle() {
		t.Fatal("first toggle should pause")
	}

	var passed atomic.Bool
	go func() {
		p.Wait(context.Background())
		passed.Store(true)
	}()

	time.Sleep(50 * time.Millisecond)
	if passed.Load() {
		t.Fatal("Wait passed while paused")
	}

	if p.Toggle() {
		t.Fatal("second toggle should resume")
	}

	deadline := time.Now().Add(time.Second)
	for !passed.Load() {
		if time.Now().After(deadline) {
			t.Fatal("Wait never released after resume")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPauserCancellationReleasesWaiters(t *testing.T) {
	p := NewPauser()
	p.Toggle()

	ctx, cancel := context.WithCancel(context.Background())
	released := make(chan struct{})
	go func() {
		p.Wait(ctx)
		close(released)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("cancellation did not release paused waiter")
	}
	if ctx.Err() == nil {
		t.Fatal("expected cancelled context")
	}
}
