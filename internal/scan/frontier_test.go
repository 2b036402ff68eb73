package scan

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFrontierDeduplicatesAddresses(t *testing.T) {
	f := NewFrontier(context.Background())

	if !f.Add(Target{Kind: KindScript, Address: "https://example.com/app.js"}) {
		t.Fatal("first add should succeed")
	}
	if f.Add(Target{Kind: KindScript, Address: "https://example.com/app.js"}) {
		t.Fatal("second add of same address should be rejected")
	}
	if f.Scheduled() != 1 {
		t.Errorf("scheduled = %d, want 1", f.Scheduled())
	}
}

func TestFrontierDrainsWhenWorkCompletes(t *testing.T) {
	f := NewFrontier(context.Background())
	f.Add(Target{Address: "a"})
	f.Add(Target{Address: "b"})

	var got []string
	for {
		target, ok := f.Next()
		if !ok {
			break
		}
		got = append(got, target.Address)
		f.Done()
	}

	if len(got) != 2 {
		t.Fatalf("drained %d targets, want 2", len(got))
	}

	// A drained frontier rejects new work.
	if f.Add(Target{Address: "c"}) {
		t.Error("add after drain should be rejected")
	}
}

func TestFrontierInFlightExpansion(t *testing.T) {
	f := NewFrontier(context.Background())
	f.Add(Target{Address: "page"})

	target, ok := f.Next()
	if !ok || target.Address != "page" {
		t.Fatalf("Next() = %v, %v", target, ok)
	}

	// While the page is in flight, discovery adds a script. A second
	// worker blocked in Next must receive it.
	done := make(chan string, 1)
	go func() {
		t2, ok := f.Next()
		if !ok {
			done <- ""
			return
		}
		f.Done()
		done <- t2.Address
	}()

	time.Sleep(20 * time.Millisecond)
	f.Add(Target{Address: "script"})
	f.Done()

	select {
	case addr := <-done:
		if addr != "script" {
			t.Errorf("second worker got %q, want script", addr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second worker never woke up")
	}
}

func TestFrontierReleasesAllWorkersOnDrain(t *testing.T) {
	f := NewFrontier(context.Background())
	f.Add(Target{Address: "only"})

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, ok := f.Next()
				if !ok {
					return
				}
				f.Done()
			}
		}()
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("workers deadlocked after drain")
	}
}

func TestFrontierCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := NewFrontier(ctx)

	released := make(chan struct{})
	go func() {
		_, ok := f.Next()
		if ok {
			f.Done()
		}
		close(released)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("cancellation did not release blocked worker")
	}
}
