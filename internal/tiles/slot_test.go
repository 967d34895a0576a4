package tiles

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Faultbox/globeview/internal/coverage"
)

func TestSlotSingleInFlight(t *testing.T) {
	s := NewSlot()
	if s.Busy() {
		t.Fatal("new slot should be idle")
	}

	s.RequestCoverage(coverage.GlobalRequest(3))
	if !s.Busy() {
		t.Fatal("slot should be busy after a request")
	}

	// Second offer must not block and must be dropped.
	done := make(chan struct{})
	go func() {
		s.RequestCoverage(coverage.GlobalRequest(4))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RequestCoverage blocked on a full slot")
	}
	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}
}

func TestSlotServe(t *testing.T) {
	s := NewSlot()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	release := make(chan struct{})
	var mu sync.Mutex
	var served []coverage.Request

	go s.Serve(ctx, func(ctx context.Context, req coverage.Request) error {
		<-release
		mu.Lock()
		served = append(served, req)
		mu.Unlock()
		return errors.New("fetch failed")
	})

	s.RequestCoverage(coverage.GlobalRequest(3))

	// Busy for as long as the loader runs.
	time.Sleep(20 * time.Millisecond)
	if !s.Busy() {
		t.Fatal("slot should stay busy while loading")
	}
	close(release)

	deadline := time.Now().Add(time.Second)
	for s.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("slot never became idle")
		}
		time.Sleep(time.Millisecond)
	}

	// Loader errors do not stop the loop.
	s.RequestCoverage(coverage.GlobalRequest(5))
	deadline = time.Now().Add(time.Second)
	for s.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("second request never served")
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(served) != 2 || served[0].Zoom != 3 || served[1].Zoom != 5 {
		t.Errorf("served = %+v, want zooms 3 then 5", served)
	}
}

func TestSlotServeStops(t *testing.T) {
	s := NewSlot()
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		errc <- s.Serve(ctx, func(context.Context, coverage.Request) error { return nil })
	}()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestSlotLast(t *testing.T) {
	s := NewSlot()
	if _, ok := s.Last(); ok {
		t.Fatal("new slot should have no last request")
	}

	s.RequestCoverage(coverage.GlobalRequest(3))
	s.RequestCoverage(coverage.GlobalRequest(7)) // dropped

	last, ok := s.Last()
	if !ok || last.Zoom != 3 {
		t.Errorf("Last() = %+v, %v; want zoom 3", last, ok)
	}
}
