package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestFlight_CoalescesConcurrentCalls(t *testing.T) {
	var f Flight[string]
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, err, _ := f.Do("GET /drivers/get", func() (string, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("flight call failed: %v", err)
			}
			if got != "ok" {
				t.Errorf("unexpected value: %s", got)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := counter.Load(); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if f.InFlight("GET /drivers/get") {
		t.Fatalf("expected key to be released after completion")
	}
}

func TestFlight_SequentialCallsRunAgain(t *testing.T) {
	var f Flight[int]
	calls := 0
	boom := errors.New("boom")

	_, err, shared := f.Do("k", func() (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) || shared {
		t.Fatalf("unexpected first result err=%v shared=%v", err, shared)
	}

	v, err, _ := f.Do("k", func() (int, error) {
		calls++
		return 7, nil
	})
	if err != nil || v != 7 {
		t.Fatalf("unexpected second result v=%d err=%v", v, err)
	}
	if calls != 2 {
		t.Fatalf("expected two executions, got %d", calls)
	}
}

func TestFlight_PanicReleasesWaitersWithError(t *testing.T) {
	var f Flight[int]
	entered := make(chan struct{})
	release := make(chan struct{})

	go func() {
		defer func() { _ = recover() }()
		_, _, _ = f.Do("k", func() (int, error) {
			close(entered)
			<-release
			panic("decoder blew up")
		})
	}()
	<-entered

	type result struct {
		v      int
		err    error
		shared bool
	}
	waiter := make(chan result, 1)
	go func() {
		v, err, shared := f.Do("k", func() (int, error) { return 99, nil })
		waiter <- result{v, err, shared}
	}()

	// Wait until the second caller is parked on the in-flight call.
	time.Sleep(20 * time.Millisecond)
	close(release)

	select {
	case got := <-waiter:
		if !got.shared {
			t.Fatalf("expected waiter to join the in-flight call")
		}
		if !errors.Is(got.err, ErrFlightPanicked) {
			t.Fatalf("expected ErrFlightPanicked, got %v", got.err)
		}
		if got.v != 0 {
			t.Fatalf("expected zero value, got %d", got.v)
		}
	case <-time.After(time.Second):
		t.Fatalf("waiter was never released")
	}
	if f.InFlight("k") {
		t.Fatalf("expected key to be released after panic")
	}
}
