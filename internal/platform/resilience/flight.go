package resilience

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrFlightPanicked is returned to callers that joined a call whose function panicked.
var ErrFlightPanicked = errors.New("coalesced call panicked")

// Flight coalesces concurrent calls sharing a key into one execution.
// Callers that joined an in-flight call get its result and shared=true.
type Flight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func (f *Flight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]*flightCall[T])
	}
	if c, ok := f.calls[key]; ok {
		f.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &flightCall[T]{done: make(chan struct{})}
	f.calls[key] = c
	f.mu.Unlock()

	normalReturn := false
	defer func() {
		if !normalReturn {
			var zero T
			c.val = zero
			c.err = errors.Wrap(ErrFlightPanicked, fmt.Sprintf("key %q", key))
		}
		f.mu.Lock()
		delete(f.calls, key)
		f.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = fn()
	normalReturn = true
	return c.val, c.err, false
}

// InFlight reports whether a call for key is currently running.
func (f *Flight[T]) InFlight(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.calls[key]
	return ok
}
