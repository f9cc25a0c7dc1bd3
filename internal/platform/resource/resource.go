// Package resource tracks the load lifecycle of one slice of view state.
//
// A Resource moves NotLoaded -> Loading -> Loaded | Failed. A failed reload
// keeps the last successfully loaded value so views can keep showing it.
package resource

import (
	"context"
	"sync"

	"github.com/riskibarqy/finalpoint-client/internal/platform/resilience"
)

type State string

const (
	StateNotLoaded State = "not_loaded"
	StateLoading   State = "loading"
	StateLoaded    State = "loaded"
	StateFailed    State = "failed"
)

type Resource[T any] struct {
	mu      sync.RWMutex
	state   State
	value   T
	hasData bool
	err     error
	loads   int
	flight  resilience.Flight[T]
}

func New[T any]() *Resource[T] {
	return &Resource[T]{state: StateNotLoaded}
}

// Load runs loader and records the outcome. Concurrent Load calls share a
// single loader execution.
func (r *Resource[T]) Load(ctx context.Context, loader func(context.Context) (T, error)) (T, error) {
	value, err, _ := r.flight.Do("load", func() (T, error) {
		r.mu.Lock()
		r.state = StateLoading
		r.loads++
		r.mu.Unlock()

		loaded, loadErr := loader(ctx)

		r.mu.Lock()
		defer r.mu.Unlock()
		if loadErr != nil {
			r.state = StateFailed
			r.err = loadErr
			return r.value, loadErr
		}
		r.state = StateLoaded
		r.value = loaded
		r.hasData = true
		r.err = nil
		return loaded, nil
	})
	return value, err
}

// NeedsLoad is true when nothing usable is held: never loaded, invalidated,
// or the last attempt failed.
func (r *Resource[T]) NeedsLoad() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state == StateNotLoaded || r.state == StateFailed
}

// Invalidate forces the next NeedsLoad check to report true. The held value
// stays readable until a reload replaces it.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateLoading {
		r.state = StateNotLoaded
		r.err = nil
	}
}

func (r *Resource[T]) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Resource[T]) Value() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value, r.hasData
}

func (r *Resource[T]) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Loads counts loader executions.
func (r *Resource[T]) Loads() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loads
}
