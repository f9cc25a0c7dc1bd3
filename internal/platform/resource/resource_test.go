package resource

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestResource_Lifecycle(t *testing.T) {
	t.Parallel()

	r := New[[]string]()
	if r.State() != StateNotLoaded || !r.NeedsLoad() {
		t.Fatalf("expected fresh resource to need load, state=%s", r.State())
	}

	got, err := r.Load(context.Background(), func(context.Context) ([]string, error) {
		return []string{"alice", "bob"}, nil
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || r.State() != StateLoaded || r.NeedsLoad() {
		t.Fatalf("unexpected state after load: state=%s len=%d", r.State(), len(got))
	}

	boom := errors.New("timeout")
	_, err = r.Load(context.Background(), func(context.Context) ([]string, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if r.State() != StateFailed || !errors.Is(r.Err(), boom) {
		t.Fatalf("expected failed state, got %s err=%v", r.State(), r.Err())
	}
	kept, ok := r.Value()
	if !ok || len(kept) != 2 {
		t.Fatalf("failed reload must keep previous value, got %v ok=%v", kept, ok)
	}

	r.Invalidate()
	if r.State() != StateNotLoaded || r.Err() != nil {
		t.Fatalf("expected invalidate to reset state, got %s", r.State())
	}
	if r.Loads() != 2 {
		t.Fatalf("expected two loader executions, got %d", r.Loads())
	}
}

func TestResource_ConcurrentLoadsShareOneCall(t *testing.T) {
	t.Parallel()

	r := New[int]()
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, _ = r.Load(context.Background(), func(context.Context) (int, error) {
				time.Sleep(20 * time.Millisecond)
				return 1, nil
			})
		}()
	}
	close(start)
	wg.Wait()

	if r.Loads() != 1 {
		t.Fatalf("expected one shared load, got %d", r.Loads())
	}
}
