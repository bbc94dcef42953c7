package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "riders", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "rider:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "riders" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_EntriesExpire(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(t.Context(), "player:list", 12)
	if _, ok := store.Get(t.Context(), "player:list"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(t.Context(), "player:list"); ok {
		t.Fatalf("expected expired entry to be dropped")
	}
}

func TestStore_LoaderErrorIsNotCached(t *testing.T) {
	store := NewStore(time.Minute)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(t.Context(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(t.Context(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("unexpected second load: v=%v err=%v", v, err)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(0)
	store.Set(t.Context(), "rider:list", 1)
	store.Set(t.Context(), "rider:id:4", 2)
	store.Set(t.Context(), "player:list", 3)

	store.DeletePrefix(t.Context(), "rider:")

	if _, ok := store.Get(t.Context(), "rider:id:4"); ok {
		t.Fatalf("expected rider keys to be removed")
	}
	if _, ok := store.Get(t.Context(), "player:list"); !ok {
		t.Fatalf("expected player key to remain")
	}
}
