package fabricrun

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunCollectsAllResults(t *testing.T) {
	pool := NewPool(2)
	results, cancelled := pool.Run(nil, 5, func(i int) (interface{}, error) {
		return i * i, nil
	})
	if cancelled {
		t.Fatal("did not expect cancellation")
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Value.(int) != i*i {
			t.Fatalf("result %d: got %v", i, r.Value)
		}
	}
}

func TestPoolRunBoundsConcurrency(t *testing.T) {
	pool := NewPool(3)
	var inFlight, maxSeen int32

	results, _ := pool.Run(nil, 10, func(i int) (interface{}, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			cur := atomic.LoadInt32(&maxSeen)
			if n <= cur || atomic.CompareAndSwapInt32(&maxSeen, cur, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil, nil
	})
	_ = results

	if maxSeen > 3 {
		t.Fatalf("expected at most 3 concurrent, saw %d", maxSeen)
	}
}

func TestPoolRunHonorsCancellation(t *testing.T) {
	token := NewToken(context.Background())
	token.Cancel()

	pool := NewPool(4)
	results, cancelled := pool.Run(token, 5, func(i int) (interface{}, error) {
		return i, nil
	})
	if !cancelled {
		t.Fatal("expected cancelled=true")
	}
	if len(results) != 0 {
		t.Fatalf("expected no items scheduled after cancellation, got %d", len(results))
	}
}

func TestTokenCancelledReflectsParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	token := NewToken(ctx)
	if token.Cancelled() {
		t.Fatal("should not be cancelled yet")
	}
	cancel()
	if !token.Cancelled() {
		t.Fatal("expected token to observe parent cancellation")
	}
}

func TestNewRunIDIsUnique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	if a == b {
		t.Fatal("expected distinct run ids")
	}
	if a == "" {
		t.Fatal("expected a non-empty run id")
	}
}
