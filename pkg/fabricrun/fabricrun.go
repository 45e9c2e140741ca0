// Package fabricrun provides the run-scoped concurrency primitives shared
// by discovery and consolidation: a cancellation token, a run identifier
// for log correlation, and the bounded worker pools described in §5 of the
// concurrency model (one for I/O-bound artifact reads, one for CPU-bound
// per-device detection/classification work).
package fabricrun

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// NewRunID returns a fresh identifier correlating one discovery or
// synthesis run across log lines and partial-result reporting.
func NewRunID() string {
	return uuid.NewString()
}

// Token is a cancellation token threaded through long-running operations.
// Firing it causes in-flight pool work to drain and the caller to receive
// a partial result with Cancelled=true; no persistent artifact is written
// for a cancelled run.
type Token struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewToken wraps ctx in a cancellable token. Cancelling parent ctx also
// fires the token.
func NewToken(ctx context.Context) *Token {
	c, cancel := context.WithCancel(ctx)
	return &Token{ctx: c, cancel: cancel}
}

// Cancel fires the token.
func (t *Token) Cancel() { t.cancel() }

// Cancelled reports whether the token has fired.
func (t *Token) Cancelled() bool {
	select {
	case <-t.ctx.Done():
		return true
	default:
		return false
	}
}

// Done returns the token's done channel, for select statements.
func (t *Token) Done() <-chan struct{} { return t.ctx.Done() }

// Pool runs a bounded number of item callbacks concurrently, collecting
// per-item errors and results under a single mutex. Modeled on the
// teacher's semaphore + WaitGroup + mutex pattern (Lab.Provision).
type Pool struct {
	size int
}

// NewPool returns a Pool that runs at most size callbacks at once. size<=0
// is treated as 1 (no parallelism, but still well-formed).
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{size: size}
}

// Result is one item's outcome from a Pool.Run call.
type Result struct {
	Index int
	Value interface{}
	Err   error
}

// Run fans work out across n items, invoking fn(i) for each index in
// [0,n) under the pool's concurrency bound. If token fires before an item
// starts, that item is skipped and Cancelled is set true on the returned
// batch; items already running are allowed to finish. Results preserve
// input order.
func (p *Pool) Run(token *Token, n int, fn func(i int) (interface{}, error)) (results []Result, cancelled bool) {
	if n == 0 {
		return nil, false
	}

	all := make([]Result, n)
	scheduled := 0

	sem := make(chan struct{}, p.size)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < n; i++ {
		if token != nil && token.Cancelled() {
			cancelled = true
			break
		}

		scheduled++
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			val, err := fn(i)

			mu.Lock()
			all[i] = Result{Index: i, Value: val, Err: err}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	return all[:scheduled], cancelled
}
