// Package gate implements the per-user admission controller. A Gate is a
// non-blocking token bucket of fixed capacity: a request either takes a
// free slot immediately or is refused, it never queues. Shedding load
// this way keeps saturated users answering fast instead of building up
// latency.
package gate

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// DefaultLimit is the number of operations a single user may have in
// flight at once.
const DefaultLimit = 10

// ErrBusy is returned when every slot is taken. The refusal is
// immediate; the operation is never run.
var ErrBusy = errors.New("gate: too many requests in flight")

// Gate admits at most limit concurrent operations. The admit/release
// arithmetic lives in a weighted semaphore, so two simultaneous requests
// racing for the last slot can never both win.
type Gate struct {
	sem   *semaphore.Weighted
	limit int64
}

// New returns a gate with the given capacity. Non-positive limits fall
// back to DefaultLimit.
func New(limit int64) *Gate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Gate{sem: semaphore.NewWeighted(limit), limit: limit}
}

// Limit returns the gate's capacity.
func (g *Gate) Limit() int64 {
	return g.limit
}

// Execute runs op if a slot is free and returns op's error. With no free
// slot it returns ErrBusy without running op.
//
// The slot is released when op finishes, even if op panics. If ctx
// expires before op finishes the caller gets the context error, but op
// keeps running to completion on its own goroutine and releases the slot
// itself; any state it mutates stays mutated.
func (g *Gate) Execute(ctx context.Context, op func() error) error {
	if !g.sem.TryAcquire(1) {
		return ErrBusy
	}

	done := make(chan error, 1)
	go func() {
		defer g.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("gate: operation panicked: %v", r)
			}
		}()
		done <- op()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
