package gate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRunsOp(t *testing.T) {
	g := New(10)

	ran := false
	err := g.Execute(context.Background(), func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestExecutePropagatesOpError(t *testing.T) {
	g := New(10)

	want := assert.AnError
	err := g.Execute(context.Background(), func() error { return want })
	assert.ErrorIs(t, err, want)
}

// Fill every slot with blocking ops, then verify that further requests
// are refused immediately and that the refusal never runs the op.
func TestRefusesWhenFull(t *testing.T) {
	const limit = 10
	g := New(limit)

	release := make(chan struct{})
	var admitted sync.WaitGroup
	admitted.Add(limit)

	var wg sync.WaitGroup
	for i := 0; i < limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := g.Execute(context.Background(), func() error {
				admitted.Done()
				<-release
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	admitted.Wait() // all slots taken

	var extraRan atomic.Bool
	for i := 0; i < 10; i++ {
		err := g.Execute(context.Background(), func() error {
			extraRan.Store(true)
			return nil
		})
		assert.ErrorIs(t, err, ErrBusy)
	}
	assert.False(t, extraRan.Load())

	close(release)
	wg.Wait()

	// Slots are reusable once released.
	assert.NoError(t, g.Execute(context.Background(), func() error { return nil }))
}

// Under K > limit concurrent requests against blocking ops, at most
// limit are admitted and admitted+refused equals K.
func TestAdmissionBound(t *testing.T) {
	const (
		limit = 10
		total = 25
	)
	g := New(limit)

	release := make(chan struct{})
	var inFlight, peak, admitted, refused atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := g.Execute(context.Background(), func() error {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-release
				inFlight.Add(-1)
				return nil
			})
			if err == nil {
				admitted.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrBusy)
				refused.Add(1)
			}
		}()
	}

	// Give the goroutines a moment to race for slots, then let the
	// admitted ones finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(total), admitted.Load()+refused.Load())
	assert.LessOrEqual(t, peak.Load(), int64(limit))
	assert.GreaterOrEqual(t, refused.Load(), int64(total-limit))
	assert.Positive(t, admitted.Load())
}

func TestPanicReleasesSlot(t *testing.T) {
	g := New(1)

	err := g.Execute(context.Background(), func() error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	// The slot must be free again.
	assert.NoError(t, g.Execute(context.Background(), func() error { return nil }))
}

// A caller that times out gets the context error, but the op still runs
// to completion and only then frees its slot.
func TestCallerTimeoutIsFireAndForget(t *testing.T) {
	g := New(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	finished := make(chan struct{})
	proceed := make(chan struct{})
	err := g.Execute(ctx, func() error {
		<-proceed
		close(finished)
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned op still holds the only slot.
	assert.ErrorIs(t, g.Execute(context.Background(), func() error { return nil }), ErrBusy)

	close(proceed)
	<-finished

	// Wait for the release and confirm the slot came back.
	require.Eventually(t, func() bool {
		return g.Execute(context.Background(), func() error { return nil }) == nil
	}, time.Second, 5*time.Millisecond)
}

func TestNonPositiveLimitFallsBack(t *testing.T) {
	assert.Equal(t, int64(DefaultLimit), New(0).Limit())
	assert.Equal(t, int64(DefaultLimit), New(-3).Limit())
	assert.Equal(t, int64(4), New(4).Limit())
}
