package parallel

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolRunsTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Shutdown()

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := pool.Submit(context.Background(), func() {
			defer wg.Done()
			count.Add(1)
		})
		require.NoError(t, err)
	}
	wg.Wait()
	assert.Equal(t, int64(20), count.Load())
}

func TestWorkerPoolSubmitAfterShutdown(t *testing.T) {
	pool := NewWorkerPool(1)
	pool.Shutdown()

	// Every post-shutdown submission must be refused, even while the
	// task buffer has space; an accepted task would never run.
	for i := 0; i < 100; i++ {
		err := pool.Submit(context.Background(), func() {
			t.Error("task ran after shutdown")
		})
		assert.ErrorIs(t, err, ErrPoolShutdown)
	}
}

func TestWorkerPoolShutdownDrainsQueuedTasks(t *testing.T) {
	pool := NewWorkerPool(1)

	var count atomic.Int64
	release := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func() {
		<-release
		count.Add(1)
	}))
	// These sit in the buffer behind the blocked worker.
	require.NoError(t, pool.Submit(context.Background(), func() { count.Add(1) }))
	require.NoError(t, pool.Submit(context.Background(), func() { count.Add(1) }))

	close(release)
	pool.Shutdown()
	assert.Equal(t, int64(3), count.Load(), "queued tasks must run before shutdown completes")
}

func TestWorkerPoolSubmitHonorsContext(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Shutdown()

	// Fill the single worker and the buffer with slow tasks so the next
	// submission blocks.
	release := make(chan struct{})
	for i := 0; i < 3; i++ {
		_ = pool.Submit(context.Background(), func() { <-release })
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

func TestWorkerPoolShutdownIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Shutdown()
	pool.Shutdown()
}
