// Package parallel provides a bounded worker pool for running independent
// search branches concurrently. Each submitted task owns its branch's
// mutable state outright, so the pool needs no coordination beyond
// scheduling and shutdown.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed set of goroutines with a buffered task channel
// for backpressure. Submissions block when all workers are busy and the
// buffer is full, which keeps branch fan-out proportional to available
// parallelism.
type WorkerPool struct {
	maxWorkers int
	taskChan   chan func()
	workerWg   sync.WaitGroup
	// mu orders Submit sends against Shutdown's channel close: a send is
	// only attempted under the read lock with closed still false, so a
	// submission can never be accepted after shutdown and then never run.
	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewWorkerPool creates a pool with the given number of workers. Zero or
// negative defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers: maxWorkers,
		taskChan:   make(chan func(), maxWorkers*2),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker drains the task channel until it is closed, so tasks buffered
// before shutdown still run.
func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for task := range wp.taskChan {
		if task != nil {
			task()
		}
	}
}

// Submit queues a task for execution. Blocks until a worker accepts it or
// the context is cancelled. Returns ErrPoolShutdown once Shutdown has been
// called; an accepted task is guaranteed to run.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolShutdown
	}

	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops the pool and waits for queued and in-flight tasks to
// finish. Safe to call more than once.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskChan)
		wp.mu.Unlock()
		wp.workerWg.Wait()
	})
}

// ErrPoolShutdown is returned when submitting to a pool that has shut down.
var ErrPoolShutdown = errors.New("worker pool has been shutdown")
