package workerpool

import (
	"context"
	"sync"
)

// Task is a unit of background work. It must be safe to run concurrently with
// other tasks and must not depend on the submitting request still being alive:
// the pool is what lets cache writes and alerts finish after the response has
// already been sent.
type Task func()

type WorkerPool struct {
	tasks  chan Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts a pool with workerCount goroutines and a bounded queue. Submit
// blocks once the queue is full.
func New(workerCount int, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		tasks:  make(chan Task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	wp.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			task()
		}
	}
}

// Submit enqueues a fire-and-forget task.
func (wp *WorkerPool) Submit(task Task) {
	select {
	case <-wp.ctx.Done():
	case wp.tasks <- task:
	}
}

// Close stops the workers and waits for the ones mid-task to return.
func (wp *WorkerPool) Close() {
	wp.cancel()
	wp.wg.Wait()
}
