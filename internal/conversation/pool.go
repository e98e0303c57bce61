package conversation

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs turn-processing jobs on a bounded set of workers so
// transcript capture never blocks on remote calls
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	wg       sync.WaitGroup
	once     sync.Once

	totalJobs     atomic.Int64
	completedJobs atomic.Int64
	activeWorkers atomic.Int64
}

// PoolStats is a snapshot of pool counters
type PoolStats struct {
	TotalJobs     int64
	CompletedJobs int64
	ActiveWorkers int64
}

// NewWorkerPool creates a pool with the specified number of workers,
// defaulting to the CPU count
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers. Safe to call more than once.
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		wp.activeWorkers.Add(1)
		job()
		wp.activeWorkers.Add(-1)
		wp.completedJobs.Add(1)
		wp.wg.Done()
	}
}

// Submit queues a job. Returns false once the pool is closed.
func (wp *WorkerPool) Submit(job func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			// queue already closed
			wp.wg.Done()
			wp.totalJobs.Add(-1)
			ok = false
		}
	}()
	wp.wg.Add(1)
	wp.totalJobs.Add(1)
	wp.jobQueue <- job
	return true
}

// Wait blocks until all submitted jobs finish
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Close shuts the pool down; queued jobs still drain
func (wp *WorkerPool) Close() {
	close(wp.jobQueue)
}

// GetStats returns a snapshot of the pool counters
func (wp *WorkerPool) GetStats() PoolStats {
	return PoolStats{
		TotalJobs:     wp.totalJobs.Load(),
		CompletedJobs: wp.completedJobs.Load(),
		ActiveWorkers: wp.activeWorkers.Load(),
	}
}
