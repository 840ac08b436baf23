package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pairloom/garden-engine/internal/worker"
)

// Scheduler enqueues registered jobs into a worker pool at fixed intervals.
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. The job also runs
// once immediately so a restart does not delay an overdue run.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	slog.Info(LogMsgJobScheduled, "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.workerPool.Enqueue(job)

		for {
			select {
			case <-ticker.C:
				// Enqueue blocks when the pool queue is full, which
				// backpressures the schedule rather than dropping runs.
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs and waits for the schedule loops to exit.
// Jobs already enqueued keep running until the worker pool is stopped.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
