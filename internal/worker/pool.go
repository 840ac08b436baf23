package worker

import (
	"context"
	"sync"

	"github.com/pairloom/garden-engine/internal/logger"
	"github.com/pairloom/garden-engine/internal/metrics"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker loop. A failing job is logged and counted, never
// fatal: the sweep retries naturally on its next scheduled run.
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			metrics.WorkerQueueDepth.Set(float64(len(p.jobQueue)))
			ctx := context.Background()
			if err := job.Process(ctx); err != nil {
				metrics.WorkerJobs.WithLabelValues(JobResultError).Inc()
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
				continue
			}
			metrics.WorkerJobs.WithLabelValues(JobResultOK).Inc()
		case <-p.quit:
			return
		}
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
	metrics.WorkerQueueDepth.Set(float64(len(p.jobQueue)))
}

// Stop stops the workers and waits for them to finish
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
