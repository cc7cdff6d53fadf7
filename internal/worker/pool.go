package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/Tycoon_Go/internal/logger"
)

// ErrPoolStopped is returned by Enqueue once Stop has been called
var ErrPoolStopped = errors.New("worker pool stopped")

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Process calls f
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs queued jobs on a fixed number of goroutines
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		ctx:      context.Background(),
	}
}

// Start starts the workers. Jobs receive ctx, so loggers attached to it
// carry through to job logs.
func (p *Pool) Start(ctx context.Context) {
	if ctx != nil {
		p.ctx = ctx
	}
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	logger.FromContext(p.ctx).Info(LogMsgWorkerPoolStarted, "workers", p.workers, "queue_size", cap(p.jobQueue))
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(id, job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(p.ctx).Error(LogMsgWorkerJobFailed,
				"worker", id,
				"job", fmt.Sprintf("%T", job),
				"error", fmt.Sprintf("panic: %v", r))
		}
	}()
	if err := job.Process(p.ctx); err != nil {
		logger.FromContext(p.ctx).Error(LogMsgWorkerJobFailed,
			"worker", id,
			"job", fmt.Sprintf("%T", job),
			"error", err)
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full until
// ctx is done or the pool stops
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}

	select {
	case p.jobQueue <- job:
		return nil
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop stops the workers and waits for in-flight jobs. Queued jobs that
// have not started are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		logger.FromContext(p.ctx).Info(LogMsgWorkerPoolStopped)
	})
}
