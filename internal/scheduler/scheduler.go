package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/Tycoon_Go/internal/logger"
	"github.com/osse101/Tycoon_Go/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled     = "Job scheduled"
	LogMsgJobEnqueueFailed = "Failed to enqueue scheduled job"
)

// Scheduler enqueues jobs on the worker pool at fixed wall-clock intervals
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval, starting one interval
// from now. A full queue delays the scheduler goroutine rather than
// dropping the run.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	ctx, cancel := context.WithCancel(context.Background())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		go func() {
			select {
			case <-s.quit:
				cancel()
			case <-ctx.Done():
			}
		}()

		for {
			select {
			case <-ticker.C:
				if err := s.workerPool.Enqueue(ctx, job); err != nil {
					if errors.Is(err, worker.ErrPoolStopped) || errors.Is(err, context.Canceled) {
						return
					}
					logger.FromContext(ctx).Warn(LogMsgJobEnqueueFailed, "error", err)
				}
			case <-s.quit:
				return
			}
		}
	}()

	logger.FromContext(ctx).Info(LogMsgJobScheduled, "interval", interval)
}

// Stop stops all scheduled jobs. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
