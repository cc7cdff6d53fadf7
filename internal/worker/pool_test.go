package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Tycoon_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start(context.Background())

	job := &testJob{executed: &executed}
	require.NoError(t, pool.Enqueue(context.Background(), job))
	require.NoError(t, pool.Enqueue(context.Background(), job))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, TestWorkerProcessWaitTime*time.Millisecond*10, time.Millisecond)

	pool.Stop()
	pool.Stop()
	checker.Check(1)
}

func TestPool_FailingAndPanickingJobsKeepWorkersAlive(t *testing.T) {
	var executed int32
	pool := NewPool(1, TestQueueSize)
	pool.Start(context.Background())
	defer pool.Stop()

	ctx := context.Background()
	require.NoError(t, pool.Enqueue(ctx, JobFunc(func(context.Context) error { return errors.New("boom") })))
	require.NoError(t, pool.Enqueue(ctx, JobFunc(func(context.Context) error { panic("kaboom") })))
	require.NoError(t, pool.Enqueue(ctx, &testJob{executed: &executed}))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 1 }, time.Second, time.Millisecond)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()

	err := pool.Enqueue(context.Background(), JobFunc(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_EnqueueRespectsContextWhenFull(t *testing.T) {
	pool := NewPool(1, 1)
	// not started: the single slot fills and stays full
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error { return nil })))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Enqueue(ctx, JobFunc(func(context.Context) error { return nil }))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	pool.Stop()
}
