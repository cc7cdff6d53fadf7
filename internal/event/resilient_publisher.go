package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Tycoon_Go/internal/logger"
)

type retryItem struct {
	event   Event
	attempt int
	lastErr error
}

// ResilientPublisher wraps a Bus with asynchronous retry and a dead-letter file.
// The tick loop never waits on a failing subscriber: the first attempt is
// synchronous, later attempts run on a background goroutine with exponential
// backoff.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	retryQueue chan retryItem
	quit       chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewResilientPublisher creates a ResilientPublisher appending exhausted events
// to deadLetterPath
func NewResilientPublisher(inner Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead-letter file: %w", err)
	}

	p := &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		retryQueue: make(chan retryItem, RetryQueueBufferSize),
		quit:       make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryLoop()

	return p, nil
}

// Publish implements Publisher. It never returns an error; failures are retried.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry publishes once and queues the event for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	item := retryItem{event: event, attempt: 1, lastErr: err}
	select {
	case p.retryQueue <- item:
	default:
		logger.FromContext(ctx).Error(LogMsgRetryQueueFull, "event_type", event.Type)
		p.writeDeadLetter(item)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) retryLoop() {
	defer p.wg.Done()

	for {
		select {
		case item := <-p.retryQueue:
			p.retry(item)
		case <-p.quit:
			return
		}
	}
}

func (p *ResilientPublisher) retry(item retryItem) {
	log := logger.FromContext(context.Background())

	for item.attempt <= p.maxRetries {
		delay := CalculateRetryDelay(p.baseDelay, item.attempt)
		select {
		case <-time.After(delay):
		case <-p.quit:
			log.Warn(LogMsgEventDroppedShutdown, "event_type", item.event.Type)
			p.writeDeadLetter(item)
			return
		}

		err := p.inner.Publish(context.Background(), item.event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded,
				"event_type", item.event.Type,
				"attempt", item.attempt)
			return
		}

		log.Warn(LogMsgEventRetryFailed,
			"event_type", item.event.Type,
			"attempt", item.attempt,
			"error", err)
		item.lastErr = err
		item.attempt++
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", item.event.Type, "attempts", p.maxRetries)
	p.writeDeadLetter(item)
}

func (p *ResilientPublisher) writeDeadLetter(item retryItem) {
	if err := p.deadLetter.Write(item.event, item.attempt, item.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry loop, dead-letters anything still queued and closes
// the dead-letter file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() { close(p.quit) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	drained := 0
	for {
		select {
		case item := <-p.retryQueue:
			p.writeDeadLetter(item)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(ctx).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return p.deadLetter.Close()
		}
	}
}
