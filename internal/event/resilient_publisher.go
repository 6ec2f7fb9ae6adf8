package event

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/logger"
)

type retryEntry struct {
	event   Event
	attempt int
	lastErr error
	nextTry time.Time
}

// ResilientPublisher wraps a Bus with a bounded retry queue and a dead-letter file.
// A failed publish never reaches the caller; it is retried with exponential backoff
// and written to the dead-letter file once retries are exhausted or the queue is full.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	if maxRetries <= 0 {
		maxRetries = RetryMaxAttempts
	}
	if retryDelay <= 0 {
		retryDelay = RetryInitialDelaySeconds * time.Second
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// PublishWithRetry publishes once inline and queues the event for retry on failure
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, evt Event) {
	err := rp.bus.Publish(ctx, evt)
	if err == nil {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "event_type", evt.Type, "error", err)
	rp.enqueue(retryEntry{
		event:   evt,
		attempt: 1,
		lastErr: err,
		nextTry: time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
	})
}

// Publish satisfies Bus; failures are absorbed into the retry queue
func (rp *ResilientPublisher) Publish(ctx context.Context, evt Event) error {
	rp.PublishWithRetry(ctx, evt)
	return nil
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-rp.shutdown:
		rp.writeDeadLetter(entry, LogMsgEventDroppedShutdown)
		return
	default:
	}

	select {
	case rp.retryQueue <- entry:
	default:
		rp.writeDeadLetter(entry, LogMsgRetryQueueFull)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case entry := <-rp.retryQueue:
			rp.process(entry)
		case <-rp.shutdown:
			rp.drain()
			return
		}
	}
}

func (rp *ResilientPublisher) process(entry retryEntry) {
	if wait := time.Until(entry.nextTry); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-rp.shutdown:
			timer.Stop()
		}
	}
	rp.attempt(entry)
}

// attempt publishes once more and either reschedules or dead-letters the entry
func (rp *ResilientPublisher) attempt(entry retryEntry) {
	log := logger.FromContext(context.Background())

	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}
	entry.lastErr = err

	if entry.attempt >= rp.maxRetries {
		rp.writeDeadLetter(entry, LogMsgEventRetryExhausted)
		return
	}

	entry.attempt++
	entry.nextTry = time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt))
	log.Debug(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)

	select {
	case rp.retryQueue <- entry:
	default:
		rp.writeDeadLetter(entry, LogMsgRetryQueueFull)
	}
}

// drain gives every queued event one last immediate attempt
func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			drained++
			err := rp.bus.Publish(context.Background(), entry.event)
			if err != nil {
				entry.lastErr = err
				rp.writeDeadLetter(entry, LogMsgEventDroppedShutdown)
			}
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry, reason string) {
	logger.Warn(reason, "event_type", entry.event.Type, "attempts", entry.attempt)
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the worker, drains the queue and closes the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	rp.closeOnce.Do(func() { close(rp.shutdown) })

	done := make(chan struct{})
	go func() {
		rp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if rp.deadLetter != nil {
			return rp.deadLetter.Close()
		}
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return errors.Join(ctx.Err(), errShutdownTimeout)
	}
}

var errShutdownTimeout = errors.New("resilient publisher did not drain in time")
