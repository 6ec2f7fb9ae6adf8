package verification

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// ArtifactReader is the part of Service the waiter needs
type ArtifactReader interface {
	Get(ctx context.Context, id string) (*domain.VerificationArtifact, error)
	Expire(ctx context.Context, id string) (*domain.VerificationArtifact, error)
}

// Waiter blocks until an artifact reaches a terminal state.
// It polls and listens for pushed status changes; whichever reports first wins.
type Waiter struct {
	artifacts    ArtifactReader
	notifier     *Notifier
	pollInterval time.Duration
	clock        func() time.Time
}

// NewWaiter creates a waiter. notifier may be nil, in which case only polling is used.
func NewWaiter(artifacts ArtifactReader, notifier *Notifier, pollInterval time.Duration, clock func() time.Time) *Waiter {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if clock == nil {
		clock = time.Now
	}
	return &Waiter{
		artifacts:    artifacts,
		notifier:     notifier,
		pollInterval: pollInterval,
		clock:        clock,
	}
}

// Wait returns the artifact's terminal status. Reaching expires_at forces it to expired.
// Context cancellation returns ctx.Err() and leaves the artifact untouched.
func (w *Waiter) Wait(ctx context.Context, id string) (domain.ArtifactStatus, error) {
	a, err := w.artifacts.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if a.Status.Terminal() {
		return a.Status, nil
	}

	var pushed <-chan domain.ArtifactStatus
	if w.notifier != nil {
		ch, stop := w.notifier.Watch(id)
		defer stop()
		pushed = ch
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(a.ExpiresAt.Sub(w.clock()))
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case status := <-pushed:
			if status.Terminal() {
				return status, nil
			}

		case <-ticker.C:
			current, err := w.artifacts.Get(ctx, id)
			if err != nil {
				logger.FromContext(ctx).Warn(LogMsgWaitPollFailed, "artifact_id", id, "error", err)
				continue
			}
			if current.Status.Terminal() {
				return current.Status, nil
			}

		case <-deadline.C:
			expired, err := w.artifacts.Expire(ctx, id)
			if err != nil {
				return "", err
			}
			return expired.Status, nil
		}
	}
}
