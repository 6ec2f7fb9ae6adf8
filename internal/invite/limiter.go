package invite

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/metrics"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// LoginLimiter caps logins per user per login day
type LoginLimiter struct {
	repo  repository.LoginLimit
	limit int
	day   domain.DayBoundary
}

// NewLoginLimiter creates a limiter; limit <= 0 disables it
func NewLoginLimiter(repo repository.LoginLimit, limit int, day domain.DayBoundary) *LoginLimiter {
	return &LoginLimiter{repo: repo, limit: limit, day: day}
}

// Acquire counts one login for userID at now. When the day's allowance is
// spent it returns a *domain.LoginLimitError carrying the next reset.
func (l *LoginLimiter) Acquire(ctx context.Context, userID string, now time.Time) error {
	if l == nil || l.repo == nil {
		return nil
	}
	return l.AcquireWith(ctx, l.repo, userID, now)
}

// AcquireWith is Acquire counting through c, typically an open transaction
func (l *LoginLimiter) AcquireWith(ctx context.Context, c repository.LoginCounter, userID string, now time.Time) error {
	if l == nil {
		return nil
	}
	_, ok, err := c.IncrementLoginCount(ctx, userID, l.day.Day(now), l.limit)
	if err != nil {
		return err
	}
	if !ok {
		metrics.LoginLimitRejections.Inc()
		logger.FromContext(ctx).Info(LogMsgLoginLimitReached, "user_id", userID, "limit", l.limit)
		return &domain.LoginLimitError{Limit: l.limit, ResetAt: l.NextReset(now).Unix()}
	}
	return nil
}

// Remaining returns how many logins are left today, or -1 when unlimited
func (l *LoginLimiter) Remaining(ctx context.Context, userID string, now time.Time) (int, error) {
	if l.limit <= 0 {
		return -1, nil
	}
	used, err := l.repo.GetLoginCount(ctx, userID, l.day.Day(now))
	if err != nil {
		return 0, err
	}
	return max(l.limit-used, 0), nil
}

// NextReset returns the next login day boundary after now
func (l *LoginLimiter) NextReset(now time.Time) time.Time {
	return l.day.NextReset(now)
}

// PurgeExpired deletes counters for login days before the one containing now
func (l *LoginLimiter) PurgeExpired(ctx context.Context, now time.Time) (time.Time, int64, error) {
	today := l.day.Day(now)
	n, err := l.repo.PurgeLoginCountersBefore(ctx, today)
	return today, n, err
}
