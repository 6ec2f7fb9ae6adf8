package worker

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// ExpirySweeper expires pending verification artifacts past their deadline
type ExpirySweeper interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// VerificationExpiryJob enforces artifact timeouts even when no client is polling
type VerificationExpiryJob struct {
	sweeper ExpirySweeper
	now     func() time.Time
}

// NewVerificationExpiryJob creates the sweep job
func NewVerificationExpiryJob(sweeper ExpirySweeper) *VerificationExpiryJob {
	return &VerificationExpiryJob{sweeper: sweeper, now: time.Now}
}

// Process runs one sweep
func (j *VerificationExpiryJob) Process(ctx context.Context) error {
	n, err := j.sweeper.ExpireStale(ctx, j.now())
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgExpirySweepCompleted, "expired", n)
	}
	return nil
}
