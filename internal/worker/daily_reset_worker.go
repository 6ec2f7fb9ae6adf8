package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// LoginCounterPurger drops login counters from finished login days
type LoginCounterPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (time.Time, int64, error)
}

// DailyResetWorker rolls the login day over at ResetHour in the configured timezone
type DailyResetWorker struct {
	purger    LoginCounterPurger
	publisher event.Publisher
	location  *time.Location
	hour      int
	now       func() time.Time

	scheduler gocron.Scheduler
	job       gocron.Job
}

// NewDailyResetWorker creates a new DailyResetWorker
func NewDailyResetWorker(purger LoginCounterPurger, publisher event.Publisher, location *time.Location, hour int) *DailyResetWorker {
	if location == nil {
		location = time.UTC
	}
	return &DailyResetWorker{
		purger:    purger,
		publisher: publisher,
		location:  location,
		hour:      hour,
		now:       time.Now,
	}
}

// Start registers the daily job and starts the scheduler
func (w *DailyResetWorker) Start() error {
	s, err := gocron.NewScheduler(gocron.WithLocation(w.location))
	if err != nil {
		return fmt.Errorf("create reset scheduler: %w", err)
	}

	job, err := s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(w.hour), 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			_ = w.Reset(ctx)
		}),
		gocron.WithName(DailyResetJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("schedule daily reset: %w", err)
	}

	w.scheduler = s
	w.job = job
	s.Start()

	next, _ := job.NextRun()
	logger.FromContext(context.Background()).Info(LogMsgDailyResetScheduled,
		"next_reset_at", next, "timezone", w.location.String(), "hour", w.hour)
	return nil
}

// Reset purges stale counters and announces the new login day
func (w *DailyResetWorker) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetStarting)

	day, purged, err := w.purger.PurgeExpired(ctx, w.now())
	if err != nil {
		log.Error(LogMsgDailyResetFailed, "error", err)
		return err
	}

	log.Info(LogMsgDailyResetCompleted, "day", day.Format(time.DateOnly), "purged", purged)
	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewLoginDailyResetEvent(day, purged))
	}
	return nil
}

// Trigger runs the reset immediately, outside the schedule
func (w *DailyResetWorker) Trigger(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgDailyResetManualTrigger)
	return w.Reset(ctx)
}

// NextRun reports when the scheduled reset fires next
func (w *DailyResetWorker) NextRun() (time.Time, error) {
	if w.job == nil {
		return time.Time{}, fmt.Errorf("daily reset worker not started")
	}
	return w.job.NextRun()
}

// Shutdown stops the scheduler and waits for a running reset to finish
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	if w.scheduler == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- w.scheduler.Shutdown() }()

	select {
	case err := <-done:
		logger.FromContext(ctx).Info(LogMsgDailyResetShutdown)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
