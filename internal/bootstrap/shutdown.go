package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/scheduler"
	"github.com/osse101/DreamJournal_Go/internal/server"
	"github.com/osse101/DreamJournal_Go/internal/sse"
	"github.com/osse101/DreamJournal_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Hub                *sse.Hub
	Scheduler          *scheduler.Scheduler
	Pool               *worker.Pool
	DailyResetWorker   *worker.DailyResetWorker
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order:
// 1. event streams, so open SSE responses end and the server can drain
// 2. HTTP server (stop accepting new requests)
// 3. background jobs
// 4. event publisher (flush pending retries)
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}
	if c.DailyResetWorker != nil {
		if err := c.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDailyResetShutdownFailed, "error", err)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
