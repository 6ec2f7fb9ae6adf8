package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/metrics"
	"github.com/osse101/DreamJournal_Go/internal/profile"
	"github.com/osse101/DreamJournal_Go/internal/sse"
)

// EventHandlerDependencies holds what the bus subscribers need.
type EventHandlerDependencies struct {
	EventBus       event.Bus
	ProfileService profile.Service
	Hub            *sse.Hub
}

// RegisterEventHandlers subscribes:
// - the profile snapshot invalidator
// - the SSE bridge pushing events to connected clients
// - the business metrics collector
//
// The verification notifier subscribes itself when constructed.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	profile.NewEventHandler(deps.ProfileService).Register(deps.EventBus)
	slog.Info(LogMsgProfileHandlerRegistered)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	if err := metrics.NewEventMetricsCollector().Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
