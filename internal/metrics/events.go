package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.QuestCompleted,
		event.CheckInCompleted,
		event.LevelAscended,
		event.ItemRedeemed,
		event.VerificationStatusChanged,
		event.UserRegistered,
		event.UserLoggedIn,
		event.LoginDailyReset,
		event.CatalogChanged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.QuestCompleted, event.CheckInCompleted:
		var p event.QuestCompletedPayloadV1
		if p, err = event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload); err == nil {
			if evt.Type == event.CheckInCompleted {
				CheckIns.Inc()
			} else {
				QuestsCompleted.WithLabelValues(p.Category).Inc()
			}
			InspirationEarned.Add(float64(p.RewardInspiration))
			YCEarned.Add(float64(p.RewardYC))
		}

	case event.LevelAscended:
		var p event.LevelAscendedPayloadV1
		if p, err = event.DecodePayload[event.LevelAscendedPayloadV1](evt.Payload); err == nil {
			Ascensions.WithLabelValues(strconv.Itoa(p.NewLevel)).Inc()
		}

	case event.ItemRedeemed:
		var p event.ItemRedeemedPayloadV1
		if p, err = event.DecodePayload[event.ItemRedeemedPayloadV1](evt.Payload); err == nil {
			ItemsRedeemed.WithLabelValues(p.ItemID).Inc()
			YCSpent.Add(float64(p.CostYC))
		}

	case event.VerificationStatusChanged:
		var p event.VerificationStatusChangedPayloadV1
		if p, err = event.DecodePayload[event.VerificationStatusChangedPayloadV1](evt.Payload); err == nil {
			VerificationOutcomes.WithLabelValues(p.Kind, p.Status).Inc()
		}

	case event.UserRegistered, event.UserLoggedIn:
		var p event.UserLoggedInPayloadV1
		if p, err = event.DecodePayload[event.UserLoggedInPayloadV1](evt.Payload); err == nil {
			Logins.WithLabelValues(p.Path).Inc()
			if p.Created {
				Registrations.WithLabelValues(p.Path).Inc()
			}
		}

	case event.LoginDailyReset:
		var p event.LoginDailyResetPayloadV1
		if p, err = event.DecodePayload[event.LoginDailyResetPayloadV1](evt.Payload); err == nil {
			LoginCountersPurged.Add(float64(p.Purged))
		}

	case event.CatalogChanged:
		var p event.CatalogChangedPayloadV1
		if p, err = event.DecodePayload[event.CatalogChangedPayloadV1](evt.Payload); err == nil {
			CatalogChanges.WithLabelValues(p.Entity, p.Action).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// InstrumentedBus counts handler failures for every subscription made through it
type InstrumentedBus struct {
	event.Bus
}

// NewInstrumentedBus wraps bus
func NewInstrumentedBus(bus event.Bus) *InstrumentedBus {
	return &InstrumentedBus{Bus: bus}
}

// Subscribe registers handler behind an error counter
func (b *InstrumentedBus) Subscribe(eventType event.Type, handler event.Handler) {
	b.Bus.Subscribe(eventType, func(ctx context.Context, evt event.Event) error {
		err := handler(ctx, evt)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			logger.FromContext(ctx).Warn(LogMsgHandlerFailed, "type", evt.Type, "error", err)
		}
		return err
	})
}
