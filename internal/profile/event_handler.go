package profile

import (
	"context"

	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// EventHandler evicts snapshots when another component mutates a profile
type EventHandler struct {
	service Service
}

// NewEventHandler creates a new profile event handler
func NewEventHandler(service Service) *EventHandler {
	return &EventHandler{service: service}
}

// Register subscribes the handler to every profile-mutating event
func (h *EventHandler) Register(bus event.Bus) {
	bus.Subscribe(event.QuestCompleted, h.HandleQuestCompleted)
	bus.Subscribe(event.CheckInCompleted, h.HandleQuestCompleted)
	bus.Subscribe(event.LevelAscended, h.HandleLevelAscended)
	bus.Subscribe(event.ItemRedeemed, h.HandleItemRedeemed)
	bus.Subscribe(event.CatalogChanged, h.HandleCatalogChanged)
}

// HandleQuestCompleted evicts the completing user
func (h *EventHandler) HandleQuestCompleted(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidateFailed, "event_type", evt.Type, "error", err)
		return err
	}
	h.service.Invalidate(payload.UserID)
	return nil
}

// HandleLevelAscended evicts the ascending user
func (h *EventHandler) HandleLevelAscended(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LevelAscendedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidateFailed, "event_type", evt.Type, "error", err)
		return err
	}
	h.service.Invalidate(payload.UserID)
	return nil
}

// HandleItemRedeemed evicts the redeeming user
func (h *EventHandler) HandleItemRedeemed(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemRedeemedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidateFailed, "event_type", evt.Type, "error", err)
		return err
	}
	h.service.Invalidate(payload.UserID)
	return nil
}

// HandleCatalogChanged flushes the whole cache after a level edit since every
// snapshot embeds its level row. Quest and shop edits leave snapshots alone.
func (h *EventHandler) HandleCatalogChanged(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CatalogChangedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidateFailed, "event_type", evt.Type, "error", err)
		return err
	}
	if payload.Entity == CatalogEntityLevel {
		h.service.InvalidateAll()
	}
	return nil
}
