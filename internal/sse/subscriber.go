package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/DreamJournal_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers handlers for every event a client can see
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.VerificationStatusChanged, s.handleVerification)
	s.bus.Subscribe(event.QuestCompleted, s.handleReward)
	s.bus.Subscribe(event.CheckInCompleted, s.handleReward)
	s.bus.Subscribe(event.LevelAscended, s.handleAscension)
	s.bus.Subscribe(event.ItemRedeemed, s.handleRedemption)
	s.bus.Subscribe(event.CatalogChanged, s.handleCatalog)

	slog.Info(LogMsgSubscriberReady, "types", []string{
		string(event.VerificationStatusChanged),
		string(event.QuestCompleted),
		string(event.CheckInCompleted),
		string(event.LevelAscended),
		string(event.ItemRedeemed),
		string(event.CatalogChanged),
	})
}

func (s *Subscriber) push(userID, eventType string, payload interface{}) {
	if !s.hub.Publish(userID, eventType, payload) {
		slog.Warn(LogMsgEventDropped, "event_type", eventType, "user_id", userID)
		return
	}
	slog.Debug(LogMsgEventPushed, "event_type", eventType, "user_id", userID)
}

func (s *Subscriber) handleVerification(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.VerificationStatusChangedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.push(p.UserID, EventTypeVerification, VerificationPayload{
		ArtifactID:  p.ArtifactID,
		Kind:        p.Kind,
		Status:      p.Status,
		QuestID:     p.QuestID,
		TargetLevel: p.TargetLevel,
	})
	return nil
}

func (s *Subscriber) handleReward(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	eventType := EventTypeQuest
	if evt.Type == event.CheckInCompleted {
		eventType = EventTypeCheckIn
	}
	s.push(p.UserID, eventType, RewardPayload{
		QuestID:           p.QuestID,
		Category:          p.Category,
		RewardInspiration: p.RewardInspiration,
		RewardYC:          p.RewardYC,
	})
	return nil
}

func (s *Subscriber) handleAscension(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelAscendedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.push(p.UserID, EventTypeAscension, AscensionPayload{
		PreviousLevel:  p.PreviousLevel,
		NewLevel:       p.NewLevel,
		UnlockedSkills: p.UnlockedSkills,
	})
	return nil
}

func (s *Subscriber) handleRedemption(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.ItemRedeemedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.push(p.UserID, EventTypeRedemption, RedemptionPayload{
		ItemID:  p.ItemID,
		CostYC:  p.CostYC,
		YCAfter: p.YCAfter,
	})
	return nil
}

func (s *Subscriber) handleCatalog(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.CatalogChangedPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}
	s.push("", EventTypeCatalog, CatalogPayload{Entity: p.Entity, EntityID: p.EntityID, Action: p.Action})
	return nil
}
