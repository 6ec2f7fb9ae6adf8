package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from map metadata, nil otherwise
func (e Event) GetMetadataValue(key string) interface{} {
	m, ok := e.Metadata.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

// Event types published on the bus
const (
	QuestCompleted            Type = Type(domain.EventTypeQuestCompleted)
	CheckInCompleted          Type = Type(domain.EventTypeCheckIn)
	LevelAscended             Type = Type(domain.EventTypeLevelAscended)
	ItemRedeemed              Type = Type(domain.EventTypeItemRedeemed)
	VerificationStatusChanged Type = Type(domain.EventTypeVerificationStatusChanged)
	UserRegistered            Type = Type(domain.EventTypeUserRegistered)
	UserLoggedIn              Type = Type(domain.EventTypeUserLoggedIn)
	LoginDailyReset           Type = Type(domain.EventTypeLoginDailyReset)
	CatalogChanged            Type = Type(domain.EventTypeCatalogChanged)
)

// QuestCompletedPayloadV1 is published for every credited quest, check-in included
type QuestCompletedPayloadV1 struct {
	UserID            string `json:"user_id"`
	QuestID           string `json:"quest_id"`
	Category          string `json:"category"`
	RewardInspiration int    `json:"reward_inspiration"`
	RewardYC          int    `json:"reward_yc"`
	CoinsSpent        int    `json:"coins_spent"`
	Verified          bool   `json:"verified"`
	Timestamp         int64  `json:"timestamp"`
}

// LevelAscendedPayloadV1 is published after a successful ascension
type LevelAscendedPayloadV1 struct {
	UserID         string   `json:"user_id"`
	PreviousLevel  int      `json:"previous_level"`
	NewLevel       int      `json:"new_level"`
	UnlockedSkills []string `json:"unlocked_skills,omitempty"`
	ExamArtifactID string   `json:"exam_artifact_id,omitempty"`
	Timestamp      int64    `json:"timestamp"`
}

// ItemRedeemedPayloadV1 is published after a shop redemption commits
type ItemRedeemedPayloadV1 struct {
	UserID    string `json:"user_id"`
	ItemID    string `json:"item_id"`
	CostYC    int    `json:"cost_yc"`
	YCAfter   int    `json:"yc_after"`
	Timestamp int64  `json:"timestamp"`
}

// VerificationStatusChangedPayloadV1 carries an artifact's terminal transition
type VerificationStatusChangedPayloadV1 struct {
	ArtifactID  string `json:"artifact_id"`
	Kind        string `json:"kind"`
	UserID      string `json:"user_id"`
	Status      string `json:"status"`
	QuestID     string `json:"quest_id,omitempty"`
	TargetLevel int    `json:"target_level,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// UserLoggedInPayloadV1 records which login path admitted the user
type UserLoggedInPayloadV1 struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	Path      string `json:"path"`
	Created   bool   `json:"created"`
	Timestamp int64  `json:"timestamp"`
}

// LoginDailyResetPayloadV1 is published by the reset job once counters are purged
type LoginDailyResetPayloadV1 struct {
	Day       string `json:"day"`
	Purged    int64  `json:"purged"`
	Timestamp int64  `json:"timestamp"`
}

// CatalogChangedPayloadV1 is published by admin catalog edits and catalog sync
type CatalogChangedPayloadV1 struct {
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

func newEvent(t Type, payload interface{}) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// NewQuestCompletedEvent builds a quest completion event from a committed result
func NewQuestCompletedEvent(userID string, category domain.QuestCategory, result *domain.CompletionResult, verified bool) Event {
	t := QuestCompleted
	if result.QuestID == domain.CheckInQuestID {
		t = CheckInCompleted
	}
	return newEvent(t, QuestCompletedPayloadV1{
		UserID:            userID,
		QuestID:           result.QuestID,
		Category:          string(category),
		RewardInspiration: result.Reward.Inspiration,
		RewardYC:          result.Reward.YC,
		CoinsSpent:        result.Reward.CoinsSpent,
		Verified:          verified,
		Timestamp:         time.Now().Unix(),
	})
}

// NewLevelAscendedEvent builds an ascension event
func NewLevelAscendedEvent(userID string, result *domain.AscensionResult) Event {
	unlocked := make([]string, 0, len(result.NewlyUnlocked))
	for _, sp := range result.NewlyUnlocked {
		unlocked = append(unlocked, sp.Key)
	}
	return newEvent(LevelAscended, LevelAscendedPayloadV1{
		UserID:         userID,
		PreviousLevel:  result.PreviousLevel,
		NewLevel:       result.NewLevel,
		UnlockedSkills: unlocked,
		ExamArtifactID: result.ExamArtifactID,
		Timestamp:      time.Now().Unix(),
	})
}

// NewItemRedeemedEvent builds a redemption event
func NewItemRedeemedEvent(userID string, result *domain.RedemptionResult) Event {
	return newEvent(ItemRedeemed, ItemRedeemedPayloadV1{
		UserID:    userID,
		ItemID:    result.ItemID,
		CostYC:    result.CostYC,
		YCAfter:   result.YCAfter,
		Timestamp: time.Now().Unix(),
	})
}

// NewVerificationStatusChangedEvent builds an artifact transition event
func NewVerificationStatusChangedEvent(a *domain.VerificationArtifact) Event {
	p := VerificationStatusChangedPayloadV1{
		ArtifactID: a.ID,
		Kind:       string(a.Kind),
		UserID:     a.UserID,
		Status:     string(a.Status),
		Timestamp:  time.Now().Unix(),
	}
	if a.QuestID != nil {
		p.QuestID = *a.QuestID
	}
	if a.TargetLevel != nil {
		p.TargetLevel = *a.TargetLevel
	}
	return newEvent(VerificationStatusChanged, p)
}

// NewUserLoggedInEvent builds a login event; created marks a first-use registration
func NewUserLoggedInEvent(profile *domain.Profile, path string, created bool) Event {
	t := UserLoggedIn
	if created {
		t = UserRegistered
	}
	return newEvent(t, UserLoggedInPayloadV1{
		UserID:    profile.ID,
		Nickname:  profile.Nickname,
		Path:      path,
		Created:   created,
		Timestamp: time.Now().Unix(),
	})
}

// NewLoginDailyResetEvent builds the reset notification
func NewLoginDailyResetEvent(day time.Time, purged int64) Event {
	return newEvent(LoginDailyReset, LoginDailyResetPayloadV1{
		Day:       day.Format(time.DateOnly),
		Purged:    purged,
		Timestamp: time.Now().Unix(),
	})
}

// NewCatalogChangedEvent builds a catalog edit event
func NewCatalogChangedEvent(entity, entityID, action string) Event {
	return newEvent(CatalogChanged, CatalogChangedPayloadV1{
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Timestamp: time.Now().Unix(),
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber for the event type synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
