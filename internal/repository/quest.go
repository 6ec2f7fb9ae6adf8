package repository

import (
	"context"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

// Quest defines data access for quest completions.
type Quest interface {
	// CompletedQuestIDs returns quests the user may not complete again on day:
	// repeatable quests completed on day and one-time quests completed ever.
	CompletedQuestIDs(ctx context.Context, userID string, day time.Time) (map[string]bool, error)
	CountCompletionsOn(ctx context.Context, day time.Time) (int, error)

	BeginQuestTx(ctx context.Context) (QuestTx, error)
}

// QuestTx applies a quest reward atomically.
type QuestTx interface {
	ProfileTx
	ArtifactTx

	// ApplyReward credits rewards, debits coins and sets the play style.
	ApplyReward(ctx context.Context, userID string, reward domain.Reward, style domain.PlayStyle) (*domain.Profile, error)
	// InsertCompletion returns domain.ErrQuestAlreadyCompleted on a duplicate.
	InsertCompletion(ctx context.Context, completion *domain.QuestCompletion, repeatable bool) error
	InsertQuestPayment(ctx context.Context, userID, questID string, coins int) error
}
