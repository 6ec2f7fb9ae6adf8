package quest

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/logger"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// Service implements the quest catalog view and the quest completion flow
type Service interface {
	ListQuests(ctx context.Context, userID string) ([]domain.QuestView, error)
	Complete(ctx context.Context, userID, questID string) (*domain.CompletionResult, error)
	StartVerification(ctx context.Context, userID, questID string) (*domain.VerificationArtifact, error)
	CompleteVerified(ctx context.Context, userID, artifactID string) (*domain.CompletionResult, error)
	AwaitAndComplete(ctx context.Context, userID, artifactID string) (*domain.CompletionResult, error)
	CheckIn(ctx context.Context, userID string) (*domain.CompletionResult, error)
}

// Verifier is the part of the verification service quests depend on
type Verifier interface {
	Create(ctx context.Context, req domain.ArtifactRequest) (*domain.VerificationArtifact, error)
	GetOwned(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error)
}

// Waiter blocks until an artifact reaches a terminal status
type Waiter interface {
	Wait(ctx context.Context, id string) (domain.ArtifactStatus, error)
}

// CacheInvalidator drops cached profile snapshots after a mutation
type CacheInvalidator interface {
	Invalidate(userID string)
}

type service struct {
	quests      repository.Quest
	catalog     repository.Catalog
	profiles    repository.Profile
	verifier    Verifier
	waiter      Waiter
	publisher   event.Publisher
	invalidator CacheInvalidator
	day         domain.DayBoundary
	clock       func() time.Time
}

// Deps groups the collaborators of the quest service
type Deps struct {
	Quests      repository.Quest
	Catalog     repository.Catalog
	Profiles    repository.Profile
	Verifier    Verifier
	Waiter      Waiter
	Publisher   event.Publisher
	Invalidator CacheInvalidator
	Day         domain.DayBoundary
	Clock       func() time.Time
}

// NewService creates a new quest service
func NewService(d Deps) Service {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		quests:      d.Quests,
		catalog:     d.Catalog,
		profiles:    d.Profiles,
		verifier:    d.Verifier,
		waiter:      d.Waiter,
		publisher:   d.Publisher,
		invalidator: d.Invalidator,
		day:         d.Day,
		clock:       clock,
	}
}

// checkInQuest is the built-in quest recorded by a scan with no pending quest
var checkInQuest = domain.Quest{
	ID:       domain.CheckInQuestID,
	Category: domain.QuestCategoryDaily,
	Title:    "扫码签到",
	MinLevel: domain.DefaultLevel,
	RewardYC: domain.CheckInRewardYC,
	IsActive: true,
}

// ListQuests returns every active quest annotated for the user
func (s *service) ListQuests(ctx context.Context, userID string) ([]domain.QuestView, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	quests, err := s.catalog.ListQuests(ctx, false)
	if err != nil {
		return nil, err
	}
	completed, err := s.quests.CompletedQuestIDs(ctx, userID, s.day.Day(s.clock()))
	if err != nil {
		return nil, err
	}

	views := make([]domain.QuestView, 0, len(quests))
	for _, q := range quests {
		views = append(views, domain.QuestView{
			Quest:      q,
			Locked:     profile.Level < q.MinLevel,
			Affordable: profile.Coins >= q.CostCoins,
			Completed:  completed[q.ID],
		})
	}
	return views, nil
}

// Complete credits a quest that needs no verification
func (s *service) Complete(ctx context.Context, userID, questID string) (*domain.CompletionResult, error) {
	q, err := s.activeQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if q.NeedsVerification {
		return nil, domain.ErrVerificationRequired
	}
	if err := s.precheck(ctx, userID, q); err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, q, "")
}

// StartVerification validates the quest and issues a quest verification artifact.
// Quests completed directly never get an artifact.
func (s *service) StartVerification(ctx context.Context, userID, questID string) (*domain.VerificationArtifact, error) {
	q, err := s.activeQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if !q.NeedsVerification {
		return nil, domain.ErrVerificationNotAllowed
	}
	if err := s.precheck(ctx, userID, q); err != nil {
		return nil, err
	}

	a, err := s.verifier.Create(ctx, domain.ArtifactRequest{
		Kind:    domain.ArtifactKindQuest,
		UserID:  userID,
		QuestID: q.ID,
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgVerificationStarted, "user_id", userID, "quest_id", q.ID, "artifact_id", a.ID)
	return a, nil
}

// CompleteVerified credits the quest behind a verified artifact and consumes it
func (s *service) CompleteVerified(ctx context.Context, userID, artifactID string) (*domain.CompletionResult, error) {
	a, err := s.verifier.GetOwned(ctx, userID, artifactID)
	if err != nil {
		return nil, err
	}
	if err := requireVerified(a); err != nil {
		return nil, err
	}
	if a.Kind != domain.ArtifactKindQuest || a.QuestID == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMismatch, ErrMsgArtifactWrongKind)
	}

	q, err := s.activeQuest(ctx, *a.QuestID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, q, a.ID)
}

// AwaitAndComplete waits for the artifact to resolve and credits the quest if it was verified.
// Expiry, cancellation and context cancellation leave everything unmutated.
func (s *service) AwaitAndComplete(ctx context.Context, userID, artifactID string) (*domain.CompletionResult, error) {
	if _, err := s.verifier.GetOwned(ctx, userID, artifactID); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug(LogMsgAwaitingVerification, "user_id", userID, "artifact_id", artifactID)
	status, err := s.waiter.Wait(ctx, artifactID)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.ArtifactStatusVerified:
		return s.CompleteVerified(ctx, userID, artifactID)
	case domain.ArtifactStatusExpired:
		logger.FromContext(ctx).Info(LogMsgVerificationNotSuccess, "artifact_id", artifactID, "status", status)
		return nil, domain.ErrVerificationExpired
	default:
		logger.FromContext(ctx).Info(LogMsgVerificationNotSuccess, "artifact_id", artifactID, "status", status)
		return nil, domain.ErrVerificationCancelled
	}
}

// CheckIn grants the check-in reward once per login day
func (s *service) CheckIn(ctx context.Context, userID string) (*domain.CompletionResult, error) {
	q := checkInQuest
	if err := s.precheck(ctx, userID, &q); err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, &q, "")
}

func (s *service) activeQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	q, err := s.catalog.GetQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if !q.IsActive {
		return nil, domain.ErrQuestNotFound
	}
	return q, nil
}

// precheck reports gate, cost and idempotence failures before anything is written.
// apply repeats the gate and cost checks under the row lock.
func (s *service) precheck(ctx context.Context, userID string, q *domain.Quest) error {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := checkGate(profile, q); err != nil {
		return err
	}

	completed, err := s.quests.CompletedQuestIDs(ctx, userID, s.day.Day(s.clock()))
	if err != nil {
		return err
	}
	if completed[q.ID] {
		return domain.ErrQuestAlreadyCompleted
	}
	return nil
}

func checkGate(p *domain.Profile, q *domain.Quest) error {
	if p.Level < q.MinLevel {
		return fmt.Errorf("%w: "+ErrMsgRequiresLevel, domain.ErrQuestLocked, q.MinLevel)
	}
	if q.CostCoins > 0 && p.Coins < q.CostCoins {
		return fmt.Errorf("%w: "+ErrMsgCoinsShort, domain.ErrInsufficientCoins, q.CostCoins, p.Coins)
	}
	return nil
}

func requireVerified(a *domain.VerificationArtifact) error {
	switch a.Status {
	case domain.ArtifactStatusVerified:
		return nil
	case domain.ArtifactStatusExpired:
		return domain.ErrVerificationExpired
	case domain.ArtifactStatusCancelled:
		return domain.ErrVerificationCancelled
	default:
		return domain.ErrArtifactNotVerified
	}
}

// apply runs the reward transaction. When artifactID is set the artifact is
// consumed in the same transaction so a verification can only pay out once.
func (s *service) apply(ctx context.Context, userID string, q *domain.Quest, artifactID string) (*domain.CompletionResult, error) {
	log := logger.FromContext(ctx)
	now := s.clock()

	tx, err := s.quests.BeginQuestTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	if artifactID != "" {
		a, err := tx.ConsumeArtifact(ctx, artifactID, now)
		if err != nil {
			return nil, err
		}
		if a.UserID != userID {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMismatch, ErrMsgArtifactWrongUser)
		}
		if a.Kind != domain.ArtifactKindQuest || a.QuestID == nil || *a.QuestID != q.ID {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactMismatch, ErrMsgArtifactWrongKind)
		}
	}

	profile, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkGate(profile, q); err != nil {
		return nil, err
	}

	completion := &domain.QuestCompletion{
		UserID:      userID,
		QuestID:     q.ID,
		Status:      domain.CompletionStatusCompleted,
		CompletedOn: s.day.Day(now),
		CompletedAt: now,
	}
	if err := tx.InsertCompletion(ctx, completion, q.Category.Repeatable()); err != nil {
		return nil, err
	}

	reward := domain.Reward{
		Inspiration: q.RewardInspiration,
		YC:          q.RewardYC,
		CoinsSpent:  q.CostCoins,
	}
	style := domain.NextPlayStyle(profile.PlayStyle, q.Category)
	updated, err := tx.ApplyReward(ctx, userID, reward, style)
	if err != nil {
		return nil, err
	}

	if q.CostCoins > 0 {
		if err := tx.InsertQuestPayment(ctx, userID, q.ID, q.CostCoins); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(userID)
	}

	result := &domain.CompletionResult{
		QuestID:   q.ID,
		Reward:    reward,
		PlayStyle: updated.PlayStyle,
		Profile:   updated,
	}
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewQuestCompletedEvent(userID, q.Category, result, artifactID != ""))
	}

	msg := LogMsgQuestCompleted
	if q.ID == domain.CheckInQuestID {
		msg = LogMsgCheckInCompleted
	}
	log.Info(msg, "user_id", userID, "quest_id", q.ID,
		"inspiration", reward.Inspiration, "yc", reward.YC, "coins_spent", reward.CoinsSpent)
	return result, nil
}
