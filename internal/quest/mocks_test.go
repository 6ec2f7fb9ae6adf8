package quest

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// MockQuestRepository
type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) CompletedQuestIDs(ctx context.Context, userID string, day time.Time) (map[string]bool, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockQuestRepository) CountCompletionsOn(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestRepository) BeginQuestTx(ctx context.Context) (repository.QuestTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.QuestTx), args.Error(1)
}

// MockQuestTx
type MockQuestTx struct {
	mock.Mock
}

func (m *MockQuestTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockQuestTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockQuestTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockQuestTx) ConsumeArtifact(ctx context.Context, artifactID string, at time.Time) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, artifactID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockQuestTx) ApplyReward(ctx context.Context, userID string, reward domain.Reward, style domain.PlayStyle) (*domain.Profile, error) {
	args := m.Called(ctx, userID, reward, style)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockQuestTx) InsertCompletion(ctx context.Context, completion *domain.QuestCompletion, repeatable bool) error {
	args := m.Called(ctx, completion, repeatable)
	return args.Error(0)
}

func (m *MockQuestTx) InsertQuestPayment(ctx context.Context, userID, questID string, coins int) error {
	args := m.Called(ctx, userID, questID, coins)
	return args.Error(0)
}

// MockCatalog only implements the reads the quest service uses
type MockCatalog struct {
	mock.Mock
	repository.Catalog
}

func (m *MockCatalog) ListQuests(ctx context.Context, includeInactive bool) ([]domain.Quest, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockCatalog) GetQuest(ctx context.Context, id string) (*domain.Quest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetProfileByNickname(ctx context.Context, nickname string) (*domain.Profile, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListProfiles(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Create(ctx context.Context, req domain.ArtifactRequest) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockVerifier) GetOwned(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

// MockWaiter
type MockWaiter struct {
	mock.Mock
}

func (m *MockWaiter) Wait(ctx context.Context, id string) (domain.ArtifactStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ArtifactStatus), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

// MockInvalidator
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(userID string) {
	m.Called(userID)
}
