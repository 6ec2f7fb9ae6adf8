package progression

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

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

// MockProgression
type MockProgression struct {
	mock.Mock
}

func (m *MockProgression) BeginProgressionTx(ctx context.Context) (repository.ProgressionTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ProgressionTx), args.Error(1)
}

// MockProgressionTx
type MockProgressionTx struct {
	mock.Mock
}

func (m *MockProgressionTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProgressionTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockProgressionTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProgressionTx) ConsumeArtifact(ctx context.Context, artifactID string, at time.Time) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, artifactID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockProgressionTx) AscendLevel(ctx context.Context, userID string, fromLevel, threshold int) (*domain.Profile, error) {
	args := m.Called(ctx, userID, fromLevel, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

// MockExamIssuer
type MockExamIssuer struct {
	mock.Mock
}

func (m *MockExamIssuer) Create(ctx context.Context, req domain.ArtifactRequest) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

// staticLevels serves the default table
type staticLevels struct {
	calls int
	err   error
}

func (s *staticLevels) ListLevels(context.Context) ([]domain.LevelInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.LevelInfo(nil), domain.DefaultLevels...), nil
}
