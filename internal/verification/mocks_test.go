package verification

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateArtifact(ctx context.Context, a *domain.VerificationArtifact) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) GetArtifact(ctx context.Context, id string) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockRepository) GetArtifactByPayload(ctx context.Context, payload string) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockRepository) TransitionArtifact(ctx context.Context, id string, to domain.ArtifactStatus, at time.Time) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, id, to, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockRepository) ExpireStale(ctx context.Context, now time.Time) ([]domain.VerificationArtifact, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VerificationArtifact), args.Error(1)
}

func (m *MockRepository) SetImageURL(ctx context.Context, id, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

// MockStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func pendingArtifact(id, userID string, createdAt time.Time, timeout time.Duration) *domain.VerificationArtifact {
	questID := "l1"
	return &domain.VerificationArtifact{
		ID:        id,
		Kind:      domain.ArtifactKindQuest,
		UserID:    userID,
		QuestID:   &questID,
		Payload:   PayloadPrefix + id,
		Status:    domain.ArtifactStatusGenerated,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(timeout),
	}
}

func withStatus(a *domain.VerificationArtifact, status domain.ArtifactStatus) *domain.VerificationArtifact {
	c := *a
	c.Status = status
	return &c
}
