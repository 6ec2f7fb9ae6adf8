package invite

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// MockInviteRepository
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) CreatePreUser(ctx context.Context, p *domain.PreUser) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockInviteRepository) GetPreUser(ctx context.Context, id string) (*domain.PreUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreUser), args.Error(1)
}

func (m *MockInviteRepository) GetPreUserByToken(ctx context.Context, token string) (*domain.PreUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreUser), args.Error(1)
}

func (m *MockInviteRepository) BeginInviteTx(ctx context.Context) (repository.InviteTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.InviteTx), args.Error(1)
}

// MockInviteTx
type MockInviteTx struct {
	mock.Mock
}

func (m *MockInviteTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInviteTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInviteTx) CreateProfile(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockInviteTx) SetCredential(ctx context.Context, userID string, hash []byte) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *MockInviteTx) GetPreUserForUpdate(ctx context.Context, id string) (*domain.PreUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreUser), args.Error(1)
}

func (m *MockInviteTx) IncrementLoginCount(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error) {
	args := m.Called(ctx, userID, day, limit)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockInviteTx) MarkPreUserUsed(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, userID, at)
	return args.Bool(0), args.Error(1)
}

// MockAccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetProfileByNickname(ctx context.Context, nickname string) (*domain.Profile, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockAccountRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockAccountRepository) GetCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockAccountRepository) SetCredential(ctx context.Context, userID string, hash []byte) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *MockAccountRepository) BeginAccountTx(ctx context.Context) (repository.AccountTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.AccountTx), args.Error(1)
}

// MockLoginLimitRepository
type MockLoginLimitRepository struct {
	mock.Mock
}

func (m *MockLoginLimitRepository) IncrementLoginCount(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error) {
	args := m.Called(ctx, userID, day, limit)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockLoginLimitRepository) GetLoginCount(ctx context.Context, userID string, day time.Time) (int, error) {
	args := m.Called(ctx, userID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockLoginLimitRepository) PurgeLoginCountersBefore(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Issue(userID, nickname string) (string, time.Time, error) {
	args := m.Called(userID, nickname)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}
