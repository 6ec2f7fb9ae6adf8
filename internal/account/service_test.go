package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/invite"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfileByNickname(ctx context.Context, nickname string) (*domain.Profile, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) GetCredential(ctx context.Context, userID string) (*domain.Credential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockRepository) SetCredential(ctx context.Context, userID string, hash []byte) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *MockRepository) BeginAccountTx(ctx context.Context) (repository.AccountTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.AccountTx), args.Error(1)
}

// MockTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) CreateProfile(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTx) SetCredential(ctx context.Context, userID string, hash []byte) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

// MockLimits
type MockLimits struct {
	mock.Mock
}

func (m *MockLimits) IncrementLoginCount(ctx context.Context, userID string, day time.Time, limit int) (int, bool, error) {
	args := m.Called(ctx, userID, day, limit)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockLimits) GetLoginCount(ctx context.Context, userID string, day time.Time) (int, error) {
	args := m.Called(ctx, userID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockLimits) PurgeLoginCountersBefore(ctx context.Context, day time.Time) (int64, error) {
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

type fixture struct {
	repo     *MockRepository
	limits   *MockLimits
	sessions *MockSessions
	pub      *MockPublisher
	svc      *service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(MockRepository),
		limits:   new(MockLimits),
		sessions: new(MockSessions),
		pub:      new(MockPublisher),
	}
	limiter := invite.NewLoginLimiter(f.limits, 5, domain.DayBoundary{ResetHour: 4})
	f.svc = NewService(f.repo, limiter, f.sessions, f.pub).(*service)
	f.svc.hashCost = bcrypt.MinCost
	return f
}

func TestRegister(t *testing.T) {
	f := newFixture()
	tx := new(MockTx)
	f.repo.On("BeginAccountTx", mock.Anything).Return(tx, nil)
	tx.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Nickname == "Dream"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Profile).ID = "u1"
	}).Return(nil)

	var hash []byte
	tx.On("SetCredential", mock.Anything, "u1", mock.Anything).Run(func(args mock.Arguments) {
		hash = args.Get(2).([]byte)
	}).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.limits.On("IncrementLoginCount", mock.Anything, "u1", mock.Anything, 5).Return(1, true, nil)
	f.sessions.On("Issue", "u1", "Dream").Return("jwt", time.Now().Add(time.Hour), nil)
	f.pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.UserRegistered
	}))

	res, err := f.svc.Register(context.Background(), "Ｄｒｅａｍ", "pass")
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, "jwt", res.Token)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("pass")))
	tx.AssertExpectations(t)
}

func TestRegister_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		password string
		wantErr  error
	}{
		{"short password", "dreamer", "abc", domain.ErrPasswordTooShort},
		{"empty nickname", "  ", "password", domain.ErrInvalidNickname},
		{"long nickname", "0123456789012345678901234567890123", "password", domain.ErrInvalidNickname},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Register(context.Background(), tt.nickname, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			f.repo.AssertNotCalled(t, "BeginAccountTx", mock.Anything)
		})
	}
}

func TestRegister_NicknameTaken(t *testing.T) {
	f := newFixture()
	tx := new(MockTx)
	f.repo.On("BeginAccountTx", mock.Anything).Return(tx, nil)
	tx.On("CreateProfile", mock.Anything, mock.Anything).Return(domain.ErrNicknameTaken)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := f.svc.Register(context.Background(), "dreamer", "password")
	assert.ErrorIs(t, err, domain.ErrNicknameTaken)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	profile := domain.NewProfile("u1", "dreamer")

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetProfileByNickname", mock.Anything, "dreamer").Return(profile, nil)
		f.repo.On("GetCredential", mock.Anything, "u1").Return(&domain.Credential{UserID: "u1", SecretHash: hash}, nil)
		f.limits.On("IncrementLoginCount", mock.Anything, "u1", mock.Anything, 5).Return(2, true, nil)
		f.sessions.On("Issue", "u1", "dreamer").Return("jwt", time.Now().Add(time.Hour), nil)
		f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

		res, err := f.svc.Login(context.Background(), " dreamer ", "secret")
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, string(invite.StateAuthenticated), res.State)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetProfileByNickname", mock.Anything, "dreamer").Return(profile, nil)
		f.repo.On("GetCredential", mock.Anything, "u1").Return(&domain.Credential{UserID: "u1", SecretHash: hash}, nil)

		_, err := f.svc.Login(context.Background(), "dreamer", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		f.limits.AssertNotCalled(t, "IncrementLoginCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown nickname", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetProfileByNickname", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

		_, err := f.svc.Login(context.Background(), "ghost", "secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("daily limit", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetProfileByNickname", mock.Anything, "dreamer").Return(profile, nil)
		f.repo.On("GetCredential", mock.Anything, "u1").Return(&domain.Credential{UserID: "u1", SecretHash: hash}, nil)
		f.limits.On("IncrementLoginCount", mock.Anything, "u1", mock.Anything, 5).Return(5, false, nil)

		res, err := f.svc.Login(context.Background(), "dreamer", "secret")
		assert.ErrorIs(t, err, domain.ErrLoginLimitExceeded)
		assert.Equal(t, string(invite.StateExhausted), res.State)
		f.sessions.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})
}
