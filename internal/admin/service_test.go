package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
	"github.com/osse101/DreamJournal_Go/internal/repository"
)

// MockCatalog embeds the interface so only the methods a test touches need stubbing
type MockCatalog struct {
	repository.Catalog
	mock.Mock
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

func (m *MockCatalog) QuestExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalog) CreateQuest(ctx context.Context, q *domain.Quest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockCatalog) UpdateQuest(ctx context.Context, q *domain.Quest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockCatalog) DeleteQuest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalog) ShopItemExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalog) CreateShopItem(ctx context.Context, item *domain.ShopItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalog) UpsertLevel(ctx context.Context, level *domain.LevelInfo) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

// MockAdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Dashboard(ctx context.Context, day time.Time) (*domain.Dashboard, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockAdminRepository) AppendAudit(ctx context.Context, e *domain.AuditEntry, retain int) error {
	args := m.Called(ctx, e, retain)
	return args.Error(0)
}

func (m *MockAdminRepository) ListAudit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockUsers
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

// MockLevels
type MockLevels struct {
	mock.Mock
}

func (m *MockLevels) Levels(ctx context.Context) []domain.LevelInfo {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LevelInfo)
}

func (m *MockLevels) InvalidateAll() {
	m.Called()
}

// MockInvites
type MockInvites struct {
	mock.Mock
}

func (m *MockInvites) IssueInvite(ctx context.Context, nickname string) (*domain.Invite, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

// MockScanner
type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Verify(ctx context.Context, payload string) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, payload)
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

type fixture struct {
	catalog *MockCatalog
	admin   *MockAdminRepository
	users   *MockUsers
	levels  *MockLevels
	invites *MockInvites
	scanner *MockScanner
	pub     *MockPublisher
	now     time.Time
	svc     Service
}

func newFixture() *fixture {
	f := &fixture{
		catalog: new(MockCatalog),
		admin:   new(MockAdminRepository),
		users:   new(MockUsers),
		levels:  new(MockLevels),
		invites: new(MockInvites),
		scanner: new(MockScanner),
		pub:     new(MockPublisher),
		now:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(Deps{
		Catalog:   f.catalog,
		Admin:     f.admin,
		Users:     f.users,
		Levels:    f.levels,
		Invites:   f.invites,
		Scanner:   f.scanner,
		Publisher: f.pub,
		Day:       domain.DayBoundary{ResetHour: 4},
		Clock:     func() time.Time { return f.now },
	})
	return f
}

func (f *fixture) expectAudit(actor, action, target string) {
	f.admin.On("AppendAudit", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.Actor == actor && e.Action == action && e.Target == target
	}), domain.AuditLogRetention).Return(nil).Once()
}

func validQuest() QuestInput {
	return QuestInput{Category: "labor", Title: "Spring Coaster", MinLevel: 2, RewardInspiration: 100, RewardYC: 50}
}

func TestCreateQuest_SlugWithCollisionSuffix(t *testing.T) {
	f := newFixture()
	f.catalog.On("QuestExists", mock.Anything, "spring-coaster").Return(true, nil)
	f.catalog.On("QuestExists", mock.Anything, "spring-coaster-2").Return(true, nil)
	f.catalog.On("QuestExists", mock.Anything, "spring-coaster-3").Return(false, nil)
	f.catalog.On("CreateQuest", mock.Anything, mock.Anything).Return(nil)
	f.expectAudit("mika", ActionCreateQuest, "spring-coaster-3")
	f.pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.CatalogChanged
	})).Once()

	q, err := f.svc.CreateQuest(context.Background(), "mika", validQuest())
	require.NoError(t, err)

	assert.Equal(t, "spring-coaster-3", q.ID)
	assert.Equal(t, domain.QuestCategoryLabor, q.Category)
	assert.True(t, q.IsActive)
	f.admin.AssertExpectations(t)
	f.pub.AssertExpectations(t)
}

func TestCreateQuest_ExplicitIDAndDefaultActor(t *testing.T) {
	f := newFixture()
	in := validQuest()
	in.ID = "b7"
	f.catalog.On("CreateQuest", mock.Anything, mock.MatchedBy(func(q *domain.Quest) bool { return q.ID == "b7" })).Return(nil)
	f.expectAudit(domain.DefaultAdminActor, ActionCreateQuest, "b7")
	f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

	_, err := f.svc.CreateQuest(context.Background(), "", in)
	require.NoError(t, err)
	f.catalog.AssertNotCalled(t, "QuestExists", mock.Anything, mock.Anything)
	f.admin.AssertExpectations(t)
}

func TestCreateQuest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*QuestInput)
	}{
		{"bad category", func(q *QuestInput) { q.Category = "raid" }},
		{"level zero", func(q *QuestInput) { q.MinLevel = 0 }},
		{"level eleven", func(q *QuestInput) { q.MinLevel = 11 }},
		{"negative reward", func(q *QuestInput) { q.RewardYC = -1 }},
		{"negative cost", func(q *QuestInput) { q.CostCoins = -5 }},
		{"missing title", func(q *QuestInput) { q.Title = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			in := validQuest()
			tt.modify(&in)

			_, err := f.svc.CreateQuest(context.Background(), "mika", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			f.catalog.AssertNotCalled(t, "CreateQuest", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateShopItem_DefaultsStock(t *testing.T) {
	f := newFixture()
	f.catalog.On("ShopItemExists", mock.Anything, "cha-xie").Return(false, nil)
	f.catalog.On("CreateShopItem", mock.Anything, mock.Anything).Return(nil)
	f.admin.On("AppendAudit", mock.Anything, mock.Anything, domain.AuditLogRetention).Return(nil)
	f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

	item, err := f.svc.CreateShopItem(context.Background(), "mika", ShopItemInput{Title: "Cha Xie", CostYC: 100})
	require.NoError(t, err)
	assert.Equal(t, "cha-xie", item.ID)
	assert.Equal(t, domain.DefaultShopStock, item.Stock)
	assert.True(t, item.IsActive)
}

func TestUpdateQuest_NotFound(t *testing.T) {
	f := newFixture()
	f.catalog.On("GetQuest", mock.Anything, "zz").Return(nil, domain.ErrQuestNotFound)

	_, err := f.svc.UpdateQuest(context.Background(), "mika", "zz", validQuest())
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
	f.admin.AssertNotCalled(t, "AppendAudit", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateQuest_KeepsActiveFlagWhenOmitted(t *testing.T) {
	f := newFixture()
	existing := &domain.Quest{ID: "b1", Category: domain.QuestCategoryLabor, IsActive: false}
	f.catalog.On("GetQuest", mock.Anything, "b1").Return(existing, nil)
	f.catalog.On("UpdateQuest", mock.Anything, existing).Return(nil)
	f.expectAudit("mika", ActionUpdateQuest, "b1")
	f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

	q, err := f.svc.UpdateQuest(context.Background(), "mika", "b1", validQuest())
	require.NoError(t, err)
	assert.False(t, q.IsActive)
	assert.Equal(t, 100, q.RewardInspiration)
}

func TestDeleteQuest_AuditFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.catalog.On("DeleteQuest", mock.Anything, "b1").Return(nil)
	f.admin.On("AppendAudit", mock.Anything, mock.Anything, domain.AuditLogRetention).Return(errors.New("disk full"))
	f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

	assert.NoError(t, f.svc.DeleteQuest(context.Background(), "mika", "b1"))
}

func TestUpdateLevel_InvalidatesTable(t *testing.T) {
	f := newFixture()
	f.catalog.On("UpsertLevel", mock.Anything, mock.MatchedBy(func(l *domain.LevelInfo) bool {
		return l.Level == 2 && l.RequiredInspiration == 700
	})).Return(nil)
	f.levels.On("InvalidateAll").Once()
	f.expectAudit("mika", ActionUpdateLevel, "2")
	f.pub.On("PublishWithRetry", mock.Anything, mock.Anything)

	_, err := f.svc.UpdateLevel(context.Background(), "mika", 2, LevelInput{Title: "见习编织者", RequiredInspiration: 700})
	require.NoError(t, err)
	f.levels.AssertExpectations(t)

	_, err = f.svc.UpdateLevel(context.Background(), "mika", 11, LevelInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListUsers_BoundsLimit(t *testing.T) {
	f := newFixture()
	f.users.On("ListUsers", mock.Anything, DefaultListLimit, 0).Return([]domain.UserSummary{}, nil).Once()
	f.users.On("ListUsers", mock.Anything, MaxListLimit, 10).Return([]domain.UserSummary{}, nil).Once()

	_, err := f.svc.ListUsers(context.Background(), 0, -3)
	require.NoError(t, err)
	_, err = f.svc.ListUsers(context.Background(), 10_000, 10)
	require.NoError(t, err)
	f.users.AssertExpectations(t)
}

func TestDashboard_UsesLoginDay(t *testing.T) {
	f := newFixture()
	want := &domain.Dashboard{UserCount: 3}
	f.admin.On("Dashboard", mock.Anything, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).Return(want, nil)

	got, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAuditLog_ClampsLimit(t *testing.T) {
	f := newFixture()
	f.admin.On("ListAudit", mock.Anything, DefaultAuditLimit).Return([]domain.AuditEntry{{ID: 1}}, nil)

	entries, err := f.svc.AuditLog(context.Background(), 9999)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestIssueInviteAndVerify_AreAudited(t *testing.T) {
	f := newFixture()
	f.invites.On("IssueInvite", mock.Anything, "小织").Return(&domain.Invite{PreUser: &domain.PreUser{ID: "p1"}}, nil)
	f.scanner.On("Verify", mock.Anything, "dw1:abc").Return(&domain.VerificationArtifact{ID: "a1"}, nil)
	f.expectAudit("mika", ActionIssueInvite, "p1")
	f.expectAudit("mika", ActionVerifyArtifact, "a1")

	_, err := f.svc.IssueInvite(context.Background(), "mika", "小织")
	require.NoError(t, err)
	_, err = f.svc.VerifyArtifact(context.Background(), "mika", "dw1:abc")
	require.NoError(t, err)
	f.admin.AssertExpectations(t)
}

func TestVerifyArtifact_PropagatesExpiry(t *testing.T) {
	f := newFixture()
	f.scanner.On("Verify", mock.Anything, "dw1:old").Return(nil, domain.ErrVerificationExpired)

	_, err := f.svc.VerifyArtifact(context.Background(), "mika", "dw1:old")
	assert.ErrorIs(t, err, domain.ErrVerificationExpired)
	f.admin.AssertNotCalled(t, "AppendAudit", mock.Anything, mock.Anything, mock.Anything)
}
