package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/DreamJournal_Go/internal/admin"
	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/session"
)

// withSession attaches session claims for userID
func withSession(r *http.Request, userID string) *http.Request {
	return r.WithContext(session.WithClaims(r.Context(), &session.Claims{UserID: userID, Nickname: "tester"}))
}

// withURLParams sets chi route params without going through a router
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) ListQuests(ctx context.Context, userID string) ([]domain.QuestView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestView), args.Error(1)
}

func (m *MockQuestService) Complete(ctx context.Context, userID, questID string) (*domain.CompletionResult, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}

func (m *MockQuestService) StartVerification(ctx context.Context, userID, questID string) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockQuestService) CompleteVerified(ctx context.Context, userID, artifactID string) (*domain.CompletionResult, error) {
	args := m.Called(ctx, userID, artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}

func (m *MockQuestService) AwaitAndComplete(ctx context.Context, userID, artifactID string) (*domain.CompletionResult, error) {
	args := m.Called(ctx, userID, artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}

func (m *MockQuestService) CheckIn(ctx context.Context, userID string) (*domain.CompletionResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}

type MockProgressionService struct {
	mock.Mock
}

func (m *MockProgressionService) GetStatus(ctx context.Context, userID string) (*domain.AscensionStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AscensionStatus), args.Error(1)
}

func (m *MockProgressionService) Ascend(ctx context.Context, userID string) (*domain.AscensionResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AscensionResult), args.Error(1)
}

func (m *MockProgressionService) StartAscensionExam(ctx context.Context, userID string) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockProgressionService) AscendVerified(ctx context.Context, userID, artifactID string) (*domain.AscensionResult, error) {
	args := m.Called(ctx, userID, artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AscensionResult), args.Error(1)
}

func (m *MockProgressionService) Levels(ctx context.Context) []domain.LevelInfo {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LevelInfo)
}

type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopItem), args.Error(1)
}

func (m *MockShopService) Redeem(ctx context.Context, userID, itemID string) (*domain.RedemptionResult, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedemptionResult), args.Error(1)
}

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) artifact(args mock.Arguments) (*domain.VerificationArtifact, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}

func (m *MockVerificationService) Create(ctx context.Context, req domain.ArtifactRequest) (*domain.VerificationArtifact, error) {
	return m.artifact(m.Called(ctx, req))
}

func (m *MockVerificationService) Get(ctx context.Context, id string) (*domain.VerificationArtifact, error) {
	return m.artifact(m.Called(ctx, id))
}

func (m *MockVerificationService) GetOwned(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error) {
	return m.artifact(m.Called(ctx, userID, id))
}

func (m *MockVerificationService) Verify(ctx context.Context, payload string) (*domain.VerificationArtifact, error) {
	return m.artifact(m.Called(ctx, payload))
}

func (m *MockVerificationService) Cancel(ctx context.Context, userID, id string) (*domain.VerificationArtifact, error) {
	return m.artifact(m.Called(ctx, userID, id))
}

func (m *MockVerificationService) Expire(ctx context.Context, id string) (*domain.VerificationArtifact, error) {
	return m.artifact(m.Called(ctx, id))
}

func (m *MockVerificationService) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVerificationService) QRImage(ctx context.Context, userID, id string) ([]byte, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileService) Snapshot(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileSnapshot), args.Error(1)
}

func (m *MockProfileService) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

func (m *MockProfileService) Invalidate(userID string) {
	m.Called(userID)
}

func (m *MockProfileService) InvalidateAll() {
	m.Called()
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, nickname, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, nickname, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, nickname, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, nickname, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) Resolve(ctx context.Context, token string) (*domain.InviteResolution, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteResolution), args.Error(1)
}

func (m *MockInviteService) Redeem(ctx context.Context, token, nickname string) (*domain.LoginResult, error) {
	args := m.Called(ctx, token, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}

func (m *MockInviteService) SyncCredential(ctx context.Context, preUserID, token string) error {
	args := m.Called(ctx, preUserID, token)
	return args.Error(0)
}

func (m *MockInviteService) IssueInvite(ctx context.Context, nickname string) (*domain.Invite, error) {
	args := m.Called(ctx, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListQuests(ctx context.Context) ([]domain.Quest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockAdminService) CreateQuest(ctx context.Context, actor string, in admin.QuestInput) (*domain.Quest, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockAdminService) UpdateQuest(ctx context.Context, actor, id string, in admin.QuestInput) (*domain.Quest, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *MockAdminService) DeleteQuest(ctx context.Context, actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockAdminService) ListShopItems(ctx context.Context) ([]domain.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopItem), args.Error(1)
}

func (m *MockAdminService) CreateShopItem(ctx context.Context, actor string, in admin.ShopItemInput) (*domain.ShopItem, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopItem), args.Error(1)
}

func (m *MockAdminService) UpdateShopItem(ctx context.Context, actor, id string, in admin.ShopItemInput) (*domain.ShopItem, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShopItem), args.Error(1)
}

func (m *MockAdminService) DeleteShopItem(ctx context.Context, actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockAdminService) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

func (m *MockAdminService) ListLevels(ctx context.Context) []domain.LevelInfo {
	return m.Called(ctx).Get(0).([]domain.LevelInfo)
}

func (m *MockAdminService) UpdateLevel(ctx context.Context, actor string, level int, in admin.LevelInput) (*domain.LevelInfo, error) {
	args := m.Called(ctx, actor, level, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LevelInfo), args.Error(1)
}

func (m *MockAdminService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockAdminService) AuditLog(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

func (m *MockAdminService) IssueInvite(ctx context.Context, actor, nickname string) (*domain.Invite, error) {
	args := m.Called(ctx, actor, nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

func (m *MockAdminService) VerifyArtifact(ctx context.Context, actor, payload string) (*domain.VerificationArtifact, error) {
	args := m.Called(ctx, actor, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationArtifact), args.Error(1)
}
