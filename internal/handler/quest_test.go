package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DreamJournal_Go/internal/domain"
)

func TestQuestHandler_RequiresSession(t *testing.T) {
	svc := &MockQuestService{}
	h := NewQuestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/quests", nil)
	w := httptest.NewRecorder()
	h.HandleListQuests(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "ListQuests", mock.Anything, mock.Anything)
}

func TestQuestHandler_ListQuests(t *testing.T) {
	svc := &MockQuestService{}
	svc.On("ListQuests", mock.Anything, "u1").Return([]domain.QuestView{
		{Quest: domain.Quest{ID: "d1", Category: domain.QuestCategoryDaily}, Affordable: true},
		{Quest: domain.Quest{ID: "p2", Category: domain.QuestCategoryPatron, MinLevel: 5}, Locked: true},
	}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/me/quests", nil), "u1")
	w := httptest.NewRecorder()
	NewQuestHandler(svc).HandleListQuests(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var views []domain.QuestView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 2)
	assert.True(t, views[1].Locked)
}

func TestQuestHandler_Complete(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.CompletionResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "credited",
			result: &domain.CompletionResult{
				QuestID: "l1",
				Reward:  domain.Reward{Inspiration: 100, YC: 50},
				Profile: &domain.Profile{ID: "u1", Inspiration: 100, YC: 50},
			},
			wantStatus: http.StatusOK,
			wantBody:   `"inspiration":100`,
		},
		{name: "locked", err: domain.ErrQuestLocked, wantStatus: http.StatusForbidden, wantBody: ErrMsgQuestLockedError},
		{name: "coins short", err: domain.ErrInsufficientCoins, wantStatus: http.StatusUnprocessableEntity, wantBody: ErrMsgInsufficientCoinsError},
		{name: "needs verification", err: domain.ErrVerificationRequired, wantStatus: http.StatusUnprocessableEntity, wantBody: ErrMsgVerificationRequiredError},
		{name: "already done", err: domain.ErrQuestAlreadyCompleted, wantStatus: http.StatusConflict, wantBody: ErrMsgQuestAlreadyCompletedError},
		{name: "unknown", err: domain.ErrQuestNotFound, wantStatus: http.StatusNotFound, wantBody: ErrMsgQuestNotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockQuestService{}
			if tt.err != nil {
				svc.On("Complete", mock.Anything, "u1", "l1").Return(nil, tt.err)
			} else {
				svc.On("Complete", mock.Anything, "u1", "l1").Return(tt.result, nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/me/quests/l1/complete", nil)
			req = withURLParams(withSession(req, "u1"), "id", "l1")
			w := httptest.NewRecorder()
			NewQuestHandler(svc).HandleComplete(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestQuestHandler_StartVerification(t *testing.T) {
	questID := "p1"
	svc := &MockQuestService{}
	svc.On("StartVerification", mock.Anything, "u1", "p1").Return(&domain.VerificationArtifact{
		ID: "a1", Kind: domain.ArtifactKindQuest, QuestID: &questID, Status: domain.ArtifactStatusGenerated,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/me/quests/p1/verification", nil)
	req = withURLParams(withSession(req, "u1"), "id", "p1")
	w := httptest.NewRecorder()
	NewQuestHandler(svc).HandleStartVerification(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"generated"`)
}

func TestQuestHandler_CompleteVerified(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"credited", nil, http.StatusOK},
		{"not verified yet", domain.ErrArtifactNotVerified, http.StatusConflict},
		{"used twice", domain.ErrArtifactConsumed, http.StatusConflict},
		{"expired", domain.ErrVerificationExpired, http.StatusGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockQuestService{}
			if tt.err != nil {
				svc.On("CompleteVerified", mock.Anything, "u1", "a1").Return(nil, tt.err)
			} else {
				svc.On("CompleteVerified", mock.Anything, "u1", "a1").Return(&domain.CompletionResult{QuestID: "p1"}, nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/me/verifications/a1/complete", nil)
			req = withURLParams(withSession(req, "u1"), "id", "a1")
			w := httptest.NewRecorder()
			NewQuestHandler(svc).HandleCompleteVerified(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestQuestHandler_Await(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		svc := &MockQuestService{}
		svc.On("AwaitAndComplete", mock.Anything, "u1", "a1").Return(nil, domain.ErrVerificationExpired)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/me/verifications/a1/await", nil)
		req = withURLParams(withSession(req, "u1"), "id", "a1")
		w := httptest.NewRecorder()
		NewQuestHandler(svc).HandleAwait(w, req)

		assert.Equal(t, http.StatusGone, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgVerificationExpiredError)
	})

	t.Run("client gone writes nothing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		svc := &MockQuestService{}
		svc.On("AwaitAndComplete", mock.Anything, "u1", "a1").Return(nil, context.Canceled)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/me/verifications/a1/await", nil).WithContext(ctx)
		req = withURLParams(withSession(req, "u1"), "id", "a1")
		w := httptest.NewRecorder()
		NewQuestHandler(svc).HandleAwait(w, req)

		assert.Empty(t, w.Body.String())
	})

	t.Run("cancelled wait is not a server error", func(t *testing.T) {
		svc := &MockQuestService{}
		svc.On("AwaitAndComplete", mock.Anything, "u1", "a1").Return(nil, context.Canceled)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/me/verifications/a1/await", nil)
		req = withURLParams(withSession(req, "u1"), "id", "a1")
		w := httptest.NewRecorder()
		NewQuestHandler(svc).HandleAwait(w, req)

		assert.Equal(t, StatusClientClosedRequest, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestQuestHandler_CheckIn(t *testing.T) {
	svc := &MockQuestService{}
	svc.On("CheckIn", mock.Anything, "u1").Return(&domain.CompletionResult{
		QuestID: domain.CheckInQuestID,
		Reward:  domain.Reward{YC: 10},
	}, nil).Once()
	svc.On("CheckIn", mock.Anything, "u1").Return(nil, domain.ErrQuestAlreadyCompleted).Once()

	h := NewQuestHandler(svc)
	for _, want := range []int{http.StatusOK, http.StatusConflict} {
		req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/me/checkin", nil), "u1")
		w := httptest.NewRecorder()
		h.HandleCheckIn(w, req)
		assert.Equal(t, want, w.Code)
	}
	svc.AssertExpectations(t)
}
