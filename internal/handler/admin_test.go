package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/DreamJournal_Go/internal/admin"
	"github.com/osse101/DreamJournal_Go/internal/domain"
)

func TestAdminHandler_CreateQuest(t *testing.T) {
	in := admin.QuestInput{Category: "labor", Title: "Moss Bunny", MinLevel: 1, RewardInspiration: 100, RewardYC: 50}

	t.Run("created with actor", func(t *testing.T) {
		svc := &MockAdminService{}
		svc.On("CreateQuest", mock.Anything, "mika", in).Return(&domain.Quest{ID: "moss-bunny", Title: "Moss Bunny"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/quests", jsonBody(t, in))
		req.Header.Set(HeaderAdminUser, "mika")
		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleCreateQuest(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"moss-bunny"`)
		svc.AssertExpectations(t)
	})

	t.Run("duplicate id", func(t *testing.T) {
		svc := &MockAdminService{}
		svc.On("CreateQuest", mock.Anything, "", in).Return(nil, domain.ErrDuplicateKey)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/quests", jsonBody(t, in))
		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleCreateQuest(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid category never reaches service", func(t *testing.T) {
		bad := in
		bad.Category = "raid"
		svc := &MockAdminService{}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/quests", jsonBody(t, bad))
		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleCreateQuest(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"category"`)
		svc.AssertNotCalled(t, "CreateQuest", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdminHandler_DeleteShopItem(t *testing.T) {
	svc := &MockAdminService{}
	svc.On("DeleteShopItem", mock.Anything, "", "s9").Return(domain.ErrItemNotFound)
	svc.On("DeleteShopItem", mock.Anything, "", "s1").Return(nil)
	h := NewAdminHandler(svc)

	for id, want := range map[string]int{"s1": http.StatusOK, "s9": http.StatusNotFound} {
		req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/shop-items/"+id, nil), "id", id)
		w := httptest.NewRecorder()
		h.HandleDeleteShopItem(w, req)
		assert.Equal(t, want, w.Code, id)
	}
}

func TestAdminHandler_ListUsers(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		limit      int
		offset     int
		wantStatus int
	}{
		{"defaults", "", defaultPageLimit, 0, http.StatusOK},
		{"explicit", "?limit=10&offset=20", 10, 20, http.StatusOK},
		{"clamped", "?limit=5000", maxPageLimit, 0, http.StatusOK},
		{"garbage", "?limit=abc", 0, 0, http.StatusBadRequest},
		{"negative", "?offset=-1", 0, 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAdminService{}
			if tt.wantStatus == http.StatusOK {
				svc.On("ListUsers", mock.Anything, tt.limit, tt.offset).Return([]domain.UserSummary{}, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users"+tt.query, nil)
			w := httptest.NewRecorder()
			NewAdminHandler(svc).HandleListUsers(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAdminHandler_UpdateLevel(t *testing.T) {
	in := admin.LevelInput{Title: "织梦者", RequiredInspiration: 600}

	t.Run("updated", func(t *testing.T) {
		svc := &MockAdminService{}
		svc.On("UpdateLevel", mock.Anything, "", 3, in).Return(&domain.LevelInfo{Level: 3, Title: "织梦者", RequiredInspiration: 600}, nil)

		req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/v1/admin/levels/3", jsonBody(t, in)), "level", "3")
		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleUpdateLevel(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("non numeric level", func(t *testing.T) {
		svc := &MockAdminService{}
		req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/v1/admin/levels/x", jsonBody(t, in)), "level", "x")
		w := httptest.NewRecorder()
		NewAdminHandler(svc).HandleUpdateLevel(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_DashboardAndAudit(t *testing.T) {
	svc := &MockAdminService{}
	svc.On("Dashboard", mock.Anything).Return(&domain.Dashboard{UserCount: 12, CompletedToday: 3}, nil)
	svc.On("AuditLog", mock.Anything, defaultAuditLimit).Return([]domain.AuditEntry{{ID: 1, Actor: "admin", Action: "quest.create", Target: "b1"}}, nil)
	h := NewAdminHandler(svc)

	w := httptest.NewRecorder()
	h.HandleDashboard(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_count":12`)

	w = httptest.NewRecorder()
	h.HandleAuditLog(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit-log", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"target":"b1"`)
}

func TestAdminHandler_IssueInvite(t *testing.T) {
	svc := &MockAdminService{}
	svc.On("IssueInvite", mock.Anything, "mika", "小织").Return(&domain.Invite{
		PreUser: &domain.PreUser{ID: testPreUserID, Nickname: "小织"},
		Link:    "https://guild.example/invite?t=abc",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/invites", jsonBody(t, IssueInviteRequest{Nickname: "小织"}))
	req.Header.Set(HeaderAdminUser, "mika")
	w := httptest.NewRecorder()
	NewAdminHandler(svc).HandleIssueInvite(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"link":"https://guild.example/invite?t=abc"`)
}

func TestAdminHandler_Scan(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"verified", nil, http.StatusOK},
		{"unknown payload", domain.ErrArtifactNotFound, http.StatusNotFound},
		{"expired", domain.ErrVerificationExpired, http.StatusGone},
		{"scanned twice", domain.ErrArtifactAlreadyResolved, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAdminService{}
			if tt.err != nil {
				svc.On("VerifyArtifact", mock.Anything, "", "DJ-PAYLOAD").Return(nil, tt.err)
			} else {
				svc.On("VerifyArtifact", mock.Anything, "", "DJ-PAYLOAD").Return(&domain.VerificationArtifact{ID: "a1", Status: domain.ArtifactStatusVerified}, nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/verifications/scan", jsonBody(t, ScanRequest{Payload: "DJ-PAYLOAD"}))
			w := httptest.NewRecorder()
			NewAdminHandler(svc).HandleScan(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
