package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/DreamJournal_Go/internal/admin"
)

// AdminHandler serves the guild admin API. Requests are already authenticated by API key.
type AdminHandler struct {
	admin admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{admin: svc}
}

// IssueInviteRequest is the body of POST /admin/invites
type IssueInviteRequest struct {
	Nickname string `json:"nickname" validate:"omitempty,max=50,nickname"`
}

// ScanRequest is the body of POST /admin/verifications/scan
type ScanRequest struct {
	Payload string `json:"payload" validate:"required,max=256"`
}

// actor names the admin for the audit log; the service falls back to a default
func actor(r *http.Request) string {
	return r.Header.Get(HeaderAdminUser)
}

// HandleListQuests returns every quest template, inactive included
// @Summary List quest templates
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.Quest
// @Router /api/v1/admin/quests [get]
func (h *AdminHandler) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.admin.ListQuests(r.Context())
	if err != nil {
		respondServiceError(w, r, "List quest templates", err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleCreateQuest adds a quest template
// @Summary Create quest template
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body admin.QuestInput true "Quest"
// @Success 201 {object} domain.Quest
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/admin/quests [post]
func (h *AdminHandler) HandleCreateQuest(w http.ResponseWriter, r *http.Request) {
	var in admin.QuestInput
	if err := DecodeAndValidateRequest(r, w, &in, "Create quest"); err != nil {
		return
	}

	q, err := h.admin.CreateQuest(r.Context(), actor(r), in)
	if err != nil {
		respondServiceError(w, r, "Create quest", err)
		return
	}
	respondJSON(w, http.StatusCreated, q)
}

// HandleUpdateQuest replaces a quest template
// @Summary Update quest template
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quest id"
// @Param request body admin.QuestInput true "Quest"
// @Success 200 {object} domain.Quest
// @Router /api/v1/admin/quests/{id} [put]
func (h *AdminHandler) HandleUpdateQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, w, "id")
	if !ok {
		return
	}
	var in admin.QuestInput
	if err := DecodeAndValidateRequest(r, w, &in, "Update quest"); err != nil {
		return
	}

	q, err := h.admin.UpdateQuest(r.Context(), actor(r), id, in)
	if err != nil {
		respondServiceError(w, r, "Update quest", err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// HandleDeleteQuest removes a quest template
// @Summary Delete quest template
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quest id"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/quests/{id} [delete]
func (h *AdminHandler) HandleDeleteQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, w, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteQuest(r.Context(), actor(r), id); err != nil {
		respondServiceError(w, r, "Delete quest", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeleted})
}

// HandleListShopItems returns every shop item, inactive included
// @Summary List shop items
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.ShopItem
// @Router /api/v1/admin/shop-items [get]
func (h *AdminHandler) HandleListShopItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.admin.ListShopItems(r.Context())
	if err != nil {
		respondServiceError(w, r, "List shop items", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// HandleCreateShopItem adds a shop item
// @Summary Create shop item
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body admin.ShopItemInput true "Item"
// @Success 201 {object} domain.ShopItem
// @Router /api/v1/admin/shop-items [post]
func (h *AdminHandler) HandleCreateShopItem(w http.ResponseWriter, r *http.Request) {
	var in admin.ShopItemInput
	if err := DecodeAndValidateRequest(r, w, &in, "Create shop item"); err != nil {
		return
	}

	item, err := h.admin.CreateShopItem(r.Context(), actor(r), in)
	if err != nil {
		respondServiceError(w, r, "Create shop item", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// HandleUpdateShopItem replaces a shop item
// @Summary Update shop item
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item id"
// @Param request body admin.ShopItemInput true "Item"
// @Success 200 {object} domain.ShopItem
// @Router /api/v1/admin/shop-items/{id} [put]
func (h *AdminHandler) HandleUpdateShopItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, w, "id")
	if !ok {
		return
	}
	var in admin.ShopItemInput
	if err := DecodeAndValidateRequest(r, w, &in, "Update shop item"); err != nil {
		return
	}

	item, err := h.admin.UpdateShopItem(r.Context(), actor(r), id, in)
	if err != nil {
		respondServiceError(w, r, "Update shop item", err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// HandleDeleteShopItem removes a shop item
// @Summary Delete shop item
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item id"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/shop-items/{id} [delete]
func (h *AdminHandler) HandleDeleteShopItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, w, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteShopItem(r.Context(), actor(r), id); err != nil {
		respondServiceError(w, r, "Delete shop item", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeleted})
}

// HandleListUsers pages through profiles
// @Summary List users
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} domain.UserSummary
// @Router /api/v1/admin/users [get]
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	limit, ok := getQueryInt(r, w, "limit", defaultPageLimit, maxPageLimit)
	if !ok {
		return
	}
	offset, ok := getQueryInt(r, w, "offset", 0, 0)
	if !ok {
		return
	}

	users, err := h.admin.ListUsers(r.Context(), limit, offset)
	if err != nil {
		respondServiceError(w, r, "List users", err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// HandleListLevels returns the level table
// @Summary List levels
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.LevelInfo
// @Router /api/v1/admin/levels [get]
func (h *AdminHandler) HandleListLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.admin.ListLevels(r.Context()))
}

// HandleUpdateLevel edits one level row
// @Summary Update level
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param level path int true "Level"
// @Param request body admin.LevelInput true "Level"
// @Success 200 {object} domain.LevelInfo
// @Router /api/v1/admin/levels/{level} [put]
func (h *AdminHandler) HandleUpdateLevel(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathParam(r, w, "level")
	if !ok {
		return
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
		return
	}
	var in admin.LevelInput
	if err := DecodeAndValidateRequest(r, w, &in, "Update level"); err != nil {
		return
	}

	info, err := h.admin.UpdateLevel(r.Context(), actor(r), level, in)
	if err != nil {
		respondServiceError(w, r, "Update level", err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// HandleDashboard returns headline counts
// @Summary Dashboard
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.Dashboard
// @Router /api/v1/admin/dashboard [get]
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.admin.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, r, "Dashboard", err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// HandleAuditLog returns the newest audit entries
// @Summary Audit log
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Max entries"
// @Success 200 {array} domain.AuditEntry
// @Router /api/v1/admin/audit-log [get]
func (h *AdminHandler) HandleAuditLog(w http.ResponseWriter, r *http.Request) {
	limit, ok := getQueryInt(r, w, "limit", defaultAuditLimit, maxPageLimit)
	if !ok {
		return
	}

	entries, err := h.admin.AuditLog(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Audit log", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// HandleIssueInvite creates an invite link
// @Summary Issue invite
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body IssueInviteRequest true "Nickname hint"
// @Success 201 {object} domain.Invite
// @Router /api/v1/admin/invites [post]
func (h *AdminHandler) HandleIssueInvite(w http.ResponseWriter, r *http.Request) {
	var req IssueInviteRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Issue invite"); err != nil {
		return
	}

	inv, err := h.admin.IssueInvite(r.Context(), actor(r), req.Nickname)
	if err != nil {
		respondServiceError(w, r, "Issue invite", err)
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}

// HandleScan marks a scanned artifact verified
// @Summary Scan verification
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ScanRequest true "Scanned payload"
// @Success 200 {object} domain.VerificationArtifact
// @Failure 404 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /api/v1/admin/verifications/scan [post]
func (h *AdminHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Scan verification"); err != nil {
		return
	}

	a, err := h.admin.VerifyArtifact(r.Context(), actor(r), req.Payload)
	if err != nil {
		respondServiceError(w, r, "Scan verification", err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}
