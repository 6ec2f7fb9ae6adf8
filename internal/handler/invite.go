package handler

import (
	"net/http"

	"github.com/osse101/DreamJournal_Go/internal/invite"
)

// InviteHandler serves the public invite landing flow
type InviteHandler struct {
	invites invite.Service
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(invites invite.Service) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// RedeemInviteRequest is the body of POST /invite/redeem
type RedeemInviteRequest struct {
	Token    string `json:"token" validate:"required,max=512"`
	Nickname string `json:"nickname" validate:"omitempty,max=50,nickname"`
}

// SyncCredentialRequest is the body of POST /invite/sync-credential
type SyncCredentialRequest struct {
	PreUserID string `json:"pre_user_id" validate:"required,uuid"`
	Token     string `json:"token" validate:"required,max=512"`
}

// HandleResolve reports what a token would do without changing anything
// @Summary Resolve invite token
// @Tags invite
// @Produce json
// @Param t query string true "Invite token"
// @Success 200 {object} domain.InviteResolution
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invite/resolve [get]
func (h *InviteHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	token, ok := GetQueryParam(r, w, "t")
	if !ok {
		return
	}

	res, err := h.invites.Resolve(r.Context(), token)
	if err != nil {
		respondServiceError(w, r, "Resolve invite", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleRedeem registers or logs in through an invite link
// @Summary Redeem invite
// @Tags invite
// @Accept json
// @Produce json
// @Param request body RedeemInviteRequest true "Invite token"
// @Success 200 {object} domain.LoginResult
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} LoginLimitResponse
// @Router /api/v1/invite/redeem [post]
func (h *InviteHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemInviteRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Redeem invite"); err != nil {
		return
	}

	res, err := h.invites.Redeem(r.Context(), req.Token, req.Nickname)
	if err != nil {
		respondServiceError(w, r, "Redeem invite", err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	respondJSON(w, status, res)
}

// HandleSyncCredential rewrites the stored credential of a linked invite
// @Summary Sync invite credential
// @Tags invite
// @Accept json
// @Produce json
// @Param request body SyncCredentialRequest true "Invite identity"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invite/sync-credential [post]
func (h *InviteHandler) HandleSyncCredential(w http.ResponseWriter, r *http.Request) {
	var req SyncCredentialRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sync credential"); err != nil {
		return
	}

	if err := h.invites.SyncCredential(r.Context(), req.PreUserID, req.Token); err != nil {
		respondServiceError(w, r, "Sync credential", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCredentialSynced})
}
