package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/DreamJournal_Go/internal/logger"
)

// DailyResetter is implemented by worker.DailyResetWorker
type DailyResetter interface {
	Trigger(ctx context.Context) error
	NextRun() (time.Time, error)
}

// AdminDailyResetHandler exposes the login-counter reset to admins
type AdminDailyResetHandler struct {
	resetter DailyResetter
}

// NewAdminDailyResetHandler creates a new AdminDailyResetHandler
func NewAdminDailyResetHandler(resetter DailyResetter) *AdminDailyResetHandler {
	return &AdminDailyResetHandler{resetter: resetter}
}

// DailyResetStatus reports the next scheduled reset
type DailyResetStatus struct {
	NextResetAt time.Time `json:"next_reset_at"`
}

// HandleManualReset purges stale login counters immediately
// @Summary Trigger login-day reset
// @Description Purges login counters from previous login days
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/admin/daily-reset [post]
func (h *AdminDailyResetHandler) HandleManualReset(w http.ResponseWriter, r *http.Request) {
	if err := h.resetter.Trigger(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgManualResetFailed, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgDailyResetFailed)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDailyResetCompleted})
}

// HandleGetResetStatus returns when the next reset fires
// @Summary Login-day reset status
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} DailyResetStatus
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/admin/daily-reset [get]
func (h *AdminDailyResetHandler) HandleGetResetStatus(w http.ResponseWriter, r *http.Request) {
	next, err := h.resetter.NextRun()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgDailyResetNotScheduled)
		return
	}
	respondJSON(w, http.StatusOK, DailyResetStatus{NextResetAt: next})
}
