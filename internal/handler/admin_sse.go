package handler

import (
	"encoding/json"
	"net/http"
)

// Broadcaster is implemented by sse.Hub
type Broadcaster interface {
	Broadcast(eventType string, payload interface{}) bool
}

// AnnouncementRequest is the body of POST /admin/sse/broadcast
type AnnouncementRequest struct {
	Type    string          `json:"type" validate:"required,max=64"`
	Payload json.RawMessage `json:"payload"`
}

// AnnouncementResponse reports whether the hub accepted the message
type AnnouncementResponse struct {
	Type     string `json:"type"`
	Accepted bool   `json:"accepted"`
}

// AdminSSEHandler pushes guild-wide announcements to every connected client
type AdminSSEHandler struct {
	hub Broadcaster
}

// NewAdminSSEHandler creates a new admin SSE handler
func NewAdminSSEHandler(hub Broadcaster) *AdminSSEHandler {
	return &AdminSSEHandler{hub: hub}
}

// HandleBroadcast sends an announcement to all clients
// @Summary Broadcast announcement
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AnnouncementRequest true "Announcement"
// @Success 202 {object} AnnouncementResponse
// @Router /api/v1/admin/sse/broadcast [post]
func (h *AdminSSEHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Broadcast announcement"); err != nil {
		return
	}

	var payload interface{}
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
	}

	accepted := h.hub.Broadcast(req.Type, payload)
	respondJSON(w, http.StatusAccepted, AnnouncementResponse{Type: req.Type, Accepted: accepted})
}
