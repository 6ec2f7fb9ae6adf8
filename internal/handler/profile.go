package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/DreamJournal_Go/internal/profile"
)

// ProfileHandler serves the caller's own profile
type ProfileHandler struct {
	profiles profile.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// HandleProfile returns the caller's profile
// @Summary Own profile
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Router /api/v1/me/profile [get]
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}

	p, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleSnapshot returns the cached client state
// @Summary Profile snapshot
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ProfileSnapshot
// @Success 304
// @Router /api/v1/me/snapshot [get]
func (h *ProfileHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}

	snap, err := h.profiles.Snapshot(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get snapshot", err)
		return
	}
	etag := `"` + strconv.FormatInt(snap.Version, 10) + `"`
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
