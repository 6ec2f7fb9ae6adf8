package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/DreamJournal_Go/internal/verification"
)

// VerificationHandler serves the caller's own artifacts
type VerificationHandler struct {
	verifications verification.Service
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verifications verification.Service) *VerificationHandler {
	return &VerificationHandler{verifications: verifications}
}

// HandleGet returns one owned artifact
// @Summary Get verification
// @Tags verifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Artifact id"
// @Success 200 {object} domain.VerificationArtifact
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/me/verifications/{id} [get]
func (h *VerificationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	id, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	a, err := h.verifications.GetOwned(r.Context(), userID, id)
	if err != nil {
		respondServiceError(w, r, "Get verification", err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// HandleQR renders the artifact payload as a PNG
// @Summary Verification QR code
// @Tags verifications
// @Produce png
// @Security BearerAuth
// @Param id path string true "Artifact id"
// @Success 200 {file} binary
// @Router /api/v1/me/verifications/{id}/qr.png [get]
func (h *VerificationHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	id, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	png, err := h.verifications.QRImage(r.Context(), userID, id)
	if err != nil {
		respondServiceError(w, r, "Render QR", err)
		return
	}
	if len(png) == 0 {
		respondError(w, http.StatusNotFound, ErrMsgQRUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// HandleCancel abandons a pending artifact
// @Summary Cancel verification
// @Tags verifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Artifact id"
// @Success 200 {object} domain.VerificationArtifact
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/me/verifications/{id}/cancel [post]
func (h *VerificationHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	id, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	a, err := h.verifications.Cancel(r.Context(), userID, id)
	if err != nil {
		respondServiceError(w, r, "Cancel verification", err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}
