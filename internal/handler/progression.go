package handler

import (
	"net/http"

	"github.com/osse101/DreamJournal_Go/internal/progression"
)

// ProgressionHandler serves the level table and ascension
type ProgressionHandler struct {
	progression progression.Service
}

// NewProgressionHandler creates a new progression handler
func NewProgressionHandler(svc progression.Service) *ProgressionHandler {
	return &ProgressionHandler{progression: svc}
}

// HandleLevels returns the public level table
// @Summary Level table
// @Tags levels
// @Produce json
// @Success 200 {array} domain.LevelInfo
// @Router /api/v1/levels [get]
func (h *ProgressionHandler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.progression.Levels(r.Context()))
}

// HandleStatus returns the caller's ascension status
// @Summary Ascension status
// @Tags ascension
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AscensionStatus
// @Router /api/v1/me/ascension [get]
func (h *ProgressionHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}

	status, err := h.progression.GetStatus(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get ascension status", err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// HandleAscend raises the caller one level
// @Summary Ascend
// @Tags ascension
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.AscensionResult
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ShortfallResponse
// @Router /api/v1/me/ascension [post]
func (h *ProgressionHandler) HandleAscend(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}

	res, err := h.progression.Ascend(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Ascend", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleStartExam issues a level exam artifact
// @Summary Start ascension exam
// @Tags ascension
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.VerificationArtifact
// @Failure 422 {object} ShortfallResponse
// @Router /api/v1/me/ascension/exam [post]
func (h *ProgressionHandler) HandleStartExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}

	a, err := h.progression.StartAscensionExam(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Start ascension exam", err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// HandleCompleteExam ascends with a verified exam artifact
// @Summary Complete ascension exam
// @Tags ascension
// @Produce json
// @Security BearerAuth
// @Param id path string true "Artifact id"
// @Success 200 {object} domain.AscensionResult
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/me/ascension/exam/{id}/complete [post]
func (h *ProgressionHandler) HandleCompleteExam(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	artifactID, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.progression.AscendVerified(r.Context(), userID, artifactID)
	if err != nil {
		respondServiceError(w, r, "Complete ascension exam", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
