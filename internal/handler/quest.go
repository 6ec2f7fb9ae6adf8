package handler

import (
	"net/http"

	"github.com/osse101/DreamJournal_Go/internal/quest"
)

// QuestHandler serves the quest board and completions
type QuestHandler struct {
	quests quest.Service
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(quests quest.Service) *QuestHandler {
	return &QuestHandler{quests: quests}
}

// HandleListQuests returns active quests annotated for the caller
// @Summary Quest board
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.QuestView
// @Router /api/v1/me/quests [get]
func (h *QuestHandler) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}

	quests, err := h.quests.ListQuests(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List quests", err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleComplete completes a quest that needs no verification
// @Summary Complete quest
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quest id"
// @Success 200 {object} domain.CompletionResult
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/me/quests/{id}/complete [post]
func (h *QuestHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	questID, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.quests.Complete(r.Context(), userID, questID)
	if err != nil {
		respondServiceError(w, r, "Complete quest", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleStartVerification issues a QR artifact for a quest that needs verification
// @Summary Start quest verification
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quest id"
// @Success 201 {object} domain.VerificationArtifact
// @Router /api/v1/me/quests/{id}/verification [post]
func (h *QuestHandler) HandleStartVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	questID, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	a, err := h.quests.StartVerification(r.Context(), userID, questID)
	if err != nil {
		respondServiceError(w, r, "Start verification", err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// HandleCompleteVerified credits a quest whose artifact was verified
// @Summary Complete verified quest
// @Tags verifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Artifact id"
// @Success 200 {object} domain.CompletionResult
// @Failure 409 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /api/v1/me/verifications/{id}/complete [post]
func (h *QuestHandler) HandleCompleteVerified(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	artifactID, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.quests.CompleteVerified(r.Context(), userID, artifactID)
	if err != nil {
		respondServiceError(w, r, "Complete verified quest", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleAwait blocks until the artifact resolves, then credits the quest if verified.
// A client that disconnects leaves the artifact pending.
// @Summary Await verification
// @Tags verifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Artifact id"
// @Success 200 {object} domain.CompletionResult
// @Failure 410 {object} ErrorResponse
// @Router /api/v1/me/verifications/{id}/await [post]
func (h *QuestHandler) HandleAwait(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}
	artifactID, ok := pathParam(r, w, "id")
	if !ok {
		return
	}

	res, err := h.quests.AwaitAndComplete(r.Context(), userID, artifactID)
	if err != nil {
		respondServiceError(w, r, "Await verification", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleCheckIn grants the once-a-day check-in reward
// @Summary Daily check-in
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.CompletionResult
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/me/checkin [post]
func (h *QuestHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(r, w)
	if !ok {
		return
	}

	res, err := h.quests.CheckIn(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Check in", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
